// Package loop 实现发现循环
//
// 一次运行的顺序：
//
//  1. Announcing: 编码本地监听地址，通过通道发送一次公告；失败即终止
//  2. Listening:  循环 Recv → Decode → 自过滤 → 分发
//
// 畸形数据报（长度既不是 6 也不是 18）只被丢弃；等于本地监听地址的公告
// 被当作自己的回声丢弃；其余地址交给 Dispatcher 异步拨号，循环从不等待节点。
// 只有公告发送失败和接收失败会终止循环。
//
// ctx 取消时循环关闭通道以解除阻塞的 Recv，并返回 ctx.Err()。
// Run 返回时通道总是已关闭。
//
// Service 把 Loop 接入 Fx 生命周期：OnStart 打开通道并在后台运行循环，
// OnStop 取消并等待循环退出。
package loop
