// Package dispatch 实现连接分发
//
// Dispatch 为每个被接受的节点地址发起一次 TCP 拨号，并把唯一的结果
// （连接或 *ConnectError）交给回调。拨号和回调都运行在独立的 goroutine 中，
// 发现循环从不等待任何节点。
//
// 两种实现：
//
//   - Spawner: 每次分发一个 goroutine，不设上限
//   - Pool:    最多 n 个拨号+回调同时进行，满载时丢弃并记录
//
// 连接的所有权随回调转移，分发器不保留任何引用。
package dispatch
