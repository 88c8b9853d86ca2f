// Package channel 实现发现通道
//
// 通道把两种传输方式统一为 interfaces.Channel：
//
//   - Broadcast: 接收 socket 绑定 0.0.0.0:<目标端口>（SO_REUSEADDR/SO_REUSEPORT），
//     发送 socket 绑定临时端口并开启 SO_BROADCAST，公告发往广播目标。
//   - Multicast: 接收 socket 绑定通配地址:<组端口> 并在选定网卡（或所有支持多播的网卡）
//     上加入组；发送 socket 绑定临时端口，设置 TTL/跳数限制与回环，公告发往组地址。
//
// 两种方式都独占两个 socket，Close 同时关闭两者。Recv 返回原始字节，
// 不做任何长度校验。
//
// # 重复公告
//
// Reannouncer 是可选的装饰器：首次 Send 成功后按固定间隔重发最近一次的公告，
// 直到 Close。重发失败只记录日志。默认不启用，公告只发送一次。
//
// # 使用示例
//
//	ch, err := channel.Open(types.Multicast{Group: group}, channel.DefaultConfig())
//	if err != nil {
//	    return err // errors.Is(err, channel.ErrSetup)
//	}
//	defer ch.Close()
//
//	if err := ch.Send(packet); err != nil {
//	    return err // errors.Is(err, channel.ErrSend)
//	}
//	data, from, err := ch.Recv()
package channel
