// Package metrics 提供发现过程的监控指标
//
// 基于 prometheus/client_golang 的计数器实现 interfaces.Reporter：
//
//	<namespace>_announcements_sent_total    发送的公告数（含重复公告）
//	<namespace>_packets_received_total      收到的数据报数
//	<namespace>_packets_malformed_total     长度无效被丢弃的数据报数
//	<namespace>_self_announcements_total    被自过滤丢弃的公告数
//	<namespace>_dials_total{result}         拨号结果（success / failure）
//	<namespace>_dispatch_rejected_total     因并发上限被拒绝的分发数
//
// # 快速开始
//
//	reg := prometheus.NewRegistry()
//	counter := metrics.NewDiscoveryCounter("autodiscover")
//	if err := counter.Register(reg); err != nil {
//	    return err
//	}
//	counter.PacketReceived()
//
// 未配置 Registerer 时使用 Noop()，所有调用为空操作。
//
// # Fx 模块
//
//	app := fx.New(
//	    metrics.Module,
//	    fx.Provide(func() prometheus.Registerer { return reg }),
//	)
package metrics
