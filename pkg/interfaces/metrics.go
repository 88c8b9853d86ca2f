// Package interfaces 定义 go-autodiscover 公共接口
//
// 本文件定义 Reporter 接口，提供发现过程的监控指标。
package interfaces

// Reporter 发现指标上报
//
// 实现必须并发安全：DialResult 会在拨号 goroutine 中调用。
//
// 实现位置：internal/core/metrics/
type Reporter interface {
	// AnnouncementSent 记录一次公告发送
	AnnouncementSent()

	// PacketReceived 记录收到一个数据报
	PacketReceived()

	// PacketMalformed 记录一个长度无效的数据报
	PacketMalformed()

	// SelfAnnouncement 记录一次被自过滤丢弃的公告
	SelfAnnouncement()

	// DialResult 记录一次拨号结果
	DialResult(ok bool)

	// DispatchRejected 记录一次因并发上限被拒绝的分发
	DispatchRejected()
}
