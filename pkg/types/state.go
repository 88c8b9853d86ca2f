package types

// DiscoveryState 发现循环状态
//
//	StateIdle → StateAnnouncing → StateListening → StateStopped
//
// Announcing 是短暂的初始状态；Listening 是稳态，只在致命通道错误
// （或调用方取消）时退出。
type DiscoveryState int32

const (
	// StateIdle 已创建，未运行
	StateIdle DiscoveryState = iota

	// StateAnnouncing 正在发送唯一一次自身公告
	StateAnnouncing

	// StateListening 持续接收公告
	StateListening

	// StateStopped 已退出
	StateStopped
)

// String 返回状态的字符串表示
func (s DiscoveryState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAnnouncing:
		return "announcing"
	case StateListening:
		return "listening"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
