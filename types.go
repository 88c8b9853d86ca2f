package autodiscover

import (
	pkgif "github.com/dep2p/go-autodiscover/pkg/interfaces"
	"github.com/dep2p/go-autodiscover/pkg/types"
)

// ════════════════════════════════════════════════════════════════════════════
//                              类型别名
// ════════════════════════════════════════════════════════════════════════════

// Method 发现方式：Broadcast 或 Multicast
type Method = types.Method

// Broadcast 广播方式（仅 IPv4）
type Broadcast = types.Broadcast

// Multicast 多播方式（IPv4 或 IPv6 组地址）
type Multicast = types.Multicast

// ConnectCallback 连接结果回调，每个被发现的节点恰好调用一次
type ConnectCallback = pkgif.ConnectCallback

// Dispatcher 连接分发器
type Dispatcher = pkgif.Dispatcher

// Dialer 拨号器，*net.Dialer 满足该接口
type Dialer = pkgif.Dialer

// State 发现状态
type State = types.DiscoveryState

// 发现状态
const (
	StateIdle       = types.StateIdle
	StateAnnouncing = types.StateAnnouncing
	StateListening  = types.StateListening
	StateStopped    = types.StateStopped
)

// ParseMethod 根据方式名称（"broadcast" / "multicast"）和目标地址构造 Method
func ParseMethod(kind, target string) (Method, error) {
	return types.ParseMethod(kind, target)
}
