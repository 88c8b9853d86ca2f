// Package interfaces 定义 go-autodiscover 公共接口
//
// 本文件定义发现通道与连接分发接口，对应 internal/discovery/ 实现。
package interfaces

import (
	"context"
	"net"
	"net/netip"
)

// ════════════════════════════════════════════════════════════════════════════
// ConnectCallback
// ════════════════════════════════════════════════════════════════════════════

// ConnectCallback 连接结果回调
//
// 每个被分发的节点地址恰好回调一次：成功时 conn 非 nil、err 为 nil；
// 失败时 conn 为 nil、err 描述失败原因。
// 回调在独立的 goroutine 中执行，连接的所有权随回调转移给调用方。
type ConnectCallback func(conn net.Conn, err error)

// ════════════════════════════════════════════════════════════════════════════
// Channel 接口
// ════════════════════════════════════════════════════════════════════════════

// Channel 发现通道
//
// 屏蔽广播和多播两种传输方式的差异。通道独占其底层 socket，
// 只由发现循环使用，不在并发单元之间共享。
//
// 实现位置：internal/discovery/channel/
type Channel interface {
	// Send 向广播目标或多播组发送一个数据包
	Send(packet []byte) error

	// Recv 阻塞直到收到一个数据报，返回原始字节和发送方地址
	//
	// 畸形或截断的数据报同样原样返回，校验由编解码器负责。
	// 通道关闭后返回错误。
	Recv() ([]byte, net.Addr, error)

	// LocalAddr 返回接收 socket 的本地地址
	LocalAddr() net.Addr

	// Close 关闭通道，可重复调用
	Close() error
}

// ════════════════════════════════════════════════════════════════════════════
// Dispatcher 接口
// ════════════════════════════════════════════════════════════════════════════

// Dispatcher 连接分发器
//
// Dispatch 发起到 peer 的 TCP 连接，并把唯一的结果交给 cb。
// Dispatch 本身不得阻塞调用方：拨号在独立的并发单元中进行。
//
// 实现位置：internal/discovery/dispatch/
//   - Spawner: 每个连接尝试一个 goroutine（默认，无上限）
//   - Pool:    有上限的并发拨号
type Dispatcher interface {
	Dispatch(peer netip.AddrPort, cb ConnectCallback)
}

// Dialer 拨号器
//
// *net.Dialer 满足该接口。
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}
