package dispatch

import (
	"context"
	"net"
	"net/netip"

	"github.com/dep2p/go-autodiscover/internal/util/logger"
	pkgif "github.com/dep2p/go-autodiscover/pkg/interfaces"
)

var log = logger.Logger("discovery/dispatch")

// Spawner 每次分发启动一个 goroutine
type Spawner struct {
	opts   options
	ctx    context.Context
	cancel context.CancelFunc
}

// 确保 Spawner 实现 Dispatcher 接口
var _ pkgif.Dispatcher = (*Spawner)(nil)

// NewSpawner 创建 Spawner
//
// dialer 为 nil 时使用零值 net.Dialer。
func NewSpawner(dialer pkgif.Dialer, opts ...Option) *Spawner {
	o := newOptions(dialer, opts)
	ctx, cancel := context.WithCancel(o.ctx)
	return &Spawner{opts: o, ctx: ctx, cancel: cancel}
}

// Dispatch 异步拨号 peer，结果恰好回调一次
func (s *Spawner) Dispatch(peer netip.AddrPort, cb pkgif.ConnectCallback) {
	go s.connect(peer, cb)
}

// Close 取消所有未完成的拨号
//
// 不等待回调结束；被取消的拨号仍以错误回调。
func (s *Spawner) Close() error {
	s.cancel()
	return nil
}

// connect 拨号并交付结果
func (s *Spawner) connect(peer netip.AddrPort, cb pkgif.ConnectCallback) {
	conn, err := s.dial(peer)
	if err != nil {
		cb(nil, err)
		return
	}
	cb(conn, nil)
}

func (s *Spawner) dial(peer netip.AddrPort) (net.Conn, error) {
	ctx := s.ctx
	if s.opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.timeout)
		defer cancel()
	}

	conn, err := s.opts.dialer.DialContext(ctx, "tcp", peer.String())
	if err != nil {
		s.opts.reporter.DialResult(false)
		log.Debug("拨号失败", "peer", peer, "error", err)
		return nil, &ConnectError{Peer: peer, Err: err}
	}

	s.opts.reporter.DialResult(true)
	log.Debug("拨号成功", "peer", peer, "remote", conn.RemoteAddr())
	return conn, nil
}
