package loop

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"sync/atomic"

	"github.com/dep2p/go-autodiscover/internal/core/metrics"
	"github.com/dep2p/go-autodiscover/internal/discovery/codec"
	"github.com/dep2p/go-autodiscover/internal/util/addrutil"
	"github.com/dep2p/go-autodiscover/internal/util/logger"
	pkgif "github.com/dep2p/go-autodiscover/pkg/interfaces"
	"github.com/dep2p/go-autodiscover/pkg/types"
)

var log = logger.Logger("discovery/loop")

// Loop 发现循环
type Loop struct {
	local      netip.AddrPort // 公告的地址
	self       netip.AddrPort // 自过滤比较用的规范化地址
	ch         pkgif.Channel
	dispatcher pkgif.Dispatcher
	cb         pkgif.ConnectCallback

	reporter           pkgif.Reporter
	resolveUnspecified bool

	running atomic.Bool
	state   atomic.Int32
}

// New 创建发现循环
//
// 循环在 Run 期间独占 ch，Run 返回时关闭它。
func New(local netip.AddrPort, ch pkgif.Channel, dispatcher pkgif.Dispatcher, cb pkgif.ConnectCallback, opts ...Option) (*Loop, error) {
	if !local.IsValid() {
		return nil, fmt.Errorf("%w: %s", types.ErrInvalidListenAddress, local)
	}
	if ch == nil {
		return nil, ErrNilChannel
	}
	if dispatcher == nil {
		return nil, ErrNilDispatcher
	}
	if cb == nil {
		return nil, ErrNilCallback
	}

	l := &Loop{
		local:              local,
		self:               codec.Normalize(local),
		ch:                 ch,
		dispatcher:         dispatcher,
		cb:                 cb,
		reporter:           metrics.Noop(),
		resolveUnspecified: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.state.Store(int32(types.StateIdle))
	return l, nil
}

// State 返回当前状态
func (l *Loop) State() types.DiscoveryState {
	return types.DiscoveryState(l.state.Load())
}

func (l *Loop) setState(s types.DiscoveryState) {
	l.state.Store(int32(s))
}

// Run 发送一次公告后持续接收
//
// 只在公告发送失败（*Error, Op=announce）、接收失败（*Error, Op=receive）
// 或 ctx 取消（ctx.Err()）时返回。一个 Loop 只能运行一次。
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer l.setState(types.StateStopped)
	defer l.ch.Close()

	// ctx 取消时关闭通道，解除阻塞的 Recv
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			l.ch.Close()
		case <-stop:
		}
	}()

	l.setState(types.StateAnnouncing)
	if err := l.announce(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Error("公告发送失败", "local", l.local, "error", err)
		return NewError(OpAnnounce, err, "send announcement")
	}

	l.setState(types.StateListening)
	log.Info("开始监听公告", "local", l.local, "channel", l.ch.LocalAddr())

	for {
		data, from, err := l.ch.Recv()
		if err != nil {
			if ctx.Err() != nil {
				log.Debug("发现循环已取消", "local", l.local)
				return ctx.Err()
			}
			log.Error("接收失败，发现循环终止", "error", err)
			return NewError(OpReceive, err, "receive announcement")
		}
		l.handle(data, from)
	}
}

// announce 发送唯一一次公告，不重试
func (l *Loop) announce() error {
	packet := codec.Encode(l.local)
	if err := l.ch.Send(packet); err != nil {
		return err
	}
	l.reporter.AnnouncementSent()
	log.Info("已发送公告", "local", l.local, "bytes", len(packet))
	return nil
}

// handle 处理一个数据报：解码、自过滤、分发
func (l *Loop) handle(data []byte, from net.Addr) {
	l.reporter.PacketReceived()

	peer, err := codec.Decode(data)
	if err != nil {
		l.reporter.PacketMalformed()
		log.Warn("丢弃畸形数据报", "from", from, "len", len(data))
		return
	}

	if codec.Normalize(peer) == l.self {
		l.reporter.SelfAnnouncement()
		log.Debug("丢弃自身公告", "from", from)
		return
	}

	if l.resolveUnspecified {
		peer = addrutil.ResolveUnspecified(peer, from)
	}

	log.Info("发现节点", "peer", peer, "from", from)
	l.dispatcher.Dispatch(peer, l.cb)
}
