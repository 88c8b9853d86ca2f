package autodiscover

import (
	"context"
	"fmt"
	"net/netip"
	"sync"
	"sync/atomic"

	"go.uber.org/fx"

	"github.com/dep2p/go-autodiscover/internal/discovery/loop"
	"github.com/dep2p/go-autodiscover/internal/util/logger"
	"github.com/dep2p/go-autodiscover/pkg/types"
)

var log = logger.Logger("autodiscover")

// Node 一次发现运行
//
// 由 New 创建，Start 打开通道、发送公告并在后台监听，Stop 关闭通道。
// 一个 Node 只能启动一次。
type Node struct {
	mu sync.Mutex

	app *fx.App
	svc *loop.Service

	local  netip.AddrPort
	method Method

	started bool
	closed  bool

	// keepDials 为 true 时停止不取消未完成的拨号
	keepDials atomic.Bool
}

// New 创建节点
//
// local 是本节点的 TCP 监听地址，会原样编码进公告；method 决定广播或多播；
// cb 对每个被发现的节点恰好调用一次；设置 WithMaxConcurrentDials 后，
// 因并发已满被丢弃的节点不会回调。
func New(local netip.AddrPort, method Method, cb ConnectCallback, opts ...Option) (*Node, error) {
	if !local.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidListenAddress, local)
	}
	if err := types.ValidateMethod(method); err != nil {
		return nil, err
	}
	if cb == nil {
		return nil, loop.ErrNilCallback
	}

	o := newOptions()
	if err := o.apply(opts); err != nil {
		return nil, err
	}

	n := &Node{local: local, method: method}
	app, svc, err := buildFxApp(newParams(local, method, cb), o, n.keepDials.Load)
	if err != nil {
		return nil, err
	}
	n.app, n.svc = app, svc
	return n, nil
}

// Start 启动发现
//
// 返回时通道已创建，公告在后台发送。通道创建失败时返回的错误满足
// errors.Is(err, ErrChannelSetup)；公告发送失败通过 Done 上报。
func (n *Node) Start(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return ErrNodeClosed
	}
	if n.started {
		return ErrAlreadyStarted
	}

	if err := n.app.Start(ctx); err != nil {
		n.closed = true
		log.Error("启动发现失败", "method", n.method, "error", err)
		return err
	}

	n.started = true
	log.Info("发现已启动", "method", n.method, "local", n.local)
	return nil
}

// Stop 停止发现并释放通道
//
// 已启动的拨号会被取消，对应回调仍以错误执行。Stop 之后节点不能再启动。
func (n *Node) Stop(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return nil
	}
	if !n.started {
		return ErrNotStarted
	}

	n.closed = true
	n.started = false
	if err := n.app.Stop(ctx); err != nil {
		log.Error("停止发现失败", "error", err)
		return fmt.Errorf("stop fx app: %w", err)
	}

	log.Info("发现已停止")
	return nil
}

// release 停止发现但让已启动的拨号继续完成
func (n *Node) release(ctx context.Context) error {
	n.keepDials.Store(true)
	return n.Stop(ctx)
}

// Done 在发现循环退出时发送一次结果后关闭
//
// 结果是 *LoopError（公告或接收失败），或 Stop 导致的 context.Canceled。
func (n *Node) Done() <-chan error {
	return n.svc.Done()
}

// Err 返回发现循环退出的原因，运行中返回 nil
func (n *Node) Err() error {
	return n.svc.Err()
}

// State 返回发现状态
func (n *Node) State() State {
	return n.svc.State()
}

// LocalAddr 返回公告的监听地址
func (n *Node) LocalAddr() netip.AddrPort {
	return n.local
}

// Method 返回发现方式
func (n *Node) Method() Method {
	return n.method
}
