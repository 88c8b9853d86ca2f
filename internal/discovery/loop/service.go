package loop

import (
	"context"
	"net/netip"
	"sync"

	"github.com/dep2p/go-autodiscover/internal/core/metrics"
	"github.com/dep2p/go-autodiscover/internal/discovery/channel"
	pkgif "github.com/dep2p/go-autodiscover/pkg/interfaces"
	"github.com/dep2p/go-autodiscover/pkg/types"
)

// Params 一次发现运行的参数
type Params struct {
	Local    netip.AddrPort
	Method   types.Method
	Callback pkgif.ConnectCallback
}

// Service 在后台运行发现循环
type Service struct {
	params     Params
	opener     channel.Opener
	dispatcher pkgif.Dispatcher
	reporter   pkgif.Reporter
	opts       []Option

	mu       sync.Mutex
	loop     *Loop
	cancel   context.CancelFunc
	result   chan error
	finished chan struct{}
	err      error
}

// NewService 创建 Service
func NewService(params Params, opener channel.Opener, dispatcher pkgif.Dispatcher, reporter pkgif.Reporter, opts ...Option) *Service {
	if reporter == nil {
		reporter = metrics.Noop()
	}
	return &Service{
		params:     params,
		opener:     opener,
		dispatcher: dispatcher,
		reporter:   reporter,
		opts:       opts,
		result:     make(chan error, 1),
		finished:   make(chan struct{}),
	}
}

// Start 打开通道并在后台启动循环
//
// 通道创建失败时直接返回该错误（errors.Is(err, channel.ErrSetup)）。
func (s *Service) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loop != nil {
		return ErrAlreadyRunning
	}
	if err := types.ValidateMethod(s.params.Method); err != nil {
		return err
	}

	ch, err := s.opener(s.params.Method)
	if err != nil {
		log.Error("创建发现通道失败", "method", s.params.Method, "error", err)
		return err
	}

	opts := append([]Option{WithReporter(s.reporter)}, s.opts...)
	l, err := New(s.params.Local, ch, s.dispatcher, s.params.Callback, opts...)
	if err != nil {
		ch.Close()
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.loop = l
	s.cancel = cancel

	log.Info("发现服务启动", "method", s.params.Method, "local", s.params.Local)

	go func() {
		err := l.Run(ctx)
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		s.result <- err
		close(s.result)
		close(s.finished)
	}()
	return nil
}

// Stop 取消循环并等待其退出
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel := s.cancel
	started := s.loop != nil
	s.mu.Unlock()

	if !started {
		return nil
	}
	cancel()

	select {
	case <-s.finished:
		log.Info("发现服务已停止")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done 返回循环结果
//
// 循环退出时发送一次结果后关闭；只有一个接收者能收到该值，其余接收者可用 Err。
func (s *Service) Done() <-chan error {
	return s.result
}

// Finished 在循环退出后关闭
func (s *Service) Finished() <-chan struct{} {
	return s.finished
}

// Err 返回循环退出的原因，运行中返回 nil
func (s *Service) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// State 返回循环状态
func (s *Service) State() types.DiscoveryState {
	s.mu.Lock()
	l := s.loop
	s.mu.Unlock()
	if l == nil {
		return types.StateIdle
	}
	return l.State()
}
