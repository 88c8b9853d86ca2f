package dispatch

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-autodiscover/config"
	pkgif "github.com/dep2p/go-autodiscover/pkg/interfaces"
)

// hangingDialer 对指定地址一直阻塞直到 ctx 取消，其余地址立即失败
type hangingDialer struct {
	hang    string
	started chan struct{}
	once    sync.Once
}

func (d *hangingDialer) DialContext(ctx context.Context, _, address string) (net.Conn, error) {
	if address == d.hang {
		d.once.Do(func() { close(d.started) })
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return nil, errors.New("connection refused")
}

// blockingDialer 阻塞直到 release 被关闭
type blockingDialer struct {
	release chan struct{}
	calls   atomic.Int32
}

func (d *blockingDialer) DialContext(ctx context.Context, _, _ string) (net.Conn, error) {
	d.calls.Add(1)
	select {
	case <-d.release:
		return nil, errors.New("released")
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type countingReporter struct {
	ok, failed, rejected atomic.Int32
}

func (r *countingReporter) AnnouncementSent() {}
func (r *countingReporter) PacketReceived()   {}
func (r *countingReporter) PacketMalformed()  {}
func (r *countingReporter) SelfAnnouncement() {}
func (r *countingReporter) DialResult(ok bool) {
	if ok {
		r.ok.Add(1)
	} else {
		r.failed.Add(1)
	}
}
func (r *countingReporter) DispatchRejected() { r.rejected.Add(1) }

// listen 启动只接受连接的 TCP 监听
func listen(t *testing.T) (net.Listener, netip.AddrPort) {
	t.Helper()
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			c.Close()
		}
	}()
	return ln, ln.Addr().(*net.TCPAddr).AddrPort()
}

func TestSpawner_DeliversConnection(t *testing.T) {
	_, addr := listen(t)
	reporter := &countingReporter{}
	s := NewSpawner(nil, WithReporter(reporter))
	defer s.Close()

	done := make(chan struct{})
	s.Dispatch(addr, func(conn net.Conn, err error) {
		defer close(done)
		if assert.NoError(t, err) && assert.NotNil(t, conn) {
			assert.Equal(t, addr.String(), conn.RemoteAddr().String())
			conn.Close()
		}
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("回调未执行")
	}
	assert.Equal(t, int32(1), reporter.ok.Load())
}

func TestSpawner_DeliversConnectError(t *testing.T) {
	// 取一个已关闭的端口
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().(*net.TCPAddr).AddrPort()
	require.NoError(t, ln.Close())

	reporter := &countingReporter{}
	s := NewSpawner(nil, WithReporter(reporter))
	defer s.Close()

	errCh := make(chan error, 1)
	s.Dispatch(addr, func(conn net.Conn, err error) {
		assert.Nil(t, conn)
		errCh <- err
	})

	select {
	case err := <-errCh:
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConnect))
		var ce *ConnectError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, addr, ce.Peer)
	case <-time.After(5 * time.Second):
		t.Fatal("回调未执行")
	}
	assert.Equal(t, int32(1), reporter.failed.Load())
}

func TestSpawner_SlowPeerDoesNotBlockOthers(t *testing.T) {
	slow := netip.MustParseAddrPort("10.0.0.1:4000")
	fast := netip.MustParseAddrPort("10.0.0.2:4000")
	dialer := &hangingDialer{hang: slow.String(), started: make(chan struct{})}
	s := NewSpawner(dialer)

	slowDone := make(chan error, 1)
	s.Dispatch(slow, func(_ net.Conn, err error) { slowDone <- err })
	<-dialer.started

	fastDone := make(chan error, 1)
	s.Dispatch(fast, func(_ net.Conn, err error) { fastDone <- err })

	select {
	case err := <-fastDone:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("慢节点阻塞了其他节点")
	}

	select {
	case <-slowDone:
		t.Fatal("慢节点不应已完成")
	default:
	}

	// 关闭后慢节点以错误回调
	require.NoError(t, s.Close())
	select {
	case err := <-slowDone:
		assert.True(t, errors.Is(err, ErrConnect))
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("关闭后慢节点未回调")
	}
}

func TestSpawner_DialTimeout(t *testing.T) {
	peer := netip.MustParseAddrPort("10.0.0.1:4000")
	dialer := &hangingDialer{hang: peer.String(), started: make(chan struct{})}
	s := NewSpawner(dialer, WithDialTimeout(20*time.Millisecond))
	defer s.Close()

	errCh := make(chan error, 1)
	s.Dispatch(peer, func(_ net.Conn, err error) { errCh <- err })

	select {
	case err := <-errCh:
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
	case <-time.After(2 * time.Second):
		t.Fatal("超时未生效")
	}
}

func TestSpawner_CallbackExactlyOnce(t *testing.T) {
	s := NewSpawner(&hangingDialer{started: make(chan struct{})})
	defer s.Close()

	const n = 50
	var calls atomic.Int32
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		peer := netip.AddrPortFrom(netip.MustParseAddr("10.0.0.1"), uint16(4000+i))
		s.Dispatch(peer, func(net.Conn, error) {
			calls.Add(1)
			wg.Done()
		})
	}
	wg.Wait()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(n), calls.Load())
}

func TestPool_RejectsWhenFull(t *testing.T) {
	dialer := &blockingDialer{release: make(chan struct{})}
	reporter := &countingReporter{}
	p := NewPool(2, dialer, WithReporter(reporter))
	defer p.Close()

	var calls atomic.Int32
	cb := func(net.Conn, error) { calls.Add(1) }

	for i := 0; i < 5; i++ {
		p.Dispatch(netip.AddrPortFrom(netip.MustParseAddr("10.0.0.1"), uint16(4000+i)), cb)
	}

	require.Eventually(t, func() bool { return dialer.calls.Load() == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(3), reporter.rejected.Load())

	close(dialer.release)
	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
	// 被丢弃的节点不回调
	assert.Never(t, func() bool { return calls.Load() > 2 }, 50*time.Millisecond, 5*time.Millisecond)

	// 名额释放后可以继续分发
	done := make(chan struct{})
	p.Dispatch(netip.MustParseAddrPort("10.0.0.9:4000"), func(net.Conn, error) { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("名额未释放")
	}
}

func TestPool_MinimumLimit(t *testing.T) {
	p := NewPool(0, nil)
	defer p.Close()
	assert.Equal(t, int64(1), p.limit)
}

func TestConnectError(t *testing.T) {
	cause := errors.New("refused")
	err := error(&ConnectError{Peer: netip.MustParseAddrPort("10.0.0.5:4000"), Err: cause})

	assert.True(t, errors.Is(err, ErrConnect))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "10.0.0.5:4000")
}

func TestModule_SelectsImplementation(t *testing.T) {
	tests := []struct {
		name     string
		maxDials int
		wantPool bool
	}{
		{"unbounded", 0, false},
		{"bounded", 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewConfig()
			cfg.Dispatch.MaxConcurrentDials = tt.maxDials

			var d pkgif.Dispatcher
			app := fxtest.New(t,
				fx.Supply(cfg),
				Module,
				fx.Populate(&d),
			)
			app.RequireStart()
			defer app.RequireStop()

			_, isPool := d.(*Pool)
			assert.Equal(t, tt.wantPool, isPool)
		})
	}
}

func TestModule_StopCancelsDials(t *testing.T) {
	tests := []struct {
		name       string
		keep       bool
		wantCancel bool
	}{
		{"cancel", false, true},
		{"keep", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialer := &blockingDialer{release: make(chan struct{})}
			keep := tt.keep

			var d pkgif.Dispatcher
			app := fxtest.New(t,
				fx.Supply(config.NewConfig()),
				fx.Provide(func() pkgif.Dialer { return dialer }),
				fx.Provide(func() KeepDials { return func() bool { return keep } }),
				Module,
				fx.Populate(&d),
			)
			app.RequireStart()

			result := make(chan error, 1)
			d.Dispatch(netip.MustParseAddrPort("10.0.0.9:5000"), func(_ net.Conn, err error) { result <- err })
			require.Eventually(t, func() bool { return dialer.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

			app.RequireStop()

			if tt.wantCancel {
				select {
				case err := <-result:
					assert.ErrorIs(t, err, context.Canceled)
				case <-time.After(2 * time.Second):
					t.Fatal("停止后拨号未被取消")
				}
				return
			}

			select {
			case err := <-result:
				t.Fatalf("停止后拨号不应结束: %v", err)
			case <-time.After(50 * time.Millisecond):
			}
			close(dialer.release)
			select {
			case err := <-result:
				assert.NotErrorIs(t, err, context.Canceled)
				assert.ErrorContains(t, err, "released")
			case <-time.After(2 * time.Second):
				t.Fatal("拨号结果未交付")
			}
		})
	}
}
