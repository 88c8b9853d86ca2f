package channel

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	pkgif "github.com/dep2p/go-autodiscover/pkg/interfaces"
)

// Reannouncer 周期性重发公告的通道装饰器
//
// 第一次 Send 成功后启动定时器，每个 interval 重发最近一次发送的数据包，
// 直到 Close。重发失败只记录日志，不影响发现循环。
type Reannouncer struct {
	pkgif.Channel

	interval time.Duration
	clock    clock.Clock
	reporter pkgif.Reporter

	mu      sync.Mutex
	last    []byte
	started bool
	closed  bool

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// 确保 Reannouncer 实现 Channel 接口
var _ pkgif.Channel = (*Reannouncer)(nil)

// NewReannouncer 包装通道
//
// clk 为 nil 时使用系统时钟；reporter 可以为 nil。
func NewReannouncer(ch pkgif.Channel, interval time.Duration, clk clock.Clock, reporter pkgif.Reporter) *Reannouncer {
	if clk == nil {
		clk = clock.New()
	}
	return &Reannouncer{
		Channel:  ch,
		interval: interval,
		clock:    clk,
		reporter: reporter,
		done:     make(chan struct{}),
	}
}

// Send 发送公告并记住数据包用于后续重发
func (r *Reannouncer) Send(packet []byte) error {
	if err := r.Channel.Send(packet); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.last = append(r.last[:0], packet...)
	if !r.started && !r.closed {
		r.started = true
		// 定时器在此同步创建，保证 Send 返回后第一次触发不会丢失
		ticker := r.clock.Ticker(r.interval)
		r.wg.Add(1)
		go r.run(ticker)
	}
	return nil
}

func (r *Reannouncer) run(ticker *clock.Ticker) {
	defer r.wg.Done()
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			r.mu.Lock()
			packet := append([]byte(nil), r.last...)
			r.mu.Unlock()

			if err := r.Channel.Send(packet); err != nil {
				log.Warn("重复公告失败", "error", err)
				continue
			}
			if r.reporter != nil {
				r.reporter.AnnouncementSent()
			}
			log.Debug("已重复公告", "bytes", len(packet))
		}
	}
}

// Close 停止重发并关闭底层通道
func (r *Reannouncer) Close() error {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		r.closed = true
		r.mu.Unlock()
		close(r.done)
	})
	r.wg.Wait()
	return r.Channel.Close()
}
