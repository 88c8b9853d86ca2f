package dispatch

import (
	"net/netip"

	"golang.org/x/sync/semaphore"

	pkgif "github.com/dep2p/go-autodiscover/pkg/interfaces"
)

// Pool 有上限的分发器
//
// 最多 limit 个拨号+回调单元同时进行。满载时新的节点被丢弃：
// 不回调，只记录日志和 dispatch_rejected_total，发现循环不会阻塞。
type Pool struct {
	*Spawner
	limit int64
	sem   *semaphore.Weighted
}

// 确保 Pool 实现 Dispatcher 接口
var _ pkgif.Dispatcher = (*Pool)(nil)

// NewPool 创建 Pool
//
// limit 小于 1 时按 1 处理。
func NewPool(limit int, dialer pkgif.Dialer, opts ...Option) *Pool {
	if limit < 1 {
		limit = 1
	}
	return &Pool{
		Spawner: NewSpawner(dialer, opts...),
		limit:   int64(limit),
		sem:     semaphore.NewWeighted(int64(limit)),
	}
}

// Dispatch 在有空闲名额时异步拨号，否则丢弃
//
// 被丢弃的节点不调用 cb。
func (p *Pool) Dispatch(peer netip.AddrPort, cb pkgif.ConnectCallback) {
	if !p.sem.TryAcquire(1) {
		p.opts.reporter.DispatchRejected()
		log.Warn("拨号并发已满，丢弃节点", "peer", peer, "limit", p.limit)
		return
	}

	go func() {
		defer p.sem.Release(1)
		p.connect(peer, cb)
	}()
}
