package dispatch

import (
	"context"
	"net"
	"time"

	"github.com/dep2p/go-autodiscover/internal/core/metrics"
	pkgif "github.com/dep2p/go-autodiscover/pkg/interfaces"
)

// options 分发器选项
type options struct {
	dialer   pkgif.Dialer
	timeout  time.Duration
	reporter pkgif.Reporter
	ctx      context.Context
}

// Option 分发器配置选项
type Option func(*options)

// WithDialTimeout 设置单次拨号超时，0 表示不设超时
func WithDialTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithReporter 设置指标上报
func WithReporter(r pkgif.Reporter) Option {
	return func(o *options) {
		if r != nil {
			o.reporter = r
		}
	}
}

// WithContext 设置拨号的基础 context
//
// 基础 context 取消后，尚未完成的拨号以错误结束（回调仍会执行）。
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

func newOptions(dialer pkgif.Dialer, opts []Option) options {
	o := options{
		dialer:   dialer,
		reporter: metrics.Noop(),
		ctx:      context.Background(),
	}
	if o.dialer == nil {
		o.dialer = &net.Dialer{}
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
