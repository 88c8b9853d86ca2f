package loop

import (
	pkgif "github.com/dep2p/go-autodiscover/pkg/interfaces"
)

// Option 循环配置选项
type Option func(*Loop)

// WithReporter 设置指标上报
func WithReporter(r pkgif.Reporter) Option {
	return func(l *Loop) {
		if r != nil {
			l.reporter = r
		}
	}
}

// WithResolveUnspecified 设置是否用发送方 IP 替换公告中的未指定地址
//
// 默认开启。
func WithResolveUnspecified(enabled bool) Option {
	return func(l *Loop) {
		l.resolveUnspecified = enabled
	}
}
