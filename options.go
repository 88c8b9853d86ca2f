package autodiscover

import (
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dep2p/go-autodiscover/config"
	"github.com/dep2p/go-autodiscover/internal/discovery/channel"
	pkgif "github.com/dep2p/go-autodiscover/pkg/interfaces"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	config *config.Config

	dialer     pkgif.Dialer
	dispatcher pkgif.Dispatcher
	registerer prometheus.Registerer
	clock      clock.Clock

	// opener 替换通道创建，仅用于测试
	opener channel.Opener
}

// newOptions 创建默认选项
func newOptions() *options {
	return &options{
		config: config.NewConfig(),
	}
}

func (o *options) apply(opts []Option) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return fmt.Errorf("apply option: %w", err)
		}
	}
	return nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              配置
// ════════════════════════════════════════════════════════════════════════════

// WithConfig 使用完整配置
//
// 覆盖之前所有选项对配置的修改，应放在其他选项之前。
// cfg.Discovery 中的 Method/Target 只用于校验，运行使用的是显式传入的 Method。
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return errors.New("config is nil")
		}
		c := *cfg
		o.config = &c
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              发现通道
// ════════════════════════════════════════════════════════════════════════════

// WithInterface 指定多播使用的网卡
//
// 默认在所有处于 up 状态且支持多播的网卡上加入组。
func WithInterface(name string) Option {
	return func(o *options) error {
		o.config.Discovery.Interface = name
		return nil
	}
}

// WithMulticastTTL 设置多播 TTL / IPv6 跳数限制
func WithMulticastTTL(ttl int) Option {
	return func(o *options) error {
		if ttl < 1 || ttl > 255 {
			return fmt.Errorf("multicast ttl %d out of range [1, 255]", ttl)
		}
		o.config.Discovery.MulticastTTL = ttl
		return nil
	}
}

// WithMulticastLoopback 设置多播回环
func WithMulticastLoopback(enabled bool) Option {
	return func(o *options) error {
		o.config.Discovery.MulticastLoopback = enabled
		return nil
	}
}

// WithReannounce 启用周期性重复公告
//
// 默认只公告一次，之后加入的节点无法发现本节点。interval 为 0 关闭重复公告。
func WithReannounce(interval time.Duration) Option {
	return func(o *options) error {
		if interval < 0 {
			return fmt.Errorf("reannounce interval must not be negative: %s", interval)
		}
		o.config.Discovery.ReannounceInterval = config.Duration(interval)
		return nil
	}
}

// WithResolveUnspecified 设置是否用发送方 IP 替换公告中的 0.0.0.0 / [::]
//
// 默认开启。
func WithResolveUnspecified(enabled bool) Option {
	return func(o *options) error {
		o.config.Discovery.ResolveUnspecified = enabled
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              连接分发
// ════════════════════════════════════════════════════════════════════════════

// WithMaxConcurrentDials 限制同时进行的拨号数
//
// 0 表示不限制（默认）；超过上限的节点被丢弃并计入 dispatch_rejected_total。
// 被丢弃的节点不会拨号，也不会回调 cb，此时“每个节点恰好回调一次”
// 只对未被丢弃的节点成立。
func WithMaxConcurrentDials(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("max concurrent dials must not be negative: %d", n)
		}
		o.config.Dispatch.MaxConcurrentDials = n
		return nil
	}
}

// WithDialTimeout 设置单次拨号超时，默认不设超时
func WithDialTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return fmt.Errorf("dial timeout must not be negative: %s", d)
		}
		o.config.Dispatch.DialTimeout = config.Duration(d)
		return nil
	}
}

// WithDialer 使用自定义拨号器
func WithDialer(d Dialer) Option {
	return func(o *options) error {
		if d == nil {
			return errors.New("dialer is nil")
		}
		o.dialer = d
		return nil
	}
}

// WithDispatcher 使用自定义分发器
//
// 设置后 WithMaxConcurrentDials、WithDialTimeout 和 WithDialer 不再生效。
func WithDispatcher(d Dispatcher) Option {
	return func(o *options) error {
		if d == nil {
			return errors.New("dispatcher is nil")
		}
		o.dispatcher = d
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              可观测性
// ════════════════════════════════════════════════════════════════════════════

// WithRegisterer 把发现指标注册到 r
//
// 未设置时不收集指标。
func WithRegisterer(r prometheus.Registerer) Option {
	return func(o *options) error {
		o.registerer = r
		return nil
	}
}

// WithMetricsNamespace 设置指标命名空间，默认 "autodiscover"
func WithMetricsNamespace(ns string) Option {
	return func(o *options) error {
		o.config.Metrics.Namespace = ns
		return nil
	}
}

// WithClock 设置重复公告使用的时钟
func WithClock(c clock.Clock) Option {
	return func(o *options) error {
		o.clock = c
		return nil
	}
}

// withOpener 替换通道创建
func withOpener(op channel.Opener) Option {
	return func(o *options) error {
		o.opener = op
		return nil
	}
}
