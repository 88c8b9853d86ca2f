package channel

import (
	"time"

	"github.com/dep2p/go-autodiscover/config"
)

// Config 通道配置
type Config struct {
	// Interface 多播网卡名，空表示所有支持多播的网卡
	Interface string

	// MulticastTTL 多播 TTL / IPv6 跳数限制
	MulticastTTL int

	// MulticastLoopback 多播回环
	MulticastLoopback bool

	// ReadBufferSize 单次读取缓冲区大小
	ReadBufferSize int

	// ReannounceInterval 重复公告间隔，0 表示不重复
	ReannounceInterval time.Duration
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		MulticastTTL:      config.DefaultMulticastTTL,
		MulticastLoopback: true,
		ReadBufferSize:    config.DefaultReadBufferSize,
	}
}

// ConfigFromUnified 从统一配置创建通道配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	d := cfg.Discovery
	return Config{
		Interface:          d.Interface,
		MulticastTTL:       d.MulticastTTL,
		MulticastLoopback:  d.MulticastLoopback,
		ReadBufferSize:     d.ReadBufferSize,
		ReannounceInterval: d.ReannounceInterval.Duration(),
	}
}

func (c Config) readBufferSize() int {
	if c.ReadBufferSize <= 0 {
		return config.DefaultReadBufferSize
	}
	return c.ReadBufferSize
}
