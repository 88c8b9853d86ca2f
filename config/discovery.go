package config

import (
	"fmt"

	"github.com/dep2p/go-autodiscover/pkg/types"
)

const (
	// DefaultBroadcastTarget 默认广播目标
	DefaultBroadcastTarget = "255.255.255.255:2020"

	// DefaultMulticastTarget 默认 IPv4 多播组
	DefaultMulticastTarget = "224.0.0.1:1337"

	// DefaultMulticast6Target 默认 IPv6 多播组
	DefaultMulticast6Target = "[ff0e::1]:1337"

	// DefaultMulticastTTL 默认多播 TTL / 跳数限制（仅本链路）
	DefaultMulticastTTL = 1

	// DefaultReadBufferSize 默认接收缓冲区大小
	DefaultReadBufferSize = 64 << 10
)

// DiscoveryConfig 发现配置
type DiscoveryConfig struct {
	// Method 发现方式: "broadcast" 或 "multicast"
	Method string `json:"method"`

	// Target 广播目标或多播组地址（ip:port）
	Target string `json:"target"`

	// Interface 多播使用的网卡名，空表示所有支持多播的网卡
	Interface string `json:"interface,omitempty"`

	// MulticastTTL 多播 TTL / IPv6 跳数限制
	MulticastTTL int `json:"multicast_ttl,omitempty"`

	// MulticastLoopback 是否把多播回送给本机（同机多进程互相发现需要开启）
	MulticastLoopback bool `json:"multicast_loopback"`

	// ReannounceInterval 重复公告间隔，0 表示只公告一次
	ReannounceInterval Duration `json:"reannounce_interval,omitempty"`

	// ResolveUnspecified 公告中的未指定地址（0.0.0.0 / ::）是否替换为发送方 IP
	ResolveUnspecified bool `json:"resolve_unspecified"`

	// ReadBufferSize 接收缓冲区大小（字节）
	ReadBufferSize int `json:"read_buffer_size,omitempty"`
}

// DefaultDiscoveryConfig 返回默认发现配置
func DefaultDiscoveryConfig() DiscoveryConfig {
	return DiscoveryConfig{
		Method:             types.MethodBroadcast,
		Target:             DefaultBroadcastTarget,
		MulticastTTL:       DefaultMulticastTTL,
		MulticastLoopback:  true,
		ResolveUnspecified: true,
		ReadBufferSize:     DefaultReadBufferSize,
	}
}

// ParseMethod 解析发现方式
func (c DiscoveryConfig) ParseMethod() (types.Method, error) {
	return types.ParseMethod(c.Method, c.Target)
}

// Validate 验证发现配置
func (c DiscoveryConfig) Validate() error {
	if _, err := c.ParseMethod(); err != nil {
		return fmt.Errorf("%w: discovery: %w", ErrInvalidConfig, err)
	}
	if c.MulticastTTL < 0 || c.MulticastTTL > 255 {
		return fmt.Errorf("%w: discovery: multicast_ttl must be in [0, 255]", ErrInvalidConfig)
	}
	if c.ReannounceInterval < 0 {
		return fmt.Errorf("%w: discovery: reannounce_interval must not be negative", ErrInvalidConfig)
	}
	if c.ReadBufferSize < 0 {
		return fmt.Errorf("%w: discovery: read_buffer_size must not be negative", ErrInvalidConfig)
	}
	return nil
}
