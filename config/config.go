// Package config 提供统一的配置管理
//
// 本包采用混合配置模式：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义
//   - 支持从 JSON 加载配置
//   - 支持预设配置（broadcast/multicast/multicast6）
//
// 使用示例：
//
//	// 创建默认配置（IPv4 广播 255.255.255.255:2020）
//	cfg := config.NewConfig()
//	cfg.Discovery.Interface = "eth0"
//
//	// 应用预设
//	config.ApplyPreset(cfg, "multicast6")
//
//	// 从 JSON 加载
//	cfg, err := config.FromJSON(data)
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config 是 go-autodiscover 的完整配置结构
//
//   - Discovery: 发现方式、目标地址、网卡、重复公告
//   - Dispatch:  拨号并发上限与超时
//   - Metrics:   prometheus 指标
type Config struct {
	// Discovery 发现配置
	Discovery DiscoveryConfig `json:"discovery"`

	// Dispatch 连接分发配置
	Dispatch DispatchConfig `json:"dispatch"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Discovery: DefaultDiscoveryConfig(),
		Dispatch:  DefaultDispatchConfig(),
		Metrics:   DefaultMetricsConfig(),
	}
}

// Validate 验证配置的有效性
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if err := c.Discovery.Validate(); err != nil {
		return err
	}
	if err := c.Dispatch.Validate(); err != nil {
		return err
	}
	return c.Metrics.Validate()
}

// FromJSON 从 JSON 数据创建配置
//
// 未出现的字段保留默认值。示例：
//
//	{
//	  "discovery": {"method": "multicast", "target": "[ff0e::1]:1337", "reannounce_interval": "30s"},
//	  "dispatch": {"max_concurrent_dials": 64, "dial_timeout": "5s"}
//	}
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// LoadFile 从 JSON 文件加载配置
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: 用户指定的配置文件路径是预期行为
	if err != nil {
		return nil, err
	}
	return FromJSON(data)
}
