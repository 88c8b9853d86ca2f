package config

import "fmt"

// DispatchConfig 连接分发配置
type DispatchConfig struct {
	// MaxConcurrentDials 同时进行的拨号上限，0 表示不限制（每个节点一个 goroutine）
	MaxConcurrentDials int `json:"max_concurrent_dials,omitempty"`

	// DialTimeout 单次拨号超时，0 表示不设超时
	DialTimeout Duration `json:"dial_timeout,omitempty"`
}

// DefaultDispatchConfig 返回默认分发配置
func DefaultDispatchConfig() DispatchConfig {
	return DispatchConfig{}
}

// Validate 验证分发配置
func (c DispatchConfig) Validate() error {
	if c.MaxConcurrentDials < 0 {
		return fmt.Errorf("%w: dispatch: max_concurrent_dials must not be negative", ErrInvalidConfig)
	}
	if c.DialTimeout < 0 {
		return fmt.Errorf("%w: dispatch: dial_timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}
