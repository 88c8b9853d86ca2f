package config

import (
	"fmt"
	"regexp"
)

var namespacePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// MetricsConfig 指标配置
type MetricsConfig struct {
	// Enabled 是否启用指标
	Enabled bool `json:"enabled"`

	// Namespace prometheus 指标命名空间
	Namespace string `json:"namespace,omitempty"`
}

// DefaultMetricsConfig 返回默认指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   true,
		Namespace: "autodiscover",
	}
}

// Validate 验证指标配置
func (c MetricsConfig) Validate() error {
	if c.Enabled && !namespacePattern.MatchString(c.Namespace) {
		return fmt.Errorf("%w: metrics: invalid namespace %q", ErrInvalidConfig, c.Namespace)
	}
	return nil
}
