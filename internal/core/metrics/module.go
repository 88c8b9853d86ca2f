package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-autodiscover/config"
)

// Config 指标配置
type Config struct {
	// Enabled 是否启用指标收集
	Enabled bool

	// Namespace 指标命名空间
	Namespace string
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		Namespace: DefaultNamespace,
	}
}

// ConfigFromUnified 从统一配置创建指标配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return Config{
		Enabled:   cfg.Metrics.Enabled,
		Namespace: cfg.Metrics.Namespace,
	}
}

// Params Metrics 依赖参数
type Params struct {
	fx.In

	LC         fx.Lifecycle
	UnifiedCfg *config.Config        `optional:"true"`
	Registerer prometheus.Registerer `optional:"true"`
}

// Module 是 metrics 的 Fx 模块
var Module = fx.Module("metrics",
	fx.Provide(NewReporterFromParams),
)

// NewReporterFromParams 从参数创建 Reporter
//
// 未启用或没有 Registerer 时返回 Noop()。
// 注册在构造时完成，注销挂在 OnStop 上，以便同一 Registerer 可被多次运行复用。
func NewReporterFromParams(p Params) (Reporter, error) {
	cfg := ConfigFromUnified(p.UnifiedCfg)
	if !cfg.Enabled || p.Registerer == nil {
		return Noop(), nil
	}

	counter := NewDiscoveryCounter(cfg.Namespace)
	if err := counter.Register(p.Registerer); err != nil {
		counter.Unregister(p.Registerer)
		return nil, err
	}
	p.LC.Append(fx.Hook{
		OnStop: func(context.Context) error {
			counter.Unregister(p.Registerer)
			return nil
		},
	})
	return counter, nil
}
