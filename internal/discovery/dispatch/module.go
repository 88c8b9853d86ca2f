package dispatch

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-autodiscover/config"
	pkgif "github.com/dep2p/go-autodiscover/pkg/interfaces"
)

// KeepDials 在停止时被询问，返回 true 则保留未完成的拨号
//
// 未提供时停止总是取消拨号。
type KeepDials func() bool

// ModuleInput 模块输入依赖
type ModuleInput struct {
	fx.In

	LC         fx.Lifecycle
	UnifiedCfg *config.Config `optional:"true"`
	Dialer     pkgif.Dialer   `optional:"true"`
	Reporter   pkgif.Reporter `optional:"true"`
	KeepDials  KeepDials      `optional:"true"`
}

// ModuleOutput 模块输出
type ModuleOutput struct {
	fx.Out

	Dispatcher pkgif.Dispatcher
}

// ProvideDispatcher 按配置提供分发器
//
// MaxConcurrentDials 为 0 时使用 Spawner，否则使用 Pool。
// 停止时取消未完成的拨号，除非 KeepDials 返回 true。
func ProvideDispatcher(input ModuleInput) ModuleOutput {
	cfg := config.DefaultDispatchConfig()
	if input.UnifiedCfg != nil {
		cfg = input.UnifiedCfg.Dispatch
	}

	opts := []Option{
		WithDialTimeout(cfg.DialTimeout.Duration()),
		WithReporter(input.Reporter),
	}

	var (
		d       pkgif.Dispatcher
		spawner *Spawner
	)
	if cfg.MaxConcurrentDials > 0 {
		p := NewPool(cfg.MaxConcurrentDials, input.Dialer, opts...)
		d, spawner = p, p.Spawner
	} else {
		spawner = NewSpawner(input.Dialer, opts...)
		d = spawner
	}

	input.LC.Append(fx.Hook{
		OnStop: func(context.Context) error {
			if input.KeepDials != nil && input.KeepDials() {
				log.Debug("停止时保留未完成的拨号")
				return nil
			}
			return spawner.Close()
		},
	})

	return ModuleOutput{Dispatcher: d}
}

// Module 是 dispatch 的 Fx 模块
//
// 调用方通过 fx.Decorate 或提供自己的 Dispatcher 替换默认实现时不应包含本模块。
var Module = fx.Module("discovery/dispatch",
	fx.Provide(ProvideDispatcher),
)
