package loop

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-autodiscover/config"
	"github.com/dep2p/go-autodiscover/internal/discovery/channel"
	pkgif "github.com/dep2p/go-autodiscover/pkg/interfaces"
)

// ModuleInput 模块输入依赖
type ModuleInput struct {
	fx.In

	LC         fx.Lifecycle
	Params     Params
	Opener     channel.Opener
	Dispatcher pkgif.Dispatcher
	Reporter   pkgif.Reporter `optional:"true"`
	UnifiedCfg *config.Config `optional:"true"`
}

// ProvideService 提供 Service 并挂接生命周期
func ProvideService(input ModuleInput) *Service {
	resolve := true
	if input.UnifiedCfg != nil {
		resolve = input.UnifiedCfg.Discovery.ResolveUnspecified
	}

	svc := NewService(input.Params, input.Opener, input.Dispatcher, input.Reporter,
		WithResolveUnspecified(resolve))

	input.LC.Append(fx.Hook{
		OnStart: svc.Start,
		OnStop:  svc.Stop,
	})
	return svc
}

// Module 是 loop 的 Fx 模块
var Module = fx.Module("discovery/loop",
	fx.Provide(ProvideService),
)
