package channel

import (
	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-autodiscover/config"
	pkgif "github.com/dep2p/go-autodiscover/pkg/interfaces"
	"github.com/dep2p/go-autodiscover/pkg/types"
)

// Opener 按发现方式打开通道
//
// 发现循环在启动时调用一次；测试可以注入返回假通道的 Opener。
type Opener func(method types.Method) (pkgif.Channel, error)

// NewOpener 创建 Opener
//
// cfg.ReannounceInterval 大于 0 时返回的通道带有 Reannouncer。
func NewOpener(cfg Config, clk clock.Clock, reporter pkgif.Reporter) Opener {
	return func(method types.Method) (pkgif.Channel, error) {
		ch, err := Open(method, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.ReannounceInterval > 0 {
			log.Debug("启用重复公告", "interval", cfg.ReannounceInterval)
			return NewReannouncer(ch, cfg.ReannounceInterval, clk, reporter), nil
		}
		return ch, nil
	}
}

// ModuleInput 模块输入依赖
type ModuleInput struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
	Clock      clock.Clock    `optional:"true"`
	Reporter   pkgif.Reporter `optional:"true"`
}

// ProvideOpener 提供 Opener
func ProvideOpener(input ModuleInput) Opener {
	return NewOpener(ConfigFromUnified(input.UnifiedCfg), input.Clock, input.Reporter)
}

// Module 是 channel 的 Fx 模块
var Module = fx.Module("discovery/channel",
	fx.Provide(ProvideOpener),
)
