package autodiscover

import (
	"fmt"
	"net/netip"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-autodiscover/internal/core/metrics"
	"github.com/dep2p/go-autodiscover/internal/discovery/channel"
	"github.com/dep2p/go-autodiscover/internal/discovery/dispatch"
	"github.com/dep2p/go-autodiscover/internal/discovery/loop"
	"github.com/dep2p/go-autodiscover/internal/util/logger"
	pkgif "github.com/dep2p/go-autodiscover/pkg/interfaces"
)

var fxLogger = logger.Logger("autodiscover/fx")

// buildFxApp 构建 Fx 应用
//
// 加载顺序（按依赖）：
//  1. 配置与运行参数
//  2. Metrics → Reporter
//  3. Channel → Opener（注入 Opener 时跳过）
//  4. Dispatch → Dispatcher（WithDispatcher 时跳过）
//  5. Loop → Service，生命周期挂在 OnStart/OnStop 上
func buildFxApp(params loop.Params, o *options, keepDials dispatch.KeepDials) (*fx.App, *loop.Service, error) {
	if err := o.config.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config validation failed: %w", err)
	}

	var svc *loop.Service

	modules := []fx.Option{
		fx.Supply(o.config),
		fx.Supply(params),
		metrics.Module,
	}

	if o.registerer != nil {
		reg := o.registerer
		modules = append(modules, fx.Provide(func() prometheus.Registerer { return reg }))
	}
	if o.clock != nil {
		clk := o.clock
		modules = append(modules, fx.Provide(func() clock.Clock { return clk }))
	}

	if o.opener != nil {
		op := o.opener
		modules = append(modules, fx.Provide(func() channel.Opener { return op }))
	} else {
		modules = append(modules, channel.Module)
	}

	if o.dispatcher != nil {
		d := o.dispatcher
		fxLogger.Debug("使用自定义分发器", "type", fmt.Sprintf("%T", d))
		modules = append(modules, fx.Provide(func() pkgif.Dispatcher { return d }))
	} else {
		if o.dialer != nil {
			dialer := o.dialer
			modules = append(modules, fx.Provide(func() pkgif.Dialer { return dialer }))
		}
		modules = append(modules,
			fx.Provide(func() dispatch.KeepDials { return keepDials }),
			dispatch.Module,
		)
	}

	modules = append(modules,
		loop.Module,
		fx.Populate(&svc),
		// 禁用 Fx 日志输出（避免干扰用户日志）
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
	)

	app := fx.New(modules...)
	if err := app.Err(); err != nil {
		return nil, nil, fmt.Errorf("build fx app: %w", err)
	}
	return app, svc, nil
}

// newParams 组装运行参数
func newParams(local netip.AddrPort, method Method, cb ConnectCallback) loop.Params {
	return loop.Params{Local: local, Method: method, Callback: cb}
}
