// Package logger 提供 go-autodiscover 的统一日志系统
//
// 基于标准库 log/slog，支持：
//   - 按子系统配置日志级别
//   - 环境变量配置（AUTODISCOVER_LOG_LEVEL, AUTODISCOVER_LOG_FORMAT）
//   - 结构化日志
//
// 使用示例:
//
//	package loop
//
//	import "github.com/dep2p/go-autodiscover/internal/util/logger"
//
//	var log = logger.Logger("discovery/loop")
//
//	func foo() {
//	    log.Info("发现节点", "peer", peer, "from", src)
//	    log.Warn("丢弃畸形数据包", "len", n)
//	}
//
// 环境变量配置:
//
//	# 所有模块 info，发现循环 debug
//	AUTODISCOVER_LOG_LEVEL=discovery/loop=debug,info
//
//	# 使用 JSON 格式输出
//	AUTODISCOVER_LOG_FORMAT=json
package logger

import (
	"io"
	"log/slog"
	"sync"
)

var (
	// loggers 缓存各子系统的 Logger
	loggers sync.Map // map[string]*slog.Logger

	// levels 各子系统的动态级别
	levels sync.Map // map[string]*slog.LevelVar
)

// Logger 获取指定子系统的 Logger
//
// 同一子系统多次调用返回相同实例。
func Logger(subsystem string) *slog.Logger {
	if l, ok := loggers.Load(subsystem); ok {
		return l.(*slog.Logger)
	}

	cfg := ConfigFromEnv()
	lv := new(slog.LevelVar)
	lv.Set(cfg.LevelForSubsystem(subsystem))

	logger := slog.New(newHandler(subsystem, lv, cfg))

	actual, loaded := loggers.LoadOrStore(subsystem, logger)
	if !loaded {
		levels.Store(subsystem, lv)
	}
	return actual.(*slog.Logger)
}

// SetLevel 动态设置子系统的日志级别
//
//	logger.SetLevel("discovery/dispatch", slog.LevelDebug)
func SetLevel(subsystem string, level slog.Level) {
	if lv, ok := levels.Load(subsystem); ok {
		lv.(*slog.LevelVar).Set(level)
	}
}

// SetGlobalLevel 设置所有已创建子系统的日志级别
func SetGlobalLevel(level slog.Level) {
	levels.Range(func(_, value any) bool {
		value.(*slog.LevelVar).Set(level)
		return true
	})
}

// Discard 返回一个丢弃所有日志的 Logger，主要用于测试
func Discard() *slog.Logger {
	return slog.New(discardHandler{})
}

// SetOutput 设置全局日志输出目标
//
// 已创建的 Logger 同样生效（通过 dynamicWriter 间接引用）。
func SetOutput(w io.Writer) {
	globalOutputMu.Lock()
	globalOutput = w
	globalOutputMu.Unlock()
}
