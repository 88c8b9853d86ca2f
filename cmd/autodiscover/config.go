package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dep2p/go-autodiscover/config"
)

// ============================================================================
//                              配置加载（CLI 专用）
// ============================================================================

// loadConfig 加载配置文件，path 为空时返回默认配置
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.NewConfig(), nil
	}
	return config.LoadFile(path)
}

// applyEnvOverrides 应用环境变量覆盖配置
//
// 环境变量优先级高于配置文件，但低于命令行参数。
// 支持的环境变量（均使用 AUTODISCOVER_ 前缀）：
//   - AUTODISCOVER_PRESET: 预设名称
//   - AUTODISCOVER_METHOD: 发现方式
//   - AUTODISCOVER_TARGET: 广播目标或多播组
//   - AUTODISCOVER_INTERFACE: 多播网卡
//   - AUTODISCOVER_REANNOUNCE: 重复公告间隔
//   - AUTODISCOVER_MAX_DIALS: 拨号并发上限
//   - AUTODISCOVER_DIAL_TIMEOUT: 拨号超时
func applyEnvOverrides(cfg *config.Config, getenv func(string) string) error {
	env := func(name string) string {
		return strings.TrimSpace(getenv(config.EnvPrefix + name))
	}

	// 预设先于方式和目标，便于单独覆盖目标
	if v := env(config.EnvPreset); v != "" {
		if err := config.ApplyPreset(cfg, v); err != nil {
			return err
		}
	}
	if v := env(config.EnvMethod); v != "" {
		cfg.Discovery.Method = v
	}
	if v := env(config.EnvTarget); v != "" {
		cfg.Discovery.Target = v
	}
	if v := env(config.EnvInterface); v != "" {
		cfg.Discovery.Interface = v
	}
	if v := env(config.EnvReannounce); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", config.EnvPrefix, config.EnvReannounce, err)
		}
		cfg.Discovery.ReannounceInterval = config.Duration(d)
	}
	if v := env(config.EnvMaxDials); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", config.EnvPrefix, config.EnvMaxDials, err)
		}
		cfg.Dispatch.MaxConcurrentDials = n
	}
	if v := env(config.EnvDialTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", config.EnvPrefix, config.EnvDialTimeout, err)
		}
		cfg.Dispatch.DialTimeout = config.Duration(d)
	}
	return nil
}
