package config

import (
	"fmt"
	"strings"

	"github.com/dep2p/go-autodiscover/pkg/types"
)

// 预设名称
const (
	PresetBroadcast  = "broadcast"
	PresetMulticast  = "multicast"
	PresetMulticast6 = "multicast6"
)

// ApplyPreset 应用预设配置
//
// 支持的预设：
//   - "broadcast":  IPv4 广播 255.255.255.255:2020
//   - "multicast":  IPv4 多播 224.0.0.1:1337
//   - "multicast6": IPv6 多播 [ff0e::1]:1337
//
// 预设只改变发现方式和目标地址。
func ApplyPreset(cfg *Config, presetName string) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	switch strings.ToLower(presetName) {
	case PresetBroadcast:
		cfg.Discovery.Method = types.MethodBroadcast
		cfg.Discovery.Target = DefaultBroadcastTarget
	case PresetMulticast:
		cfg.Discovery.Method = types.MethodMulticast
		cfg.Discovery.Target = DefaultMulticastTarget
	case PresetMulticast6:
		cfg.Discovery.Method = types.MethodMulticast
		cfg.Discovery.Target = DefaultMulticast6Target
	default:
		return fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, presetName)
	}
	return nil
}
