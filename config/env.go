package config

// ============================================================================
//                              环境变量（供 CLI 使用）
// ============================================================================

// 环境变量前缀和名称常量（供 cmd 层使用）
const (
	// EnvPrefix 环境变量前缀
	EnvPrefix = "AUTODISCOVER_"

	// EnvPreset 预设名称
	EnvPreset = "PRESET"

	// EnvMethod 发现方式
	EnvMethod = "METHOD"

	// EnvTarget 广播目标或多播组
	EnvTarget = "TARGET"

	// EnvInterface 多播网卡
	EnvInterface = "INTERFACE"

	// EnvReannounce 重复公告间隔
	EnvReannounce = "REANNOUNCE"

	// EnvMaxDials 拨号并发上限
	EnvMaxDials = "MAX_DIALS"

	// EnvDialTimeout 拨号超时
	EnvDialTimeout = "DIAL_TIMEOUT"
)
