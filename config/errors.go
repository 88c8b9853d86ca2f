package config

import "errors"

// ErrInvalidConfig 无效配置
var ErrInvalidConfig = errors.New("invalid config")
