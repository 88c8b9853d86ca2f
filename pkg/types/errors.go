// Package types 定义 go-autodiscover 的公共数据结构
//
// 本文件定义所有公共错误类型。
package types

import "errors"

// ============================================================================
//                              发现相关错误
// ============================================================================

var (
	// ErrInvalidMethod 发现方式或目标地址无效
	ErrInvalidMethod = errors.New("invalid discovery method")

	// ErrInvalidListenAddress 本地监听地址无效
	ErrInvalidListenAddress = errors.New("invalid listen address")
)
