package loop

import (
	"errors"
	"fmt"
)

// 预定义错误
var (
	// ErrAlreadyRunning 循环已在运行
	ErrAlreadyRunning = errors.New("loop: already running")

	// ErrNilChannel 通道为空
	ErrNilChannel = errors.New("loop: nil channel")

	// ErrNilDispatcher 分发器为空
	ErrNilDispatcher = errors.New("loop: nil dispatcher")

	// ErrNilCallback 回调为空
	ErrNilCallback = errors.New("loop: nil callback")
)

// 操作名称
const (
	OpAnnounce = "announce"
	OpReceive  = "receive"
)

// Error 终止发现循环的错误
type Error struct {
	Op      string // 操作名称
	Err     error  // 原始错误
	Message string // 错误信息
}

// Error 实现 error 接口
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("loop: %s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("loop: %s: %s", e.Op, e.Message)
}

// Unwrap 支持 errors.Unwrap
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError 创建循环错误
func NewError(op string, err error, message string) *Error {
	return &Error{
		Op:      op,
		Err:     err,
		Message: message,
	}
}
