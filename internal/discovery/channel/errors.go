package channel

import "errors"

// 预定义错误
var (
	// ErrSetup socket 绑定、开启广播或加入多播组失败
	ErrSetup = errors.New("channel: setup failed")

	// ErrSend 公告发送失败
	ErrSend = errors.New("channel: send failed")

	// ErrReceive 接收失败（socket 已关闭或系统错误）
	ErrReceive = errors.New("channel: receive failed")
)
