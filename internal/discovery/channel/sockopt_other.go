//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package channel

import "syscall"

// control 在其他平台上不设置额外选项
//
// Go 运行时已经为数据报 socket 开启 SO_BROADCAST；端口复用不可用时，
// 同一主机上只能有一个节点绑定发现端口。
func control(bool) func(network, address string, c syscall.RawConn) error {
	return nil
}
