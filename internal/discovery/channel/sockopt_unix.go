//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package channel

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// control 返回 ListenConfig.Control
//
// 所有 socket 都开启 SO_REUSEADDR 和 SO_REUSEPORT，使同一主机上的多个节点
// 可以绑定同一发现端口；broadcast 为 true 时额外开启 SO_BROADCAST。
func control(broadcast bool) func(network, address string, c syscall.RawConn) error {
	return func(network, address string, c syscall.RawConn) error {
		var sockErr error
		err := c.Control(func(fd uintptr) {
			if sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); sockErr != nil {
				return
			}
			if sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1); sockErr != nil {
				return
			}
			if broadcast {
				sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, 1)
			}
		})
		if err != nil {
			return err
		}
		return sockErr
	}
}
