package dispatch

import (
	"errors"
	"fmt"
	"net/netip"
)

// ErrConnect 拨号失败
var ErrConnect = errors.New("dispatch: connect failed")

// ConnectError 交给回调的拨号错误
type ConnectError struct {
	Peer netip.AddrPort
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("dispatch: connect %s: %v", e.Peer, e.Err)
}

// Unwrap 返回底层错误
func (e *ConnectError) Unwrap() error {
	return e.Err
}

// Is 使 errors.Is(err, ErrConnect) 成立
func (e *ConnectError) Is(target error) bool {
	return target == ErrConnect
}
