package channel

import (
	"context"
	"fmt"
	"net"
	"sync"

	"go.uber.org/multierr"

	"github.com/dep2p/go-autodiscover/internal/util/logger"
	pkgif "github.com/dep2p/go-autodiscover/pkg/interfaces"
	"github.com/dep2p/go-autodiscover/pkg/types"
)

var log = logger.Logger("discovery/channel")

// Open 按发现方式创建通道
//
// 失败时返回的错误满足 errors.Is(err, ErrSetup)。
func Open(method types.Method, cfg Config) (pkgif.Channel, error) {
	if err := types.ValidateMethod(method); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSetup, err)
	}

	switch m := method.(type) {
	case types.Broadcast:
		return openBroadcast(m, cfg)
	case types.Multicast:
		return openMulticast(m, cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported method %T", ErrSetup, method)
	}
}

// udpChannel 两种方式共用的通道实现
//
// recv 绑定在目标端口上用于接收；发送由 write 完成（通常经由独立的发送 socket）。
type udpChannel struct {
	recv  net.PacketConn
	send  net.PacketConn
	write func(packet []byte) error
	buf   []byte

	closeOnce sync.Once
	closeErr  error
}

// 确保 udpChannel 实现 Channel 接口
var _ pkgif.Channel = (*udpChannel)(nil)

func (c *udpChannel) Send(packet []byte) error {
	if err := c.write(packet); err != nil {
		return fmt.Errorf("%w: %w", ErrSend, err)
	}
	return nil
}

// Recv 只允许发现循环单 goroutine 调用，读缓冲区被复用
func (c *udpChannel) Recv() ([]byte, net.Addr, error) {
	n, from, err := c.recv.ReadFrom(c.buf)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrReceive, err)
	}
	data := make([]byte, n)
	copy(data, c.buf[:n])
	return data, from, nil
}

func (c *udpChannel) LocalAddr() net.Addr {
	return c.recv.LocalAddr()
}

func (c *udpChannel) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = multierr.Combine(c.recv.Close(), c.send.Close())
	})
	return c.closeErr
}

// listen 使用带 socket 选项的 ListenConfig 绑定 UDP socket
func listen(network, address string, broadcast bool) (net.PacketConn, error) {
	lc := net.ListenConfig{Control: control(broadcast)}
	return lc.ListenPacket(context.Background(), network, address)
}

// closeAll 在构造失败时释放已创建的 socket
func closeAll(conns ...net.PacketConn) {
	for _, c := range conns {
		if c != nil {
			_ = c.Close()
		}
	}
}
