package channel

import (
	"fmt"
	"net"
	"strconv"

	"github.com/dep2p/go-autodiscover/internal/util/addrutil"
	"github.com/dep2p/go-autodiscover/pkg/types"
)

// openBroadcast 创建广播通道
//
// 接收 socket 绑定 0.0.0.0:<目标端口>，这样发往广播地址的数据报（包括自己的）都能收到；
// 发送 socket 绑定临时端口并开启 SO_BROADCAST。
func openBroadcast(m types.Broadcast, cfg Config) (*udpChannel, error) {
	target := addrutil.UDPAddr(m.Target)
	target.IP = target.IP.To4()

	recv, err := listen("udp4", net.JoinHostPort("0.0.0.0", strconv.Itoa(int(m.Target.Port()))), false)
	if err != nil {
		return nil, fmt.Errorf("%w: bind broadcast receiver: %w", ErrSetup, err)
	}

	send, err := listen("udp4", "0.0.0.0:0", true)
	if err != nil {
		closeAll(recv)
		return nil, fmt.Errorf("%w: enable broadcast sender: %w", ErrSetup, err)
	}

	log.Debug("广播通道已创建",
		"target", m.Target,
		"recv", recv.LocalAddr(),
		"send", send.LocalAddr())

	return &udpChannel{
		recv: recv,
		send: send,
		buf:  make([]byte, cfg.readBufferSize()),
		write: func(packet []byte) error {
			n, err := send.WriteTo(packet, target)
			if err != nil {
				return err
			}
			log.Debug("已发送广播", "bytes", n, "to", target)
			return nil
		},
	}, nil
}
