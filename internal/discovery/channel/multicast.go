package channel

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"

	"github.com/dep2p/go-autodiscover/internal/util/addrutil"
	"github.com/dep2p/go-autodiscover/pkg/types"
)

// multicastSender 屏蔽 ipv4/ipv6 PacketConn 的差异
type multicastSender interface {
	SetMulticastInterface(ifi *net.Interface) error
	WriteTo(b []byte, dst net.Addr) (int, error)
}

type sender4 struct{ *ipv4.PacketConn }

func (s sender4) WriteTo(b []byte, dst net.Addr) (int, error) { return s.PacketConn.WriteTo(b, nil, dst) }

type sender6 struct{ *ipv6.PacketConn }

func (s sender6) WriteTo(b []byte, dst net.Addr) (int, error) { return s.PacketConn.WriteTo(b, nil, dst) }

// openMulticast 创建多播通道
//
// 接收 socket 绑定通配地址:<组端口>，并在每个选中的网卡上加入组，
// 至少一个网卡加入成功才算创建成功。发送 socket 绑定临时端口，
// 公告在每个加入成功的网卡上各发一次。
func openMulticast(m types.Multicast, cfg Config) (*udpChannel, error) {
	groupIP := m.Group.Addr().Unmap()
	group := addrutil.UDPAddr(m.Group)
	is4 := groupIP.Is4()

	network, wildcard := "udp6", "::"
	if is4 {
		network, wildcard = "udp4", "0.0.0.0"
		group.IP = group.IP.To4()
	}

	intfs, err := addrutil.MulticastInterfaces(cfg.Interface)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSetup, err)
	}

	recv, err := listen(network, net.JoinHostPort(wildcard, strconv.Itoa(int(m.Group.Port()))), false)
	if err != nil {
		return nil, fmt.Errorf("%w: bind multicast receiver: %w", ErrSetup, err)
	}

	joined, err := joinGroup(recv, is4, intfs, &net.UDPAddr{IP: group.IP})
	if err != nil {
		closeAll(recv)
		return nil, fmt.Errorf("%w: join %s: %w", ErrSetup, groupIP, err)
	}

	send, err := listen(network, net.JoinHostPort(wildcard, "0"), false)
	if err != nil {
		closeAll(recv)
		return nil, fmt.Errorf("%w: bind multicast sender: %w", ErrSetup, err)
	}

	s, err := configureSender(send, is4, cfg)
	if err != nil {
		closeAll(recv, send)
		return nil, fmt.Errorf("%w: configure multicast sender: %w", ErrSetup, err)
	}

	log.Debug("多播通道已创建",
		"group", m.Group,
		"interfaces", len(joined),
		"recv", recv.LocalAddr())

	return &udpChannel{
		recv:  recv,
		send:  send,
		buf:   make([]byte, cfg.readBufferSize()),
		write: multicastWriter(s, joined, group),
	}, nil
}

// joinGroup 在给定网卡上加入多播组，返回加入成功的网卡
func joinGroup(conn net.PacketConn, is4 bool, intfs []net.Interface, group net.Addr) ([]net.Interface, error) {
	var (
		joined  []net.Interface
		lastErr error
	)
	for i := range intfs {
		intf := intfs[i]
		var err error
		if is4 {
			err = ipv4.NewPacketConn(conn).JoinGroup(&intf, group)
		} else {
			err = ipv6.NewPacketConn(conn).JoinGroup(&intf, group)
		}
		if err != nil {
			log.Debug("加入多播组失败", "interface", intf.Name, "error", err)
			lastErr = err
			continue
		}
		log.Debug("加入多播组成功", "interface", intf.Name, "group", group)
		joined = append(joined, intf)
	}

	if len(joined) == 0 {
		if lastErr == nil {
			lastErr = addrutil.ErrNoMulticastInterface
		}
		return nil, lastErr
	}
	return joined, nil
}

func configureSender(conn net.PacketConn, is4 bool, cfg Config) (multicastSender, error) {
	if is4 {
		p := ipv4.NewPacketConn(conn)
		if err := p.SetMulticastTTL(cfg.MulticastTTL); err != nil {
			return nil, err
		}
		if err := p.SetMulticastLoopback(cfg.MulticastLoopback); err != nil {
			return nil, err
		}
		return sender4{p}, nil
	}

	p := ipv6.NewPacketConn(conn)
	if err := p.SetMulticastHopLimit(cfg.MulticastTTL); err != nil {
		return nil, err
	}
	if err := p.SetMulticastLoopback(cfg.MulticastLoopback); err != nil {
		return nil, err
	}
	return sender6{p}, nil
}

// multicastWriter 在每个网卡上发送一次，至少一次成功即视为发送成功
func multicastWriter(s multicastSender, intfs []net.Interface, group *net.UDPAddr) func([]byte) error {
	return func(packet []byte) error {
		var errs []error
		success := 0
		for i := range intfs {
			intf := intfs[i]
			if err := s.SetMulticastInterface(&intf); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", intf.Name, err))
				continue
			}
			n, err := s.WriteTo(packet, group)
			if err != nil {
				log.Debug("多播发送失败", "interface", intf.Name, "error", err)
				errs = append(errs, fmt.Errorf("%s: %w", intf.Name, err))
				continue
			}
			log.Debug("已发送多播", "bytes", n, "to", group, "interface", intf.Name)
			success++
		}
		if success == 0 {
			return errors.Join(errs...)
		}
		return nil
	}
}
