// Package addrutil 提供地址与网卡工具
package addrutil

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
)

// ErrNoMulticastInterface 没有可用的多播网卡
var ErrNoMulticastInterface = errors.New("no multicast capable interface")

// ============================================================================
//                              地址转换
// ============================================================================

// AddrPortOf 将 net.Addr 转换为 netip.AddrPort
//
// 支持 *net.UDPAddr、*net.TCPAddr，其他类型按 String() 解析。
// IPv4 映射地址会被还原为 IPv4。
func AddrPortOf(addr net.Addr) (netip.AddrPort, bool) {
	var ap netip.AddrPort
	switch a := addr.(type) {
	case nil:
		return netip.AddrPort{}, false
	case *net.UDPAddr:
		if a == nil {
			return netip.AddrPort{}, false
		}
		ap = a.AddrPort()
	case *net.TCPAddr:
		if a == nil {
			return netip.AddrPort{}, false
		}
		ap = a.AddrPort()
	default:
		parsed, err := netip.ParseAddrPort(addr.String())
		if err != nil {
			return netip.AddrPort{}, false
		}
		ap = parsed
	}
	if !ap.IsValid() {
		return netip.AddrPort{}, false
	}
	return netip.AddrPortFrom(ap.Addr().Unmap(), ap.Port()), true
}

// ResolveUnspecified 用发送方 IP 替换未指定地址
//
// 节点监听在 0.0.0.0 或 [::] 时公告中的 IP 是未指定地址，
// 此时发送方 IP 就是可达地址。peer 不是未指定地址或 sender 无法解析时原样返回。
func ResolveUnspecified(peer netip.AddrPort, sender net.Addr) netip.AddrPort {
	if !peer.Addr().IsUnspecified() {
		return peer
	}
	src, ok := AddrPortOf(sender)
	if !ok {
		return peer
	}
	return netip.AddrPortFrom(src.Addr(), peer.Port())
}

// UDPAddr 将 netip.AddrPort 转换为 *net.UDPAddr
func UDPAddr(ap netip.AddrPort) *net.UDPAddr {
	return net.UDPAddrFromAddrPort(ap)
}

// ============================================================================
//                              网卡选择
// ============================================================================

// MulticastInterfaces 返回用于加入多播组的网卡
//
// name 非空时只返回该网卡（必须存在且支持多播）；
// 否则返回所有处于 up 状态且支持多播的网卡。
func MulticastInterfaces(name string) ([]net.Interface, error) {
	if name != "" {
		intf, err := net.InterfaceByName(name)
		if err != nil {
			return nil, fmt.Errorf("interface %q: %w", name, err)
		}
		if intf.Flags&net.FlagMulticast == 0 {
			return nil, fmt.Errorf("interface %q: %w", name, ErrNoMulticastInterface)
		}
		return []net.Interface{*intf}, nil
	}

	intfs, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	var out []net.Interface
	for _, intf := range intfs {
		if intf.Flags&net.FlagUp == 0 || intf.Flags&net.FlagMulticast == 0 {
			continue
		}
		out = append(out, intf)
	}
	if len(out) == 0 {
		return nil, ErrNoMulticastInterface
	}
	return out, nil
}
