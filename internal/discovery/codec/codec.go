// Package codec 实现监听地址的紧凑二进制编码
//
// 线上格式（大端序端口）：
//
//	IPv4: [0..4) 地址 | [4..6) 端口   共 6 字节
//	IPv6: [0..16) 地址 | [16..18) 端口 共 18 字节
//
// 包长度唯一决定地址族，其他长度一律视为畸形包。
//
// 往返只对规范化地址成立：Decode(Encode(a)) == Normalize(a)。
// IPv4 映射的 IPv6 地址（::ffff:a.b.c.d）编码为 6 字节并解码为 IPv4，
// zone 不上线。其余 IPv4 与 IPv6 地址原样往返。
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net/netip"
)

const (
	// IPv4PacketLen IPv4 公告长度
	IPv4PacketLen = 4 + 2

	// IPv6PacketLen IPv6 公告长度
	IPv6PacketLen = 16 + 2

	// MaxPacketLen 最大合法公告长度
	MaxPacketLen = IPv6PacketLen
)

// ErrMalformedPacket 数据包长度既不是 6 也不是 18
var ErrMalformedPacket = errors.New("codec: malformed packet")

// Encode 将监听地址编码为 6 或 18 字节的数据包
//
// IPv4 映射的 IPv6 地址（::ffff:a.b.c.d）按 IPv4 编码，zone 被丢弃。
func Encode(addr netip.AddrPort) []byte {
	ip := addr.Addr().Unmap()
	if ip.Is4() {
		buf := make([]byte, IPv4PacketLen)
		a4 := ip.As4()
		copy(buf[0:4], a4[:])
		binary.BigEndian.PutUint16(buf[4:6], addr.Port())
		return buf
	}

	buf := make([]byte, IPv6PacketLen)
	a16 := ip.As16()
	copy(buf[0:16], a16[:])
	binary.BigEndian.PutUint16(buf[16:18], addr.Port())
	return buf
}

// Decode 从数据包还原监听地址
//
// 长度不是 6 或 18 时返回 ErrMalformedPacket。
func Decode(b []byte) (netip.AddrPort, error) {
	switch len(b) {
	case IPv4PacketLen:
		ip := netip.AddrFrom4([4]byte(b[0:4]))
		return netip.AddrPortFrom(ip, binary.BigEndian.Uint16(b[4:6])), nil
	case IPv6PacketLen:
		ip := netip.AddrFrom16([16]byte(b[0:16]))
		return netip.AddrPortFrom(ip, binary.BigEndian.Uint16(b[16:18])), nil
	default:
		return netip.AddrPort{}, fmt.Errorf("%w: length %d", ErrMalformedPacket, len(b))
	}
}

// Normalize 返回与线上表示一致的地址
//
// 去掉 IPv4 映射前缀和 zone，使 Decode(Encode(a)) == Normalize(a) 恒成立，
// 自过滤比较两端都应使用规范化地址。
func Normalize(addr netip.AddrPort) netip.AddrPort {
	return netip.AddrPortFrom(addr.Addr().Unmap().WithZone(""), addr.Port())
}
