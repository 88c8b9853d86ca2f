package codec

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEncode_IPv4 测试 IPv4 编码
func TestEncode_IPv4(t *testing.T) {
	pkt := Encode(netip.MustParseAddrPort("192.168.1.10:8080"))
	assert.Equal(t, []byte{192, 168, 1, 10, 0x1F, 0x90}, pkt)
}

// TestEncode_IPv6 测试 IPv6 编码
func TestEncode_IPv6(t *testing.T) {
	pkt := Encode(netip.MustParseAddrPort("[::1]:9000"))
	require.Len(t, pkt, IPv6PacketLen)

	loopback := netip.IPv6Loopback().As16()
	assert.Equal(t, loopback[:], pkt[0:16])
	assert.Equal(t, []byte{0x23, 0x28}, pkt[16:18])
}

// TestEncode_IPv4Mapped 测试 IPv4 映射地址按 IPv4 编码
func TestEncode_IPv4Mapped(t *testing.T) {
	pkt := Encode(netip.MustParseAddrPort("[::ffff:10.0.0.5]:4000"))
	assert.Equal(t, []byte{10, 0, 0, 5, 0x0F, 0xA0}, pkt)
}

// TestRoundTrip_Normalized 映射地址与带 zone 地址往返为规范化形式
func TestRoundTrip_Normalized(t *testing.T) {
	tests := []struct {
		in   string
		want string
		len  int
	}{
		{"[::ffff:192.168.1.10]:8080", "192.168.1.10:8080", IPv4PacketLen},
		{"[fe80::1%eth0]:22000", "[fe80::1]:22000", IPv6PacketLen},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			addr := netip.MustParseAddrPort(tt.in)
			pkt := Encode(addr)
			assert.Len(t, pkt, tt.len)

			got, err := Decode(pkt)
			require.NoError(t, err)
			assert.Equal(t, netip.MustParseAddrPort(tt.want), got)
			assert.Equal(t, Normalize(addr), got)
			assert.NotEqual(t, addr, got)
		})
	}
}

// TestRoundTrip 测试编解码往返
func TestRoundTrip(t *testing.T) {
	addrs := []string{
		"0.0.0.0:0",
		"10.0.0.5:4000",
		"192.168.1.10:8080",
		"255.255.255.255:65535",
		"[::]:1",
		"[::1]:9000",
		"[fe80::1:2:3:4]:22000",
		"[ffff:ffff:ffff:ffff:ffff:ffff:ffff:ffff]:65535",
	}
	for _, s := range addrs {
		t.Run(s, func(t *testing.T) {
			addr := netip.MustParseAddrPort(s)
			got, err := Decode(Encode(addr))
			require.NoError(t, err)
			assert.Equal(t, addr, got)
		})
	}
}

// TestRoundTrip_AllPorts 测试所有端口往返
func TestRoundTrip_AllPorts(t *testing.T) {
	v4 := netip.MustParseAddr("172.16.0.1")
	v6 := netip.MustParseAddr("2001:db8::42")
	for port := 0; port <= 0xFFFF; port += 257 {
		for _, ip := range []netip.Addr{v4, v6} {
			addr := netip.AddrPortFrom(ip, uint16(port))
			got, err := Decode(Encode(addr))
			require.NoError(t, err)
			require.Equal(t, addr, got)
		}
	}
}

// TestDecode_Malformed 测试长度无效的数据包
func TestDecode_Malformed(t *testing.T) {
	for n := 0; n <= 64; n++ {
		if n == IPv4PacketLen || n == IPv6PacketLen {
			continue
		}
		_, err := Decode(make([]byte, n))
		assert.ErrorIs(t, err, ErrMalformedPacket, "length %d", n)
	}

	_, err := Decode(nil)
	assert.ErrorIs(t, err, ErrMalformedPacket)
}

// TestNormalize 测试地址规范化
func TestNormalize(t *testing.T) {
	assert.Equal(t,
		netip.MustParseAddrPort("10.0.0.5:4000"),
		Normalize(netip.MustParseAddrPort("[::ffff:10.0.0.5]:4000")))

	zoned := netip.AddrPortFrom(netip.MustParseAddr("fe80::1%eth0"), 80)
	assert.Equal(t, netip.MustParseAddrPort("[fe80::1]:80"), Normalize(zoned))

	addr := netip.MustParseAddrPort("[fe80::1%eth0]:80")
	got, err := Decode(Encode(addr))
	require.NoError(t, err)
	assert.Equal(t, Normalize(addr), got)
}
