package types

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseMethod_Broadcast 测试解析广播方式
func TestParseMethod_Broadcast(t *testing.T) {
	m, err := ParseMethod("Broadcast", "255.255.255.255:2020")
	require.NoError(t, err)

	b, ok := m.(Broadcast)
	require.True(t, ok)
	assert.Equal(t, netip.MustParseAddrPort("255.255.255.255:2020"), b.Target)
	assert.Equal(t, MethodBroadcast, m.Kind())
	assert.Equal(t, "broadcast(255.255.255.255:2020)", m.String())
}

// TestParseMethod_Multicast 测试解析多播方式
func TestParseMethod_Multicast(t *testing.T) {
	tests := []string{"224.0.0.1:1337", "[ff0e::1]:1337"}
	for _, target := range tests {
		t.Run(target, func(t *testing.T) {
			m, err := ParseMethod("multicast", target)
			require.NoError(t, err)
			assert.Equal(t, netip.MustParseAddrPort(target), m.Destination())
			assert.IsType(t, Multicast{}, m)
		})
	}
}

// TestParseMethod_Invalid 测试无效输入
func TestParseMethod_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		kind   string
		target string
	}{
		{"unknown kind", "anycast", "224.0.0.1:1337"},
		{"bad target", "broadcast", "not-an-address"},
		{"broadcast ipv6", "broadcast", "[ff02::1]:1337"},
		{"multicast unicast group", "multicast", "10.0.0.1:1337"},
		{"zero port", "multicast", "224.0.0.1:0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMethod(tt.kind, tt.target)
			assert.ErrorIs(t, err, ErrInvalidMethod)
		})
	}
}

// TestValidateMethod_Nil 测试 nil 方式
func TestValidateMethod_Nil(t *testing.T) {
	assert.ErrorIs(t, ValidateMethod(nil), ErrInvalidMethod)
}

// TestDiscoveryState_String 测试状态字符串
func TestDiscoveryState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "announcing", StateAnnouncing.String())
	assert.Equal(t, "listening", StateListening.String())
	assert.Equal(t, "stopped", StateStopped.String())
	assert.Equal(t, "unknown", DiscoveryState(42).String())
}
