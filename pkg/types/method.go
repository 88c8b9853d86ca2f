package types

import (
	"fmt"
	"net/netip"
	"strings"
)

// ============================================================================
//                              Method - 发现方式
// ============================================================================

// Method 发现方式
//
// 封闭的二选一类型：只有 Broadcast 和 Multicast 两种实现，
// 由未导出方法 isMethod 保证外部包无法扩展。
// 一次发现运行期间 Method 保持不变。
type Method interface {
	// Destination 返回公告发送的目标地址
	Destination() netip.AddrPort

	// Kind 返回方式名称（"broadcast" 或 "multicast"）
	Kind() string

	fmt.Stringer

	isMethod()
}

// Broadcast 广播方式
//
// 仅支持 IPv4。Target 通常为 255.255.255.255:port 或网段广播地址（如 192.168.0.255:port）。
type Broadcast struct {
	Target netip.AddrPort
}

// Destination 返回广播目标地址
func (b Broadcast) Destination() netip.AddrPort { return b.Target }

// Kind 返回 "broadcast"
func (Broadcast) Kind() string { return MethodBroadcast }

func (b Broadcast) String() string { return MethodBroadcast + "(" + b.Target.String() + ")" }

func (Broadcast) isMethod() {}

// Multicast 多播方式
//
// 同时支持 IPv4（如 224.0.0.1:port）和 IPv6（如 [ff0e::1]:port）组地址。
type Multicast struct {
	Group netip.AddrPort
}

// Destination 返回多播组地址
func (m Multicast) Destination() netip.AddrPort { return m.Group }

// Kind 返回 "multicast"
func (Multicast) Kind() string { return MethodMulticast }

func (m Multicast) String() string { return MethodMulticast + "(" + m.Group.String() + ")" }

func (Multicast) isMethod() {}

// 方式名称
const (
	MethodBroadcast = "broadcast"
	MethodMulticast = "multicast"
)

// ParseMethod 根据方式名称和目标地址构造 Method
//
// kind 不区分大小写；target 形如 "255.255.255.255:2020" 或 "[ff0e::1]:1337"。
func ParseMethod(kind, target string) (Method, error) {
	addr, err := netip.ParseAddrPort(strings.TrimSpace(target))
	if err != nil {
		return nil, fmt.Errorf("%w: target %q: %v", ErrInvalidMethod, target, err)
	}

	switch strings.ToLower(strings.TrimSpace(kind)) {
	case MethodBroadcast:
		m := Broadcast{Target: addr}
		return m, ValidateMethod(m)
	case MethodMulticast:
		m := Multicast{Group: addr}
		return m, ValidateMethod(m)
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidMethod, kind)
	}
}

// ValidateMethod 检查 Method 的目标地址是否可用
//
// 广播目标必须是 IPv4；多播目标必须是多播地址；端口不能为 0。
func ValidateMethod(m Method) error {
	if m == nil {
		return fmt.Errorf("%w: nil method", ErrInvalidMethod)
	}
	dst := m.Destination()
	if !dst.IsValid() {
		return fmt.Errorf("%w: invalid destination", ErrInvalidMethod)
	}
	if dst.Port() == 0 {
		return fmt.Errorf("%w: destination port is zero", ErrInvalidMethod)
	}

	switch m.(type) {
	case Broadcast:
		if !dst.Addr().Unmap().Is4() {
			return fmt.Errorf("%w: broadcast requires an IPv4 target, got %s", ErrInvalidMethod, dst.Addr())
		}
	case Multicast:
		if !dst.Addr().Unmap().IsMulticast() {
			return fmt.Errorf("%w: %s is not a multicast group", ErrInvalidMethod, dst.Addr())
		}
	}
	return nil
}
