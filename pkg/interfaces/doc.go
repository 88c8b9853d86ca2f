// Package interfaces 定义 go-autodiscover 的公共接口
//
// 接口与实现分离：本包只定义契约，实现位于 internal/ 下，
// 便于替换（例如用有上限的 Dispatcher 替换默认实现）和测试。
//
//   - discovery.go - Channel, Dispatcher, Dialer, ConnectCallback
//   - metrics.go   - Reporter
package interfaces
