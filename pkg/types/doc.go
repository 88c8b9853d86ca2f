// Package types 定义 go-autodiscover 的公共数据结构
//
// 这是整个系统的最底层包，不依赖任何其他内部包。
// 所有类型都是纯值类型，用于在各模块间传递数据。
//
// # 文件组织
//
//   - method.go  - Method（Broadcast / Multicast）发现方式
//   - state.go   - DiscoveryState 发现循环状态
//   - errors.go  - 公共错误定义
//
// # 地址类型
//
// 监听地址（ListenAddress）直接使用 netip.AddrPort：不可变、可比较，
// 适合作为自过滤的共享只读状态。
package types
