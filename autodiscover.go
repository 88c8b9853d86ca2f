package autodiscover

import (
	"context"
	"errors"
	"net/netip"
	"time"
)

// ════════════════════════════════════════════════════════════════════════════
//                              版本信息
// ════════════════════════════════════════════════════════════════════════════

// Version 当前版本
const Version = "v0.1.0"

// BuildInfo 构建信息（通过 ldflags 注入）
var (
	// GitCommit Git 提交哈希
	GitCommit string

	// BuildDate 构建日期
	BuildDate string
)

// VersionInfo 返回完整版本信息字符串
func VersionInfo() string {
	info := "autodiscover " + Version
	if GitCommit != "" {
		info += " (" + GitCommit[:min(8, len(GitCommit))] + ")"
	}
	if BuildDate != "" {
		info += " built " + BuildDate
	}
	return info
}

// ════════════════════════════════════════════════════════════════════════════
//                              运行入口
// ════════════════════════════════════════════════════════════════════════════

// stopTimeout 退出时等待发现循环结束的时间
const stopTimeout = 5 * time.Second

// Run 公告 local 并持续发现节点
//
// 成功时不会返回。只有通道创建失败、公告发送失败或接收失败时返回错误。
// 对每个被发现的节点在独立的 goroutine 中拨号，结果交给 cb。
// Run 返回后未完成的拨号不会被取消，cb 可能在返回之后才被调用。
func Run(local netip.AddrPort, method Method, cb ConnectCallback, opts ...Option) error {
	return RunContext(context.Background(), local, method, cb, opts...)
}

// RunContext 与 Run 相同，ctx 取消时关闭通道并返回 ctx.Err()
//
// 只有 ctx 取消会中止未完成的拨号；发现循环因错误退出时，
// 已启动的拨号继续运行并照常回调。
func RunContext(ctx context.Context, local netip.AddrPort, method Method, cb ConnectCallback, opts ...Option) error {
	node, err := New(local, method, cb, opts...)
	if err != nil {
		return err
	}
	if err := node.Start(ctx); err != nil {
		return err
	}

	var runErr error
	stop := node.release
	select {
	case runErr = <-node.Done():
	case <-ctx.Done():
		runErr = ctx.Err()
		stop = node.Stop
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := stop(stopCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		log.Warn("停止发现时出错", "error", err)
	}
	return runErr
}
