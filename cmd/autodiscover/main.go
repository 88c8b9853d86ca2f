// Package main 提供 autodiscover 命令行入口
//
// 绑定一个 TCP 监听，公告它并发现局域网内的其他实例。
// 每个连接（无论是接受的还是拨出的）都会先发送本实例的 ID，
// 然后打印对端发来的内容。
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dep2p/go-autodiscover"
	"github.com/dep2p/go-autodiscover/config"
	"github.com/dep2p/go-autodiscover/internal/util/logger"
)

var log = logger.Logger("autodiscover/cmd")

// ═══════════════════════════════════════════════════════════════════════════
// 命令行参数
// ═══════════════════════════════════════════════════════════════════════════
//
//   命令行参数：运行时覆盖（「这次运行」想怎么跑）
//   JSON 配置文件：持久化配置
//
// 优先级：命令行 > 环境变量 > 配置文件 > 默认值
//
// ═══════════════════════════════════════════════════════════════════════════
var (
	listenAddr = flag.String("listen", "0.0.0.0:0", "TCP 监听地址（公告的就是该地址）")
	configFile = flag.String("config", "", "配置文件路径")
	preset     = flag.String("preset", "", "预设配置 (broadcast/multicast/multicast6)")

	method     = flag.String("method", "", "发现方式 (broadcast/multicast)")
	target     = flag.String("target", "", "广播目标或多播组，如 255.255.255.255:2020")
	iface      = flag.String("interface", "", "多播网卡名")
	reannounce = flag.Duration("reannounce", 0, "重复公告间隔（0 = 只公告一次）")

	maxDials    = flag.Int("max-dials", 0, "拨号并发上限（0 = 不限制）")
	dialTimeout = flag.Duration("dial-timeout", 0, "拨号超时（0 = 不设超时）")

	metricsAddr = flag.String("metrics-addr", "", "Prometheus /metrics 监听地址（空 = 不启用）")
	logFile     = flag.String("log", "", "日志文件路径（空 = stderr）")

	showVersion = flag.Bool("version", false, "显示版本信息")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if *showVersion {
		fmt.Println(autodiscover.VersionInfo())
		return nil
	}

	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //nolint:gosec // G304: 用户指定的日志路径
		if err != nil {
			return fmt.Errorf("打开日志文件失败: %w", err)
		}
		defer func() { _ = f.Close() }()
		logger.SetOutput(f)
	}

	cfg, err := buildConfig()
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}
	m, err := cfg.Discovery.ParseMethod()
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}

	// 先绑定再公告
	ln, err := net.Listen("tcp", *listenAddr)
	if err != nil {
		return fmt.Errorf("监听失败: %w", err)
	}
	defer func() { _ = ln.Close() }()
	local := ln.Addr().(*net.TCPAddr).AddrPort()

	id := uuid.New()
	fmt.Printf("📦 %s\n", autodiscover.VersionInfo())
	fmt.Printf("实例 %s 监听 %s，通过 %s 发现\n", id, local, m)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	if *metricsAddr != "" {
		srv := serveMetrics(*metricsAddr, reg)
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	go acceptLoop(ln, id)

	err = autodiscover.RunContext(ctx, local, m, func(conn net.Conn, err error) {
		if err != nil {
			log.Warn("连接节点失败", "error", err)
			return
		}
		handleConn(conn, id, "dialed")
	},
		autodiscover.WithConfig(cfg),
		autodiscover.WithRegisterer(reg),
	)
	if errors.Is(err, context.Canceled) {
		fmt.Println("\n已退出")
		return nil
	}
	return err
}

// buildConfig 合并配置文件、环境变量和命令行参数
func buildConfig() (*config.Config, error) {
	cfg, err := loadConfig(*configFile)
	if err != nil {
		return nil, fmt.Errorf("加载配置文件失败: %w", err)
	}

	if err := applyEnvOverrides(cfg, os.Getenv); err != nil {
		return nil, err
	}

	if isFlagSet("preset") {
		if err := config.ApplyPreset(cfg, *preset); err != nil {
			return nil, err
		}
	}
	if isFlagSet("method") {
		cfg.Discovery.Method = *method
	}
	if isFlagSet("target") {
		cfg.Discovery.Target = *target
	}
	if isFlagSet("interface") {
		cfg.Discovery.Interface = *iface
	}
	if isFlagSet("reannounce") {
		cfg.Discovery.ReannounceInterval = config.Duration(*reannounce)
	}
	if isFlagSet("max-dials") {
		cfg.Dispatch.MaxConcurrentDials = *maxDials
	}
	if isFlagSet("dial-timeout") {
		cfg.Dispatch.DialTimeout = config.Duration(*dialTimeout)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// isFlagSet 检查命令行参数是否被显式设置
func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// serveMetrics 在后台提供 /metrics
func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics 服务退出", "addr", addr, "error", err)
		}
	}()
	log.Info("metrics 服务已启动", "addr", addr)
	return srv
}

// acceptLoop 接受其他实例发起的连接
func acceptLoop(ln net.Listener, id uuid.UUID) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				log.Warn("接受连接失败", "error", err)
			}
			return
		}
		go handleConn(conn, id, "accepted")
	}
}

// handleConn 发送本实例 ID，然后打印对端发来的每一行
func handleConn(conn net.Conn, id uuid.UUID, direction string) {
	defer func() { _ = conn.Close() }()

	remote := conn.RemoteAddr()
	fmt.Printf("[%s] 连接 %s\n", direction, remote)

	if _, err := fmt.Fprintf(conn, "hello from %s\n", id); err != nil {
		log.Debug("发送问候失败", "remote", remote, "error", err)
		return
	}

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		fmt.Printf("[%s] %s: %s\n", direction, remote, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		log.Debug("读取连接失败", "remote", remote, "error", err)
	}
}
