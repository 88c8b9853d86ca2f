// Package autodiscover 提供局域网节点自动发现
//
// 节点把自己的 TCP 监听地址编码为 6 字节（IPv4）或 18 字节（IPv6）的数据包，
// 通过 UDP 广播或多播公告一次，然后持续监听其他节点的公告。
// 每收到一个不是自己的公告，就在独立的 goroutine 中拨号该地址，
// 并把连接（或错误）交给调用方的回调。
//
// # 快速开始
//
//	ln, _ := net.Listen("tcp", "0.0.0.0:4000")
//	local := ln.Addr().(*net.TCPAddr).AddrPort()
//
//	method := autodiscover.Broadcast{Target: netip.MustParseAddrPort("255.255.255.255:2020")}
//	err := autodiscover.Run(local, method, func(conn net.Conn, err error) {
//	    if err != nil {
//	        return
//	    }
//	    defer conn.Close()
//	    // 使用连接
//	})
//	// 只有在通道创建、公告发送或接收失败时才会返回
//
// # 可取消的运行
//
// RunContext 在 ctx 取消时关闭通道并返回 ctx.Err()：
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//	err := autodiscover.RunContext(ctx, local, method, onConnect,
//	    autodiscover.WithMaxConcurrentDials(32),
//	    autodiscover.WithDialTimeout(5*time.Second),
//	)
//
// # 生命周期
//
// 需要更细控制时使用 Node：
//
//	node, err := autodiscover.New(local, method, onConnect,
//	    autodiscover.WithRegisterer(prometheus.DefaultRegisterer),
//	)
//	if err := node.Start(ctx); err != nil { ... }
//	defer node.Stop(context.Background())
//	err = <-node.Done()
//
// # 限制
//
// 没有存活检测、去重、确认或认证：每个公告都会触发一次拨号，
// 公告默认只发送一次，之后加入的节点只能由它们发现先启动的节点。
// 两台主机都监听 0.0.0.0 的同一端口时，它们的公告内容相同，会互相当作自身回声过滤。
package autodiscover
