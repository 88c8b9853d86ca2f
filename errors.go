package autodiscover

import (
	"errors"

	"github.com/dep2p/go-autodiscover/internal/discovery/channel"
	"github.com/dep2p/go-autodiscover/internal/discovery/codec"
	"github.com/dep2p/go-autodiscover/internal/discovery/dispatch"
	"github.com/dep2p/go-autodiscover/internal/discovery/loop"
	"github.com/dep2p/go-autodiscover/pkg/types"
)

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// 发现错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrChannelSetup 通道创建失败（绑定、开启广播、加入多播组）
	ErrChannelSetup = channel.ErrSetup

	// ErrSend 公告发送失败
	ErrSend = channel.ErrSend

	// ErrReceive 接收失败
	ErrReceive = channel.ErrReceive

	// ErrMalformedPacket 数据包长度既不是 6 也不是 18
	//
	// 只由 Decode 返回，发现循环内部会丢弃这类数据报。
	ErrMalformedPacket = codec.ErrMalformedPacket

	// ErrConnect 拨号失败，交给回调的错误满足 errors.Is(err, ErrConnect)
	ErrConnect = dispatch.ErrConnect

	// ErrInvalidMethod 发现方式无效
	ErrInvalidMethod = types.ErrInvalidMethod

	// ErrInvalidListenAddress 本地监听地址无效
	ErrInvalidListenAddress = types.ErrInvalidListenAddress

	// ────────────────────────────────────────────────────────────────────────
	// 节点生命周期错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrNotStarted 节点未启动
	ErrNotStarted = errors.New("node not started")

	// ErrAlreadyStarted 节点已启动
	ErrAlreadyStarted = errors.New("node already started")

	// ErrNodeClosed 节点已关闭
	ErrNodeClosed = errors.New("node closed")
)

// ConnectError 交给回调的拨号错误，携带节点地址
type ConnectError = dispatch.ConnectError

// LoopError 终止发现循环的错误，Op 为 "announce" 或 "receive"
type LoopError = loop.Error
