package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	pkgif "github.com/dep2p/go-autodiscover/pkg/interfaces"
)

// DefaultNamespace 默认指标命名空间
const DefaultNamespace = "autodiscover"

// Reporter 发现指标上报接口
type Reporter = pkgif.Reporter

// 确保 DiscoveryCounter 实现 Reporter 接口
var _ Reporter = (*DiscoveryCounter)(nil)

// DiscoveryCounter 基于 prometheus 计数器的 Reporter
type DiscoveryCounter struct {
	announcements prometheus.Counter
	received      prometheus.Counter
	malformed     prometheus.Counter
	self          prometheus.Counter
	dials         *prometheus.CounterVec
	rejected      prometheus.Counter
}

// NewDiscoveryCounter 创建计数器（尚未注册）
func NewDiscoveryCounter(namespace string) *DiscoveryCounter {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		})
	}

	return &DiscoveryCounter{
		announcements: counter("announcements_sent_total", "Announcements written to the discovery channel."),
		received:      counter("packets_received_total", "Datagrams read from the discovery channel."),
		malformed:     counter("packets_malformed_total", "Datagrams dropped because of an invalid length."),
		self:          counter("self_announcements_total", "Announcements dropped because they carry the local listen address."),
		dials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dials_total",
			Help:      "Connection attempts to discovered peers by result.",
		}, []string{"result"}),
		rejected: counter("dispatch_rejected_total", "Discovered peers dropped because the dial limit was reached."),
	}
}

// Collectors 返回所有指标收集器
func (c *DiscoveryCounter) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		c.announcements, c.received, c.malformed, c.self, c.dials, c.rejected,
	}
}

// Register 将所有指标注册到 reg
func (c *DiscoveryCounter) Register(reg prometheus.Registerer) error {
	var err error
	for _, col := range c.Collectors() {
		err = multierr.Append(err, reg.Register(col))
	}
	return err
}

// Unregister 从 reg 注销所有指标
func (c *DiscoveryCounter) Unregister(reg prometheus.Registerer) {
	for _, col := range c.Collectors() {
		reg.Unregister(col)
	}
}

func (c *DiscoveryCounter) AnnouncementSent() { c.announcements.Inc() }
func (c *DiscoveryCounter) PacketReceived()   { c.received.Inc() }
func (c *DiscoveryCounter) PacketMalformed()  { c.malformed.Inc() }
func (c *DiscoveryCounter) SelfAnnouncement() { c.self.Inc() }
func (c *DiscoveryCounter) DispatchRejected() { c.rejected.Inc() }

// DialResult 记录拨号结果
func (c *DiscoveryCounter) DialResult(ok bool) {
	if ok {
		c.dials.WithLabelValues("success").Inc()
		return
	}
	c.dials.WithLabelValues("failure").Inc()
}

// noopReporter 空实现
type noopReporter struct{}

func (noopReporter) AnnouncementSent() {}
func (noopReporter) PacketReceived()   {}
func (noopReporter) PacketMalformed()  {}
func (noopReporter) SelfAnnouncement() {}
func (noopReporter) DialResult(bool)   {}
func (noopReporter) DispatchRejected() {}

// Noop 返回不记录任何指标的 Reporter
func Noop() Reporter { return noopReporter{} }
