package channel

import (
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingChannel 记录所有发送的假通道
type recordingChannel struct {
	mu      sync.Mutex
	sent    [][]byte
	sendErr error
	closed  int
}

func (c *recordingChannel) Send(packet []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sendErr != nil {
		return c.sendErr
	}
	c.sent = append(c.sent, append([]byte(nil), packet...))
	return nil
}

func (c *recordingChannel) Recv() ([]byte, net.Addr, error) {
	return nil, nil, ErrReceive
}

func (c *recordingChannel) LocalAddr() net.Addr { return &net.UDPAddr{} }

func (c *recordingChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed++
	return nil
}

func (c *recordingChannel) sentCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent)
}

func (c *recordingChannel) setSendErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sendErr = err
}

type countingReporter struct {
	mu   sync.Mutex
	sent int
}

func (r *countingReporter) AnnouncementSent() {
	r.mu.Lock()
	r.sent++
	r.mu.Unlock()
}
func (r *countingReporter) PacketReceived()   {}
func (r *countingReporter) PacketMalformed()  {}
func (r *countingReporter) SelfAnnouncement() {}
func (r *countingReporter) DialResult(bool)   {}
func (r *countingReporter) DispatchRejected() {}

func (r *countingReporter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sent
}

func TestReannouncer_ResendsOnTick(t *testing.T) {
	inner := &recordingChannel{}
	mock := clock.NewMock()
	reporter := &countingReporter{}
	r := NewReannouncer(inner, time.Second, mock, reporter)
	defer r.Close()

	packet := []byte{10, 0, 0, 5, 0x0F, 0xA0}
	require.NoError(t, r.Send(packet))
	assert.Equal(t, 1, inner.sentCount())

	mock.Add(time.Second)
	require.Eventually(t, func() bool { return inner.sentCount() == 2 }, time.Second, 5*time.Millisecond)

	mock.Add(time.Second)
	require.Eventually(t, func() bool { return inner.sentCount() == 3 }, time.Second, 5*time.Millisecond)

	inner.mu.Lock()
	for _, sent := range inner.sent {
		assert.Equal(t, packet, sent)
	}
	inner.mu.Unlock()
	assert.Equal(t, 2, reporter.count())
}

func TestReannouncer_NoTickerBeforeFirstSend(t *testing.T) {
	inner := &recordingChannel{}
	mock := clock.NewMock()
	r := NewReannouncer(inner, time.Second, mock, nil)

	mock.Add(5 * time.Second)
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, inner.sentCount())
	require.NoError(t, r.Close())
}

func TestReannouncer_FailedFirstSend(t *testing.T) {
	inner := &recordingChannel{sendErr: errors.New("boom")}
	mock := clock.NewMock()
	r := NewReannouncer(inner, time.Second, mock, nil)
	defer r.Close()

	err := r.Send([]byte{1, 2, 3, 4, 5, 6})
	require.Error(t, err)

	inner.setSendErr(nil)
	mock.Add(3 * time.Second)
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, inner.sentCount())
}

func TestReannouncer_ResendErrorIsNotFatal(t *testing.T) {
	inner := &recordingChannel{}
	mock := clock.NewMock()
	r := NewReannouncer(inner, time.Second, mock, nil)
	defer r.Close()

	require.NoError(t, r.Send([]byte{1, 2, 3, 4, 5, 6}))

	inner.setSendErr(errors.New("network down"))
	mock.Add(time.Second)
	time.Sleep(20 * time.Millisecond)

	inner.setSendErr(nil)
	mock.Add(time.Second)
	require.Eventually(t, func() bool { return inner.sentCount() == 2 }, time.Second, 5*time.Millisecond)
}

func TestReannouncer_CloseStopsAndClosesInner(t *testing.T) {
	inner := &recordingChannel{}
	mock := clock.NewMock()
	r := NewReannouncer(inner, time.Second, mock, nil)

	require.NoError(t, r.Send([]byte{1, 2, 3, 4, 5, 6}))
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())

	mock.Add(5 * time.Second)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, inner.sentCount())
	assert.GreaterOrEqual(t, inner.closed, 1)
}
