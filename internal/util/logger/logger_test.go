package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	SetOutput(buf)

	log := Logger("test")
	log.Info("test message", "key", "value")

	output := buf.String()
	assert.Contains(t, output, "test message")
	assert.Contains(t, output, "key=value")
	assert.Contains(t, output, "subsystem=test")
}

func TestSetOutput_ExistingLogger(t *testing.T) {
	log := Logger("test2")

	// 切换输出后，已创建的 logger 同样写入新目标
	buf := &bytes.Buffer{}
	SetOutput(buf)

	log.Info("after switch", "key", "value")
	assert.Contains(t, buf.String(), "after switch")
}

func TestSetLevel_AppliesToDerivedLoggers(t *testing.T) {
	buf := &bytes.Buffer{}
	SetOutput(buf)

	log := Logger("test/level")
	derived := log.With("peer", "10.0.0.5:4000")

	SetLevel("test/level", slog.LevelError)
	derived.Warn("hidden")
	assert.NotContains(t, buf.String(), "hidden")

	SetLevel("test/level", slog.LevelDebug)
	derived.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.Contains(t, buf.String(), "peer=10.0.0.5:4000")
}

func TestLogger_SameInstance(t *testing.T) {
	assert.Same(t, Logger("same"), Logger("same"))
}

func TestParseConfig(t *testing.T) {
	env := map[string]string{
		EnvLogLevel:  "discovery=debug, discovery/dispatch=error ,warn,bogus=loud",
		EnvLogFormat: "JSON",
	}
	cfg := parseConfig(func(k string) string { return env[k] })

	assert.Equal(t, slog.LevelWarn, cfg.DefaultLevel)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, slog.LevelDebug, cfg.LevelForSubsystem("discovery/loop"))
	assert.Equal(t, slog.LevelError, cfg.LevelForSubsystem("discovery/dispatch"))
	assert.Equal(t, slog.LevelWarn, cfg.LevelForSubsystem("cmd"))
	assert.NotContains(t, cfg.SubsystemLevels, "bogus")
}

func TestDiscard(t *testing.T) {
	log := Discard()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
