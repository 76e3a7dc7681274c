package telemetry_test

import (
	"context"
	"testing"

	"github.com/propdesk/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

func TestNewLoggerProvider_Disabled(t *testing.T) {
	ctx := context.Background()
	cfg := telemetry.LogsConfig{
		Enabled:           false,
		CollectorEndpoint: "localhost:14317",
		ServiceName:       "propdesk-test",
		Insecure:          true,
	}

	lp, err := telemetry.NewLoggerProvider(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, lp.IsEnabled())
	assert.Equal(t, cfg, lp.GetConfig())
	assert.NoError(t, lp.ForceFlush(ctx))
	assert.NoError(t, lp.Shutdown(ctx))
}

func TestNewZapOTELCore_DisabledIsNop(t *testing.T) {
	lp, err := telemetry.NewLoggerProvider(context.Background(), telemetry.LogsConfig{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	for _, provider := range []*telemetry.LoggerProvider{nil, lp} {
		core := telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
			ServiceName:    "propdesk-test",
			LoggerProvider: provider,
			Level:          zapcore.InfoLevel,
		})
		assert.False(t, core.Enabled(zapcore.ErrorLevel))
	}
}

func TestNewZapOTELCore_Enabled(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	lp, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           true,
		CollectorEndpoint: "localhost:14317",
		ServiceName:       "propdesk-test",
		Insecure:          true,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer func() { _ = lp.Shutdown(ctx) }()

	core := telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
		ServiceName:    "propdesk-test",
		LoggerProvider: lp,
		Level:          zapcore.WarnLevel,
	})
	assert.False(t, core.Enabled(zapcore.InfoLevel))
	assert.True(t, core.Enabled(zapcore.WarnLevel))
	assert.False(t, core.With(nil).Enabled(zapcore.InfoLevel))
}
