package logger

import (
	"coursehub_backend/internal/config"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestSetLevel(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want zapcore.Level
	}{
		{"debug mode", config.Config{Server: config.ServerConfig{Mode: "debug"}}, zapcore.DebugLevel},
		{"release mode", config.Config{Server: config.ServerConfig{Mode: "release"}}, zapcore.InfoLevel},
		{"explicit level wins", config.Config{Server: config.ServerConfig{Mode: "debug"}, Log: config.LogConfig{Level: "warn"}}, zapcore.WarnLevel},
		{"bad level falls back", config.Config{Server: config.ServerConfig{Mode: "release"}, Log: config.LogConfig{Level: "loud"}}, zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetLevel(&tt.cfg)
			assert.Equal(t, tt.want, Level())
		})
	}
}

func TestInitLogger_WritesJSONFile(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	file := filepath.Join(t.TempDir(), "app.log")
	InitLogger(&config.Config{
		Server: config.ServerConfig{Mode: "release"},
		Log:    config.LogConfig{File: file, MaxSizeMB: 1},
	})

	Log.Debug("hidden")
	Log.Info("certificate issued", zap.Uint("course_id", 9))
	_ = Log.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"certificate issued"`)
	assert.Contains(t, string(data), `"course_id":9`)
	assert.Contains(t, string(data), `"service":"coursehub"`)
	assert.NotContains(t, string(data), "hidden")
}
