package configwatcher

import (
	"coursehub_backend/internal/config"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchConfig_ReloadsOnWrite(t *testing.T) {
	t.Setenv("STORAGE_LOCAL_PATH", t.TempDir())

	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("log:\n  level: info\n"), 0644))

	reloaded := make(chan *config.Config, 4)
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		WatchConfig(file, func(cfg *config.Config) { reloaded <- cfg }, stop)
		close(done)
	}()
	t.Cleanup(func() {
		close(stop)
		<-done
	})

	// 等待 watcher 注册目录
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(file, []byte("log:\n  level: warn\n"), 0644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "warn", cfg.Log.Level)
		assert.Equal(t, dir, cfg.Dir)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}
}

func TestWatchConfig_IgnoresOtherFiles(t *testing.T) {
	t.Setenv("STORAGE_LOCAL_PATH", t.TempDir())

	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("log:\n  level: info\n"), 0644))

	reloaded := make(chan *config.Config, 1)
	stop := make(chan struct{})
	go WatchConfig(file, func(cfg *config.Config) { reloaded <- cfg }, stop)
	defer close(stop)

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	select {
	case <-reloaded:
		t.Fatal("unrelated file triggered a reload")
	case <-time.After(1500 * time.Millisecond):
	}
}
