package service

import (
	"context"
	"coursehub_backend/internal/config"
	"coursehub_backend/internal/util"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	root := t.TempDir()
	p := NewLocalStorageProvider(root)
	ctx := context.Background()

	payload := "certificate bytes"
	require.NoError(t, p.Upload(ctx, "certificates/a.pdf", strings.NewReader(payload), int64(len(payload)), util.MimePDF))

	rc, err := p.Open(ctx, "certificates/a.pdf")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, payload, string(got))

	// 不留下临时文件
	entries, err := os.ReadDir(filepath.Join(root, "certificates"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, p.Delete(ctx, "certificates/a.pdf"))
	_, err = p.Open(ctx, "certificates/a.pdf")
	assert.ErrorIs(t, err, util.ErrNotFound)
	assert.NoError(t, p.Delete(ctx, "certificates/a.pdf"))
}

func TestLocalStorageOverwrite(t *testing.T) {
	p := NewLocalStorageProvider(t.TempDir())
	ctx := context.Background()

	require.NoError(t, p.Upload(ctx, "k", strings.NewReader("one"), 3, "text/plain"))
	require.NoError(t, p.Upload(ctx, "k", strings.NewReader("two"), 3, "text/plain"))

	rc, err := p.Open(ctx, "k")
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))
}

func TestNewStorageServiceFallsBackToLocal(t *testing.T) {
	root := t.TempDir()

	svc := NewStorageService(&config.StorageConfig{Type: "local", LocalPath: root})
	local, ok := svc.Provider.(*LocalStorageProvider)
	require.True(t, ok)
	assert.Equal(t, root, local.Root)

	// MinIO 缺少 endpoint 时无法初始化
	svc = NewStorageService(&config.StorageConfig{Type: "minio", LocalPath: root})
	_, ok = svc.Provider.(*LocalStorageProvider)
	assert.True(t, ok)
}
