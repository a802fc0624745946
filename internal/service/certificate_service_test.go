package service

import (
	"bytes"
	"context"
	"coursehub_backend/internal/config"
	"coursehub_backend/internal/repository"
	"coursehub_backend/internal/testutil"
	"coursehub_backend/internal/util"
	"errors"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStorage struct{}

func (failingStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	return errors.New("storage offline")
}

func (failingStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, util.ErrNotFound
}

func (failingStorage) Delete(ctx context.Context, key string) error {
	return nil
}

func newTestRenderer(t *testing.T) *CertificateRenderer {
	t.Helper()
	r, err := NewCertificateRenderer()
	require.NoError(t, err)
	return r
}

func newLocalStorage(root string) *StorageService {
	return NewStorageService(&config.StorageConfig{Type: "local", LocalPath: root})
}

func TestRenderPNGDimensions(t *testing.T) {
	r := newTestRenderer(t)

	data, err := r.RenderPNG(CertificateData{
		StudentName:   "Alice",
		CourseTitle:   "Go in Practice",
		CertificateID: uuid.NewString(),
		IssuedAt:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, certificateWidth, cfg.Width)
	assert.Equal(t, certificateHeight, cfg.Height)
}

func assertFitsWidth(t *testing.T, block textBlock) {
	t.Helper()
	for _, line := range block.lines {
		assert.LessOrEqual(t, measureText(block.face, line), float64(textMaxWidth), line)
	}
}

func TestFitTextShortTitleKeepsFullSize(t *testing.T) {
	r := newTestRenderer(t)

	block := r.fitText(r.bold, "Go in Practice", titleMaxSize, titleMinSize, titleMaxHeight)
	assert.Equal(t, []string{"Go in Practice"}, block.lines)
	assert.Equal(t, titleMaxSize*lineSpacing, block.lineHeight)
}

func TestFitTextWrapsLongCourseTitle(t *testing.T) {
	r := newTestRenderer(t)
	title := "The Complete 2024 Web Development Bootcamp: HTML, CSS, JavaScript, Node, React, " +
		"PostgreSQL, Web3 and DApps for Absolute Beginners and Career Switchers, 2024 Edition"
	require.Greater(t, len(title), 150)

	block := r.fitText(r.bold, title, titleMaxSize, titleMinSize, titleMaxHeight)
	assert.Greater(t, len(block.lines), 1)
	assert.LessOrEqual(t, block.height(), titleMaxHeight)
	assert.Equal(t, title, strings.Join(block.lines, " "))
	assertFitsWidth(t, block)
}

func TestFitTextShrinksLongName(t *testing.T) {
	r := newTestRenderer(t)
	name := "Maximilian Alexander Rutherford-Whitcombe"

	block := r.fitText(r.bold, name, nameMaxSize, nameMinSize, nameMaxHeight)
	assert.LessOrEqual(t, block.height(), nameMaxHeight)
	assert.Equal(t, name, strings.Join(block.lines, " "))
	assertFitsWidth(t, block)
}

func TestFitTextBreaksUnspacedText(t *testing.T) {
	r := newTestRenderer(t)
	name := strings.Repeat("W", 120)

	block := r.fitText(r.bold, name, nameMaxSize, nameMinSize, nameMaxHeight)
	assert.Greater(t, len(block.lines), 1)
	assert.Equal(t, name, strings.Join(block.lines, ""))
	assertFitsWidth(t, block)
}

func TestRenderPDFWithLongTitle(t *testing.T) {
	r := newTestRenderer(t)

	data, err := r.RenderPDF(CertificateData{
		StudentName:   "Maximilian Alexander Rutherford-Whitcombe",
		CourseTitle:   strings.Repeat("Distributed Systems Engineering ", 6),
		CertificateID: uuid.NewString(),
		IssuedAt:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestIssueWritesRetrievablePDF(t *testing.T) {
	db := testutil.NewDB(t)
	root := t.TempDir()
	svc := NewCertificateService(newLocalStorage(root), newTestRenderer(t), repository.NewCertificateRepository(db))
	ctx := context.Background()

	id := uuid.NewString()
	cert, err := svc.Issue(ctx, "Alice", "Go in Practice", id, "https://learn.example.com/")
	require.NoError(t, err)
	assert.Equal(t, id, cert.ID)
	assert.Equal(t, "https://learn.example.com/certificates/"+id+".pdf", cert.URL)

	_, err = os.Stat(filepath.Join(root, "certificates", id+".pdf"))
	require.NoError(t, err)

	// 新实例只凭编号也能读取
	fresh := NewCertificateService(newLocalStorage(root), newTestRenderer(t), repository.NewCertificateRepository(db))
	rc, err := fresh.Open(ctx, id)
	require.NoError(t, err)
	defer rc.Close()

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
}

func TestIssueStorageFailure(t *testing.T) {
	db := testutil.NewDB(t)
	storage := &StorageService{Provider: failingStorage{}}
	svc := NewCertificateService(storage, newTestRenderer(t), repository.NewCertificateRepository(db))

	_, err := svc.Issue(context.Background(), "Alice", "Go in Practice", uuid.NewString(), testBaseURL)
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrIssuanceFailed)
	assert.Equal(t, 500, util.StatusFor(err))
}

func TestOpenUnknownCertificate(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewCertificateService(newLocalStorage(t.TempDir()), newTestRenderer(t), repository.NewCertificateRepository(db))
	ctx := context.Background()

	_, err := svc.Open(ctx, uuid.NewString())
	assert.ErrorIs(t, err, util.ErrNotFound)

	for _, id := range []string{"", "not-a-uuid", "../../etc/passwd"} {
		_, err := svc.Open(ctx, id)
		assert.ErrorIs(t, err, util.ErrNotFound, id)
	}
}

func TestDiscardRemovesArtifact(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewCertificateService(newLocalStorage(t.TempDir()), newTestRenderer(t), repository.NewCertificateRepository(db))
	ctx := context.Background()

	id := uuid.NewString()
	_, err := svc.Issue(ctx, "Alice", "Go in Practice", id, testBaseURL)
	require.NoError(t, err)

	require.NoError(t, svc.Discard(ctx, id))
	_, err = svc.Open(ctx, id)
	assert.ErrorIs(t, err, util.ErrNotFound)

	// 重复删除不报错
	assert.NoError(t, svc.Discard(ctx, id))
}

func TestCompletionWithRenderedCertificates(t *testing.T) {
	db := testutil.NewDB(t)
	certs := repository.NewCertificateRepository(db)
	certSvc := NewCertificateService(newLocalStorage(t.TempDir()), newTestRenderer(t), certs)
	progress := NewProgressService(
		db,
		repository.NewProgressRepository(db),
		repository.NewCourseRepository(db),
		repository.NewUserRepository(db),
		certs,
		certSvc,
	)
	student := testutil.SeedUser(t, db, "carol")
	course := testutil.SeedCourse(t, db, "Distributed Systems", 2)
	ctx := context.Background()

	first, err := progress.MarkCompleted(ctx, student.ID, course.ID, testBaseURL)
	require.NoError(t, err)

	record, err := certSvc.Lookup(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, record.Valid())
	assert.Equal(t, first.URL, record.URL)

	second, err := progress.MarkCompleted(ctx, student.ID, course.ID, testBaseURL)
	require.NoError(t, err)

	record, err = certSvc.Lookup(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, record.Valid())

	record, err = certSvc.Lookup(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, record.Valid())

	// 旧证书文件仍可下载
	for _, id := range []string{first.ID, second.ID} {
		rc, err := certSvc.Open(ctx, id)
		require.NoError(t, err)
		rc.Close()
	}

	_, err = certSvc.Lookup(ctx, uuid.NewString())
	assert.ErrorIs(t, err, util.ErrNotFound)
}
