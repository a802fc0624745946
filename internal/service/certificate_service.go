package service

import (
	"bytes"
	"context"
	"coursehub_backend/internal/model"
	"coursehub_backend/internal/repository"
	"coursehub_backend/internal/util"
	"coursehub_backend/pkg/logger"
	"coursehub_backend/pkg/monitoring"
	"coursehub_backend/pkg/tracing"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CertificateIssuer 渲染证书并写入持久存储。证书编号由调用方生成
type CertificateIssuer interface {
	Issue(ctx context.Context, studentName, courseTitle, certificateID, baseURL string) (*model.CertificateRef, error)
	Discard(ctx context.Context, certificateID string) error
}

type CertificateService struct {
	Storage         *StorageService
	Renderer        *CertificateRenderer
	CertificateRepo *repository.CertificateRepository
	now             func() time.Time
}

func NewCertificateService(
	storage *StorageService,
	renderer *CertificateRenderer,
	certificateRepo *repository.CertificateRepository,
) *CertificateService {
	return &CertificateService{
		Storage:         storage,
		Renderer:        renderer,
		CertificateRepo: certificateRepo,
		now:             time.Now,
	}
}

// CertificateKey 证书文件在存储中的 key
func CertificateKey(certificateID string) string {
	return util.CertificatePrefix + "/" + certificateID + ".pdf"
}

// CertificateURL 证书的对外地址，与 /certificates/{id}.pdf 路由一致
func CertificateURL(baseURL, certificateID string) string {
	return strings.TrimRight(baseURL, "/") + "/" + util.CertificatePrefix + "/" + certificateID + ".pdf"
}

// Issue 同步渲染并写入证书，写入完成前不返回
func (s *CertificateService) Issue(ctx context.Context, studentName, courseTitle, certificateID, baseURL string) (*model.CertificateRef, error) {
	ctx, span := tracing.Tracer.Start(ctx, "certificate.issue")
	defer span.End()
	span.SetAttributes(attribute.String("certificate.id", certificateID))

	fail := func(stage string, err error) (*model.CertificateRef, error) {
		monitoring.CertificateFailures.WithLabelValues(stage).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, stage)
		return nil, fmt.Errorf("%w: %s: %w", util.ErrIssuanceFailed, stage, err)
	}

	pdf, err := s.Renderer.RenderPDF(CertificateData{
		StudentName:   studentName,
		CourseTitle:   courseTitle,
		CertificateID: certificateID,
		IssuedAt:      s.now(),
	})
	if err != nil {
		return fail("render", err)
	}

	key := CertificateKey(certificateID)
	if err := s.Storage.Upload(ctx, key, bytes.NewReader(pdf), int64(len(pdf)), util.MimePDF); err != nil {
		return fail("store", err)
	}

	monitoring.CertificatesIssued.Inc()
	logger.Log.Info("certificate issued",
		zap.String("certificate_id", certificateID),
		zap.Int("bytes", len(pdf)),
	)

	return &model.CertificateRef{
		ID:  certificateID,
		URL: CertificateURL(baseURL, certificateID),
	}, nil
}

// Discard 删除已写入但未能登记的证书文件
func (s *CertificateService) Discard(ctx context.Context, certificateID string) error {
	return s.Storage.Delete(ctx, CertificateKey(certificateID))
}

// Open 仅凭证书编号读取证书文件
func (s *CertificateService) Open(ctx context.Context, certificateID string) (io.ReadCloser, error) {
	if _, err := uuid.Parse(certificateID); err != nil {
		return nil, util.ErrNotFound
	}
	rc, err := s.Storage.Open(ctx, CertificateKey(certificateID))
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", util.ErrStorage, err)
	}
	return rc, nil
}

// Lookup 查询证书台账
func (s *CertificateService) Lookup(ctx context.Context, certificateID string) (*model.CertificateRecord, error) {
	if _, err := uuid.Parse(certificateID); err != nil {
		return nil, util.ErrNotFound
	}
	record, err := s.CertificateRepo.FindByID(ctx, certificateID)
	if err != nil {
		return nil, storeErr(err)
	}
	return record, nil
}

// storeErr 把持久层错误归类为 NotFound 或 StorageError
func storeErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrNotFound
	}
	return fmt.Errorf("%w: %w", util.ErrStorage, err)
}
