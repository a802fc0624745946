package repository

import (
	"context"
	"coursehub_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type CertificateRepository struct {
	DB *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{DB: db}
}

func (r *CertificateRepository) WithTx(tx *gorm.DB) *CertificateRepository {
	return &CertificateRepository{DB: tx}
}

func (r *CertificateRepository) Create(ctx context.Context, record *model.CertificateRecord) error {
	return r.DB.WithContext(ctx).Create(record).Error
}

func (r *CertificateRepository) FindByID(ctx context.Context, id string) (*model.CertificateRecord, error) {
	var record model.CertificateRecord
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// SupersedeActive 作废该用户在该课程下仍然有效的证书
func (r *CertificateRepository) SupersedeActive(ctx context.Context, userID, courseID uint, at time.Time) error {
	return r.DB.WithContext(ctx).
		Model(&model.CertificateRecord{}).
		Where("user_id = ? AND course_id = ? AND superseded_at IS NULL", userID, courseID).
		Update("superseded_at", at).Error
}
