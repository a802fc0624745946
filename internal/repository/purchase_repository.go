package repository

import (
	"context"
	"coursehub_backend/internal/model"

	"gorm.io/gorm"
)

type PurchaseRepository struct {
	DB *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{DB: db}
}

// HasCompletedPurchase 是否存在状态为 completed 的购买记录
func (r *PurchaseRepository) HasCompletedPurchase(ctx context.Context, userID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&model.CoursePurchase{}).
		Where("user_id = ? AND course_id = ? AND status = ?", userID, courseID, model.PurchaseCompleted).
		Count(&count).Error
	return count > 0, err
}
