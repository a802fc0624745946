package repository

import (
	"context"
	"coursehub_backend/internal/model"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// WithTx 返回绑定到事务的仓储
func (r *ProgressRepository) WithTx(tx *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: tx}
}

// FindByUserAndCourse 读取进度记录及全部讲次进度，不存在时返回 gorm.ErrRecordNotFound
func (r *ProgressRepository) FindByUserAndCourse(ctx context.Context, userID, courseID uint) (*model.CourseProgress, error) {
	var progress model.CourseProgress
	err := r.DB.WithContext(ctx).
		Preload("LectureProgress", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// FindOrCreate 先查后建。并发创建时唯一索引冲突被忽略，随后重新读取胜出的那条记录
func (r *ProgressRepository) FindOrCreate(ctx context.Context, userID, courseID uint) (*model.CourseProgress, error) {
	db := r.DB.WithContext(ctx)

	var progress model.CourseProgress
	err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error
	if err == nil {
		return &progress, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := &model.CourseProgress{UserID: userID, CourseID: courseID}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(created).Error; err != nil {
		return nil, err
	}

	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

// MarkLectureViewed 新增或更新讲次进度，重复调用结果不变
func (r *ProgressRepository) MarkLectureViewed(ctx context.Context, progressID, lectureID uint) error {
	entry := &model.LectureProgress{
		CourseProgressID: progressID,
		LectureID:        lectureID,
		Viewed:           true,
	}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "course_progress_id"}, {Name: "lecture_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"viewed": true}),
		}).
		Create(entry).Error
}

// SaveCompletion 标记完成并覆盖证书引用
func (r *ProgressRepository) SaveCompletion(ctx context.Context, progressID uint, cert model.CertificateRef) error {
	return r.DB.WithContext(ctx).
		Model(&model.CourseProgress{}).
		Where("id = ?", progressID).
		Updates(map[string]interface{}{
			"completed":       true,
			"certificate_id":  cert.ID,
			"certificate_url": cert.URL,
		}).Error
}

// SetIncomplete 只清除完成标记，证书引用保持不变。记录不存在时返回 gorm.ErrRecordNotFound
func (r *ProgressRepository) SetIncomplete(ctx context.Context, userID, courseID uint) error {
	db := r.DB.WithContext(ctx)

	var progress model.CourseProgress
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error; err != nil {
		return err
	}

	return db.Model(&progress).Update("completed", false).Error
}
