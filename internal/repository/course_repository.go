package repository

import (
	"context"
	"coursehub_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) FindByID(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.WithContext(ctx).First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// FindWithLectures 课程详情，讲次按 position 排序
func (r *CourseRepository) FindWithLectures(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.WithContext(ctx).
		Preload("Lectures", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// UpdateAverageRating 只写派生字段 average_rating，不触碰 updated_at 以外的目录数据
func (r *CourseRepository) UpdateAverageRating(ctx context.Context, id uint, average float64) error {
	return r.DB.WithContext(ctx).
		Model(&model.Course{}).
		Where("id = ?", id).
		Update("average_rating", average).Error
}

func (r *CourseRepository) ListIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).Model(&model.Course{}).Order("id ASC").Pluck("id", &ids).Error
	return ids, err
}
