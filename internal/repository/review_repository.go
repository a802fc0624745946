package repository

import (
	"context"
	"coursehub_backend/internal/model"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB       *gorm.DB
	Redis    *redis.Client
	CacheTTL time.Duration
}

// NewReviewRepository rdb 可以为 nil，此时列表查询直接走数据库
func NewReviewRepository(db *gorm.DB, rdb *redis.Client, cacheTTL time.Duration) *ReviewRepository {
	return &ReviewRepository{
		DB:       db,
		Redis:    rdb,
		CacheTTL: cacheTTL,
	}
}

func reviewListKey(courseID uint) string {
	return fmt.Sprintf("reviews:course:%d", courseID)
}

// InvalidateCourse 删除课程评价列表缓存
func (r *ReviewRepository) InvalidateCourse(ctx context.Context, courseID uint) {
	if r.Redis == nil {
		return
	}
	r.Redis.Del(ctx, reviewListKey(courseID))
}

func (r *ReviewRepository) ExistsForUser(ctx context.Context, userID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&model.Review{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepository) Create(ctx context.Context, review *model.Review) error {
	if err := r.DB.WithContext(ctx).Create(review).Error; err != nil {
		return err
	}
	r.InvalidateCourse(ctx, review.CourseID)
	return nil
}

// FindOwned 按 id 和作者同时查询，不存在与不属于该用户都返回 gorm.ErrRecordNotFound
func (r *ReviewRepository) FindOwned(ctx context.Context, reviewID, userID uint) (*model.Review, error) {
	var review model.Review
	err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", reviewID, userID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// UpdateOwned 修改评分和评论，返回更新后的评价
func (r *ReviewRepository) UpdateOwned(ctx context.Context, reviewID, userID uint, rating int, comment string) (*model.Review, error) {
	review, err := r.FindOwned(ctx, reviewID, userID)
	if err != nil {
		return nil, err
	}

	err = r.DB.WithContext(ctx).
		Model(review).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"rating":  rating,
			"comment": comment,
		}).Error
	if err != nil {
		return nil, err
	}

	r.InvalidateCourse(ctx, review.CourseID)
	return r.FindOwned(ctx, reviewID, userID)
}

// DeleteOwned 物理删除评价，返回被删除的记录
func (r *ReviewRepository) DeleteOwned(ctx context.Context, reviewID, userID uint) (*model.Review, error) {
	review, err := r.FindOwned(ctx, reviewID, userID)
	if err != nil {
		return nil, err
	}

	result := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", reviewID, userID).
		Delete(&model.Review{})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	r.InvalidateCourse(ctx, review.CourseID)
	return review, nil
}

// ListByCourse 按创建时间倒序，附带作者姓名和头像
func (r *ReviewRepository) ListByCourse(ctx context.Context, courseID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := r.DB.WithContext(ctx).
		Preload("Author").
		Where("course_id = ?", courseID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error
	return reviews, err
}

// ListByCourseCached 带 Redis 缓存的列表查询，缓存在任何写操作后失效
func (r *ReviewRepository) ListByCourseCached(ctx context.Context, courseID uint) ([]model.Review, error) {
	if r.Redis == nil {
		return r.ListByCourse(ctx, courseID)
	}

	key := reviewListKey(courseID)
	cached, err := r.Redis.Get(ctx, key).Bytes()
	if err == nil {
		var reviews []model.Review
		if json.Unmarshal(cached, &reviews) == nil {
			return reviews, nil
		}
	}

	// 缓存未命中，回源数据库
	reviews, err := r.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(reviews); err == nil {
		r.Redis.Set(ctx, key, data, r.CacheTTL)
	}
	return reviews, nil
}

// RatingsByCourse 课程当前全部评分，用于重新计算平均分
func (r *ReviewRepository) RatingsByCourse(ctx context.Context, courseID uint) ([]int, error) {
	var ratings []int
	err := r.DB.WithContext(ctx).
		Model(&model.Review{}).
		Where("course_id = ?", courseID).
		Pluck("rating", &ratings).Error
	return ratings, err
}
