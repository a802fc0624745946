package service

import (
	"context"
	"coursehub_backend/internal/model"
	"coursehub_backend/internal/repository"
	"coursehub_backend/internal/util"
	"coursehub_backend/pkg/logger"

	"go.uber.org/zap"
)

type ReviewService struct {
	ReviewRepo   *repository.ReviewRepository
	PurchaseRepo *repository.PurchaseRepository
	Rating       *RatingService
}

func NewReviewService(
	reviewRepo *repository.ReviewRepository,
	purchaseRepo *repository.PurchaseRepository,
	rating *RatingService,
) *ReviewService {
	return &ReviewService{
		ReviewRepo:   reviewRepo,
		PurchaseRepo: purchaseRepo,
		Rating:       rating,
	}
}

type CreateReviewRequest struct {
	CourseID uint   `json:"courseId" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment"`
}

type UpdateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// CreateReview 需要已完成的购买记录，且每个用户每门课只能评价一次
func (s *ReviewService) CreateReview(ctx context.Context, userID, courseID uint, rating int, comment string) (*model.Review, error) {
	purchased, err := s.PurchaseRepo.HasCompletedPurchase(ctx, userID, courseID)
	if err != nil {
		return nil, storeErr(err)
	}
	if !purchased {
		return nil, util.ErrForbidden
	}

	exists, err := s.ReviewRepo.ExistsForUser(ctx, userID, courseID)
	if err != nil {
		return nil, storeErr(err)
	}
	if exists {
		return nil, util.ErrConflict
	}

	review := &model.Review{
		UserID:   userID,
		CourseID: courseID,
		Rating:   rating,
		Comment:  comment,
	}
	if err := s.ReviewRepo.Create(ctx, review); err != nil {
		// 并发重复提交时由唯一索引兜底
		if dup, _ := s.ReviewRepo.ExistsForUser(ctx, userID, courseID); dup {
			return nil, util.ErrConflict
		}
		return nil, storeErr(err)
	}

	s.recompute(ctx, courseID)
	return review, nil
}

// UpdateReview 只能修改自己的评价，否则一律视为不存在
func (s *ReviewService) UpdateReview(ctx context.Context, reviewID, userID uint, rating int, comment string) (*model.Review, error) {
	review, err := s.ReviewRepo.UpdateOwned(ctx, reviewID, userID, rating, comment)
	if err != nil {
		return nil, storeErr(err)
	}

	s.recompute(ctx, review.CourseID)
	return review, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, reviewID, userID uint) error {
	review, err := s.ReviewRepo.DeleteOwned(ctx, reviewID, userID)
	if err != nil {
		return storeErr(err)
	}

	s.recompute(ctx, review.CourseID)
	return nil
}

func (s *ReviewService) ListReviewsForCourse(ctx context.Context, courseID uint) ([]model.Review, error) {
	reviews, err := s.ReviewRepo.ListByCourseCached(ctx, courseID)
	if err != nil {
		return nil, storeErr(err)
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	return reviews, nil
}

// recompute 评价已经写入，平均分计算失败只记录日志，由定时校准任务修正
func (s *ReviewService) recompute(ctx context.Context, courseID uint) {
	if _, err := s.Rating.Recompute(ctx, courseID); err != nil {
		logger.Log.Warn("failed to recompute average rating",
			zap.Uint("course_id", courseID), zap.Error(err))
	}
}
