package service

import (
	"context"
	"coursehub_backend/internal/repository"
	"coursehub_backend/pkg/monitoring"
	"coursehub_backend/pkg/tracing"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
)

// RatingService 维护课程平均分。每次都按全部评价重新计算，不做增量更新
type RatingService struct {
	ReviewRepo *repository.ReviewRepository
	CourseRepo *repository.CourseRepository
}

func NewRatingService(reviewRepo *repository.ReviewRepository, courseRepo *repository.CourseRepository) *RatingService {
	return &RatingService{
		ReviewRepo: reviewRepo,
		CourseRepo: courseRepo,
	}
}

// AverageOf 算术平均，空集合为 0
func AverageOf(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	total := 0
	for _, r := range ratings {
		total += r
	}
	return float64(total) / float64(len(ratings))
}

// Recompute 读取课程当前全部评分，重新计算并写回 courses.average_rating
func (s *RatingService) Recompute(ctx context.Context, courseID uint) (float64, error) {
	ctx, span := tracing.Tracer.Start(ctx, "rating.recompute")
	defer span.End()

	ratings, err := s.ReviewRepo.RatingsByCourse(ctx, courseID)
	if err != nil {
		return 0, storeErr(err)
	}

	average := AverageOf(ratings)
	span.SetAttributes(
		attribute.Int("course.id", int(courseID)),
		attribute.Int("reviews", len(ratings)),
		attribute.Float64("average", average),
	)

	if err := s.CourseRepo.UpdateAverageRating(ctx, courseID, average); err != nil {
		return 0, storeErr(err)
	}

	// 再删一次列表缓存：写操作删除缓存之后，并发的未命中读取可能把旧列表写回
	s.ReviewRepo.InvalidateCourse(ctx, courseID)

	monitoring.RatingRecomputes.Inc()
	return average, nil
}

// RecomputeAll 校准所有课程的平均分，返回处理的课程数
func (s *RatingService) RecomputeAll(ctx context.Context) (int, error) {
	ids, err := s.CourseRepo.ListIDs(ctx)
	if err != nil {
		return 0, storeErr(err)
	}

	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if _, err := s.Recompute(ctx, id); err != nil {
			return i, fmt.Errorf("course %d: %w", id, err)
		}
	}
	return len(ids), nil
}
