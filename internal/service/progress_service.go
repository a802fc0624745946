package service

import (
	"context"
	"coursehub_backend/internal/model"
	"coursehub_backend/internal/repository"
	"coursehub_backend/pkg/logger"
	"coursehub_backend/pkg/monitoring"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type ProgressService struct {
	DB              *gorm.DB
	ProgressRepo    *repository.ProgressRepository
	CourseRepo      *repository.CourseRepository
	UserRepo        *repository.UserRepository
	CertificateRepo *repository.CertificateRepository
	Issuer          CertificateIssuer
	newID           func() string
	now             func() time.Time
}

func NewProgressService(
	db *gorm.DB,
	progressRepo *repository.ProgressRepository,
	courseRepo *repository.CourseRepository,
	userRepo *repository.UserRepository,
	certificateRepo *repository.CertificateRepository,
	issuer CertificateIssuer,
) *ProgressService {
	return &ProgressService{
		DB:              db,
		ProgressRepo:    progressRepo,
		CourseRepo:      courseRepo,
		UserRepo:        userRepo,
		CertificateRepo: certificateRepo,
		Issuer:          issuer,
		newID:           model.GenerateUUID,
		now:             time.Now,
	}
}

// ProgressView 课程进度视图。HasRecord 为 false 表示用户尚未产生任何进度
type ProgressView struct {
	CourseDetails *model.Course           `json:"courseDetails"`
	Progress      []model.LectureProgress `json:"progress"`
	Completed     bool                    `json:"completed"`
	Certificate   *model.CertificateRef   `json:"certificate"`
	HasRecord     bool                    `json:"-"`
}

// RecordLectureViewed 首次交互时创建进度记录，然后把该讲次标记为已观看
func (s *ProgressService) RecordLectureViewed(ctx context.Context, userID, courseID, lectureID uint) error {
	progress, err := s.ProgressRepo.FindOrCreate(ctx, userID, courseID)
	if err != nil {
		logger.Log.Error("failed to load course progress",
			zap.Uint("user_id", userID), zap.Uint("course_id", courseID), zap.Error(err))
		return storeErr(err)
	}

	if err := s.ProgressRepo.MarkLectureViewed(ctx, progress.ID, lectureID); err != nil {
		logger.Log.Error("failed to record lecture view",
			zap.Uint("user_id", userID), zap.Uint("course_id", courseID),
			zap.Uint("lecture_id", lectureID), zap.Error(err))
		return storeErr(err)
	}

	monitoring.LectureViews.Inc()
	return nil
}

// GetProgress 只读，不会创建进度记录。课程不存在时返回 ErrNotFound
func (s *ProgressService) GetProgress(ctx context.Context, userID, courseID uint) (*ProgressView, error) {
	var (
		course   *model.Course
		progress *model.CourseProgress
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.CourseRepo.FindWithLectures(gctx, courseID)
		if err != nil {
			return err
		}
		course = c
		return nil
	})
	g.Go(func() error {
		p, err := s.ProgressRepo.FindByUserAndCourse(gctx, userID, courseID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		progress = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, storeErr(err)
	}

	view := &ProgressView{
		CourseDetails: course,
		Progress:      []model.LectureProgress{},
	}
	if progress == nil {
		return view, nil
	}

	view.HasRecord = true
	view.Completed = progress.Completed
	if len(progress.LectureProgress) > 0 {
		view.Progress = progress.LectureProgress
	}
	// 证书只在完成状态下展示，标记未完成后引用仍保留在记录中
	if progress.Completed {
		view.Certificate = progress.Certificate()
	}
	return view, nil
}

// MarkCompleted 每次调用都签发一张新证书，并作废此前签发的证书。
// 签发失败时不修改进度；登记失败时删除刚写入的证书文件
func (s *ProgressService) MarkCompleted(ctx context.Context, userID, courseID uint, baseURL string) (*model.CertificateRef, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	course, err := s.CourseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, storeErr(err)
	}

	certificateID := s.newID()
	cert, err := s.Issuer.Issue(ctx, user.Name, course.Title, certificateID, baseURL)
	if err != nil {
		logger.Log.Error("certificate issuance failed",
			zap.Uint("user_id", userID), zap.Uint("course_id", courseID),
			zap.String("certificate_id", certificateID), zap.Error(err))
		return nil, err
	}

	issuedAt := s.now()
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		progress, err := s.ProgressRepo.WithTx(tx).FindOrCreate(ctx, userID, courseID)
		if err != nil {
			return err
		}
		if err := s.ProgressRepo.WithTx(tx).SaveCompletion(ctx, progress.ID, *cert); err != nil {
			return err
		}

		certificates := s.CertificateRepo.WithTx(tx)
		if err := certificates.SupersedeActive(ctx, userID, courseID, issuedAt); err != nil {
			return err
		}
		return certificates.Create(ctx, &model.CertificateRecord{
			ID:          cert.ID,
			UserID:      userID,
			CourseID:    courseID,
			StudentName: user.Name,
			CourseTitle: course.Title,
			URL:         cert.URL,
			IssuedAt:    issuedAt,
		})
	})
	if err != nil {
		logger.Log.Error("failed to persist course completion",
			zap.Uint("user_id", userID), zap.Uint("course_id", courseID),
			zap.String("certificate_id", certificateID), zap.Error(err))
		if derr := s.Issuer.Discard(ctx, certificateID); derr != nil {
			logger.Log.Warn("failed to discard orphaned certificate",
				zap.String("certificate_id", certificateID), zap.Error(derr))
		}
		return nil, storeErr(err)
	}

	logger.Log.Info("course marked as completed",
		zap.Uint("user_id", userID), zap.Uint("course_id", courseID),
		zap.String("certificate_id", certificateID))
	return cert, nil
}

// MarkIncomplete 需要已有进度记录，只清除完成标记
func (s *ProgressService) MarkIncomplete(ctx context.Context, userID, courseID uint) error {
	if err := s.ProgressRepo.SetIncomplete(ctx, userID, courseID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Log.Error("failed to mark course incomplete",
				zap.Uint("user_id", userID), zap.Uint("course_id", courseID), zap.Error(err))
		}
		return storeErr(err)
	}
	return nil
}
