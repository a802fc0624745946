// 手动触发课程平均分校准脚本
//
// 主应用已按 rating.reconcile_cron 定时执行同样的校准。
// 此脚本用于批量导入评价或修复数据后立即校准，结果以 YAML 输出到标准输出。
//
// 用法: go run scripts/reconcile_ratings.go

package main

import (
	"context"
	"coursehub_backend/internal/config"
	"coursehub_backend/internal/repository"
	"coursehub_backend/internal/service"
	"coursehub_backend/pkg/database"
	"coursehub_backend/pkg/logger"
	"log"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type courseRating struct {
	CourseID      uint    `yaml:"course_id"`
	AverageRating float64 `yaml:"average_rating"`
}

type report struct {
	Courses []courseRating `yaml:"courses"`
	Failed  []uint         `yaml:"failed,omitempty"`
}

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置: %v", err)
	}

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	// 脚本不经过缓存读取评价
	reviewRepo := repository.NewReviewRepository(db, nil, 0)
	courseRepo := repository.NewCourseRepository(db)
	rating := service.NewRatingService(reviewRepo, courseRepo)

	ctx := context.Background()
	ids, err := courseRepo.ListIDs(ctx)
	if err != nil {
		log.Fatalf("读取课程列表失败: %v", err)
	}

	log.Printf("开始校准 %d 门课程的平均分...", len(ids))
	var out report
	for _, id := range ids {
		avg, err := rating.Recompute(ctx, id)
		if err != nil {
			logger.Log.Error("recompute failed", zap.Uint("course_id", id), zap.Error(err))
			out.Failed = append(out.Failed, id)
			continue
		}
		out.Courses = append(out.Courses, courseRating{CourseID: id, AverageRating: avg})
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		log.Fatalf("输出结果失败: %v", err)
	}
	_ = enc.Close()

	if len(out.Failed) > 0 {
		os.Exit(1)
	}
	log.Println("完成！")
}
