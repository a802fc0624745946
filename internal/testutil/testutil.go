// Package testutil 测试用的 SQLite 数据库和种子数据
package testutil

import (
	"coursehub_backend/internal/model"
	"coursehub_backend/pkg/database"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 在临时目录中创建已迁移的 SQLite 数据库
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Open(sqlite.Open(path+"?_busy_timeout=5000"), logger.Discard)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func SeedUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()

	user := &model.User{
		Name:   name,
		Email:  fmt.Sprintf("%s@example.com", name),
		Role:   model.Student,
		Avatar: "https://cdn.example.com/avatars/" + name + ".png",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// SeedCourse 创建课程及 lectures 个讲次，讲次按 position 递增
func SeedCourse(t *testing.T, db *gorm.DB, title string, lectures int) *model.Course {
	t.Helper()

	course := &model.Course{Title: title, IsPublished: true}
	for i := 0; i < lectures; i++ {
		course.Lectures = append(course.Lectures, model.Lecture{
			Title:    fmt.Sprintf("%s lecture %d", title, i+1),
			Position: i + 1,
		})
	}
	require.NoError(t, db.Create(course).Error)
	return course
}

func SeedPurchase(t *testing.T, db *gorm.DB, userID, courseID uint, status model.PurchaseStatus) {
	t.Helper()

	require.NoError(t, db.Create(&model.CoursePurchase{
		UserID:   userID,
		CourseID: courseID,
		Status:   status,
	}).Error)
}
