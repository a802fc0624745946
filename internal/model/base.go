package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// swagger:model
type BaseModel struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// GenerateUUID 生成随机 UUIDv4，用作证书编号等全局唯一标识
func GenerateUUID() string {
	return uuid.New().String()
}

// AllModels 返回需要自动迁移的全部模型
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Course{},
		&Lecture{},
		&CoursePurchase{},
		&CourseProgress{},
		&LectureProgress{},
		&Review{},
		&CertificateRecord{},
	}
}
