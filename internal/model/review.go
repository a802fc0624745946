package model

import "time"

// Review 每个 (用户, 课程) 一条。删除为物理删除，以便删除后可以重新评价
// swagger:model Review
type Review struct {
	ID        uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint          `gorm:"uniqueIndex:idx_review_user_course;not null" json:"userId"`
	CourseID  uint          `gorm:"uniqueIndex:idx_review_user_course;index;not null" json:"courseId"`
	Rating    int           `gorm:"not null" json:"rating"`
	Comment   string        `gorm:"type:text" json:"comment"`
	CreatedAt time.Time     `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Author    *ReviewAuthor `gorm:"foreignKey:UserID;-:migration" json:"user,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}

// ReviewAuthor users 表的只读投影，仅用于展示评价作者
type ReviewAuthor struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"size:100" json:"name"`
	Avatar string `gorm:"size:255" json:"photoUrl"`
}

func (ReviewAuthor) TableName() string {
	return "users"
}
