package model

import "time"

// CertificateRef 证书引用：证书编号 + 可独立解析的文件地址
// swagger:model CertificateRef
type CertificateRef struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CourseProgress 每个 (用户, 课程) 至多一条，首次交互时才创建
// swagger:model CourseProgress
type CourseProgress struct {
	BaseModel
	UserID          uint              `gorm:"uniqueIndex:idx_progress_user_course;not null" json:"userId"`
	CourseID        uint              `gorm:"uniqueIndex:idx_progress_user_course;not null" json:"courseId"`
	Completed       bool              `gorm:"default:false" json:"completed"`
	CertificateID   string            `gorm:"size:36" json:"-"`
	CertificateURL  string            `gorm:"size:512" json:"-"`
	LectureProgress []LectureProgress `gorm:"foreignKey:CourseProgressID" json:"lectureProgress"`
}

func (CourseProgress) TableName() string {
	return "course_progresses"
}

// Certificate 返回已签发证书的引用，从未签发过时返回 nil。
// 标记未完成不会清空证书。
func (p *CourseProgress) Certificate() *CertificateRef {
	if p.CertificateID == "" {
		return nil
	}
	return &CertificateRef{ID: p.CertificateID, URL: p.CertificateURL}
}

// LectureProgress 属于 CourseProgress，同一进度记录内 lecture_id 唯一
// swagger:model LectureProgress
type LectureProgress struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	CourseProgressID uint      `gorm:"uniqueIndex:idx_lecture_progress;not null" json:"-"`
	LectureID        uint      `gorm:"uniqueIndex:idx_lecture_progress;not null" json:"lectureId"`
	Viewed           bool      `json:"viewed"`
	UpdatedAt        time.Time `json:"-"`
}

func (LectureProgress) TableName() string {
	return "lecture_progresses"
}
