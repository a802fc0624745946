package model

import "time"

// CertificateRecord 证书签发台账。重新签发时旧记录被标记为已作废
// swagger:model CertificateRecord
type CertificateRecord struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	UserID       uint       `gorm:"index:idx_certificate_user_course;not null" json:"userId"`
	CourseID     uint       `gorm:"index:idx_certificate_user_course;not null" json:"courseId"`
	StudentName  string     `gorm:"size:100" json:"studentName"`
	CourseTitle  string     `gorm:"size:200" json:"courseTitle"`
	URL          string     `gorm:"size:512" json:"url"`
	IssuedAt     time.Time  `json:"issuedAt"`
	SupersededAt *time.Time `json:"supersededAt,omitempty"`
	CreatedAt    time.Time  `json:"-"`
}

func (CertificateRecord) TableName() string {
	return "certificates"
}

func (c *CertificateRecord) Valid() bool {
	return c.SupersededAt == nil
}
