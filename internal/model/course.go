package model

// Course 课程目录条目。除 AverageRating 外均由目录服务维护
// swagger:model Course
type Course struct {
	BaseModel
	Title         string    `gorm:"size:200;not null" json:"courseTitle"`
	Subtitle      string    `gorm:"size:255" json:"subTitle"`
	Description   string    `gorm:"type:text" json:"description"`
	Category      string    `gorm:"size:100" json:"category"`
	Level         string    `gorm:"size:50" json:"courseLevel"`
	Price         float64   `json:"coursePrice"`
	Thumbnail     string    `gorm:"size:255" json:"courseThumbnail"`
	CreatorID     uint      `gorm:"index" json:"creator"`
	IsPublished   bool      `gorm:"default:false" json:"isPublished"`
	AverageRating float64   `gorm:"default:0" json:"averageRating"`
	Lectures      []Lecture `gorm:"foreignKey:CourseID" json:"lectures"`
}

func (Course) TableName() string {
	return "courses"
}

// swagger:model Lecture
type Lecture struct {
	BaseModel
	CourseID      uint   `gorm:"index;not null" json:"courseId"`
	Title         string `gorm:"size:200;not null" json:"lectureTitle"`
	VideoURL      string `gorm:"size:512" json:"videoUrl"`
	IsPreviewFree bool   `gorm:"default:false" json:"isPreviewFree"`
	Position      int    `gorm:"default:0" json:"position"`
}

func (Lecture) TableName() string {
	return "lectures"
}
