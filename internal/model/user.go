package model

type UserRole string

const (
	Student    UserRole = "student"
	Instructor UserRole = "instructor"
	Admin      UserRole = "admin"
)

// User 由身份服务维护，本服务只读取姓名和头像
// swagger:model User
type User struct {
	BaseModel
	Name   string   `gorm:"size:100;not null" json:"name"`
	Email  string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Role   UserRole `gorm:"size:20;default:'student'" json:"role"`
	Avatar string   `gorm:"size:255" json:"photoUrl"`
}

func (User) TableName() string {
	return "users"
}
