package model

type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "pending"
	PurchaseCompleted PurchaseStatus = "completed"
	PurchaseFailed    PurchaseStatus = "failed"
)

// CoursePurchase 支付服务写入的购买记录，本服务只查询
// swagger:model CoursePurchase
type CoursePurchase struct {
	BaseModel
	UserID    uint           `gorm:"index:idx_purchase_user_course;not null" json:"userId"`
	CourseID  uint           `gorm:"index:idx_purchase_user_course;not null" json:"courseId"`
	Amount    float64        `json:"amount"`
	Status    PurchaseStatus `gorm:"size:20;default:'pending'" json:"status"`
	PaymentID string         `gorm:"size:100" json:"paymentId"`
}

func (CoursePurchase) TableName() string {
	return "course_purchases"
}
