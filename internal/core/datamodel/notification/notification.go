package notification

import "time"

type Notification struct {
	ID         int64     `gorm:"primaryKey"`
	Department string    `gorm:"column:department;not null;index"`
	Kind       string    `gorm:"column:kind;not null"`
	SubjectID  int64     `gorm:"column:subject_id;not null"`
	Message    string    `gorm:"column:message;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Notification) TableName() string {
	return "notifications"
}
