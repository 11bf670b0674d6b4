package models

import "time"

// CodeSubmission is a snippet sent for analysis together with whatever the
// analysis produced. Rows are never updated.
type CodeSubmission struct {
	ID             uint64          `gorm:"primarykey" json:"id"`
	UserID         uint64          `gorm:"not null;index:idx_code_submissions_user_created,priority:1" json:"user_id"`
	Heading        *string         `gorm:"type:varchar(255)" json:"heading"`
	CodeText       string          `gorm:"type:text;not null" json:"code_text"`
	AnalysisResult *AnalysisResult `gorm:"column:ai_result;type:text;serializer:json" json:"ai_result"`
	CreatedAt      time.Time       `gorm:"index:idx_code_submissions_user_created,priority:2" json:"created_at"`
}

func (CodeSubmission) TableName() string {
	return "code_submissions"
}
