package models

import "time"

// Report statuses. A report starts pending; an admin moves it to accepted or
// rejected, the reporter may withdraw it. All three outcomes are terminal.
const (
	ReportPending   = "pending"
	ReportAccepted  = "accepted"
	ReportRejected  = "rejected"
	ReportWithdrawn = "withdrawn"
)

type Report struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;index"` // reporter
	ReviewID  int64     `json:"review_id" gorm:"not null;index"`
	HandlerID *string   `json:"handler_id,omitempty" gorm:"type:uuid"` // admin who resolved it
	Content   string    `json:"content" gorm:"not null;size:500"`
	Status    string    `json:"status" gorm:"default:'pending';not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User    *User   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Review  *Review `json:"review,omitempty" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE;"`
	Handler *User   `json:"handler,omitempty" gorm:"foreignKey:HandlerID"`
}

// Terminal reports whether the report can no longer transition.
func (r *Report) Terminal() bool {
	return r.Status != ReportPending
}

func (Report) TableName() string {
	return "reports"
}
