package audit

import (
	"time"
)

type Entry struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Level     string    `gorm:"size:20;not null" json:"level"`
	Service   string    `gorm:"size:100;not null" json:"service"`
	Action    string    `gorm:"size:255;not null" json:"action"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	UserID    *string   `gorm:"size:36;index" json:"user_id,omitempty"`
	SchoolID  *string   `gorm:"size:36;index" json:"school_id,omitempty"`
	Metadata  *string   `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Entry) TableName() string {
	return "audit_logs"
}

type FilterInput struct {
	Level    *string `json:"level"`
	Service  *string `json:"service"`
	Action   *string `json:"action"`
	UserID   *string `json:"user_id"`
	SchoolID *string `json:"school_id"`

	StartDate *string `json:"start_date"` // "YYYY-MM-DD"
	EndDate   *string `json:"end_date"`   // "YYYY-MM-DD"

	Search *string `json:"search"`
}

type AggItem struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type Aggregates struct {
	ByService []AggItem `json:"by_service"`
	ByAction  []AggItem `json:"by_action"`
	ByLevel   []AggItem `json:"by_level"`
}
