package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusExcused = "excused"
)

type Record struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	SchoolID  string         `gorm:"size:36;not null;index" json:"school_id"`
	StudentID string         `gorm:"size:36;not null;index:idx_attendance_day" json:"student_id"`
	ClassID   string         `gorm:"size:36;not null;index:idx_attendance_day" json:"class_id"`
	Date      string         `gorm:"size:10;not null;index:idx_attendance_day" json:"date"`
	Status    string         `gorm:"size:10;not null" json:"status"`
	Remarks   string         `gorm:"size:255" json:"remarks"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (r *Record) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (Record) TableName() string {
	return "attendance_records"
}

type MarkEntry struct {
	StudentID string `json:"student_id" binding:"required"`
	Status    string `json:"status" binding:"required,oneof=present absent late excused"`
	Remarks   string `json:"remarks"`
}

// MarkRegisterInput records a whole class register for one day in one call.
type MarkRegisterInput struct {
	ClassID string      `json:"class_id" binding:"required"`
	Date    string      `json:"date" binding:"required"`
	Entries []MarkEntry `json:"entries" binding:"required,min=1,dive"`
}

type UpdateRecordInput struct {
	Status  *string `json:"status" binding:"omitempty,oneof=present absent late excused"`
	Remarks *string `json:"remarks"`
}

type ListFilters struct {
	StudentID string
	ClassID   string
	Status    string
	StartDate string
	EndDate   string
}

type Summary struct {
	Present int64 `json:"present"`
	Absent  int64 `json:"absent"`
	Late    int64 `json:"late"`
	Excused int64 `json:"excused"`
	Total   int64 `json:"total"`
}
