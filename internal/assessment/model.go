package assessment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Assessment struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	SchoolID    string         `gorm:"size:36;not null;index" json:"school_id"`
	StudentID   string         `gorm:"size:36;not null;index" json:"student_id"`
	SubjectID   string         `gorm:"size:36;not null;index" json:"subject_id"`
	ClassID     *string        `gorm:"size:36;index" json:"class_id,omitempty"`
	Term        string         `gorm:"size:20;not null" json:"term"`
	Title       string         `gorm:"size:150;not null" json:"title"`
	MaxScore    float64        `gorm:"not null" json:"max_score"`
	Score       float64        `gorm:"not null" json:"score"`
	GradeLetter string         `gorm:"size:2" json:"grade_letter"`
	Breakdown   datatypes.JSON `gorm:"type:jsonb" json:"breakdown,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Assessment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (Assessment) TableName() string {
	return "assessments"
}

type CreateAssessmentInput struct {
	StudentID string         `json:"student_id" binding:"required"`
	SubjectID string         `json:"subject_id" binding:"required"`
	ClassID   *string        `json:"class_id"`
	Term      string         `json:"term" binding:"required"`
	Title     string         `json:"title" binding:"required"`
	MaxScore  float64        `json:"max_score" binding:"required,gt=0"`
	Score     float64        `json:"score" binding:"gte=0"`
	Breakdown map[string]any `json:"breakdown"`
}

type UpdateAssessmentInput struct {
	Term      *string         `json:"term"`
	Title     *string         `json:"title"`
	MaxScore  *float64        `json:"max_score" binding:"omitempty,gt=0"`
	Score     *float64        `json:"score" binding:"omitempty,gte=0"`
	Breakdown *map[string]any `json:"breakdown"`
}

type ListFilters struct {
	StudentID string
	SubjectID string
	ClassID   string
	Term      string
}
