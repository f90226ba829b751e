package student

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive      = "active"
	StatusGraduated   = "graduated"
	StatusTransferred = "transferred"
	StatusSuspended   = "suspended"
)

type Student struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	SchoolID    string         `gorm:"size:36;not null;index" json:"school_id"`
	FirstName   string         `gorm:"size:100;not null;column:firstname" json:"firstname"`
	LastName    string         `gorm:"size:100;not null;column:lastname" json:"lastname"`
	AdmissionNo string         `gorm:"size:50;not null;index" json:"admission_no"`
	GradeLevel  string         `gorm:"size:20" json:"grade_level"`
	DateOfBirth string         `gorm:"size:10" json:"date_of_birth"`
	Gender      string         `gorm:"size:10" json:"gender"`
	ClassID     *string        `gorm:"size:36;index" json:"class_id,omitempty"`
	Status      string         `gorm:"size:20;not null;default:active" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

func (Student) TableName() string {
	return "students"
}

type CreateStudentInput struct {
	FirstName   string  `json:"firstname" binding:"required"`
	LastName    string  `json:"lastname" binding:"required"`
	AdmissionNo string  `json:"admission_no" binding:"required"`
	GradeLevel  string  `json:"grade_level"`
	DateOfBirth string  `json:"date_of_birth"`
	Gender      string  `json:"gender"`
	ClassID     *string `json:"class_id"`
}

type UpdateStudentInput struct {
	FirstName   *string `json:"firstname"`
	LastName    *string `json:"lastname"`
	AdmissionNo *string `json:"admission_no"`
	GradeLevel  *string `json:"grade_level"`
	DateOfBirth *string `json:"date_of_birth"`
	Gender      *string `json:"gender"`
	ClassID     *string `json:"class_id"`
	Status      *string `json:"status" binding:"omitempty,oneof=active graduated transferred suspended"`
}

type ListFilters struct {
	Status     string
	GradeLevel string
	ClassID    string
	Search     string
}
