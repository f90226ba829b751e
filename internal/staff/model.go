package staff

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive     = "active"
	StatusOnLeave    = "on_leave"
	StatusTerminated = "terminated"
)

type Teacher struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	SchoolID  string         `gorm:"size:36;not null;index" json:"school_id"`
	FirstName string         `gorm:"size:100;not null;column:firstname" json:"firstname"`
	LastName  string         `gorm:"size:100;not null;column:lastname" json:"lastname"`
	Email     string         `gorm:"size:255" json:"email"`
	Phone     string         `gorm:"size:30" json:"phone"`
	StaffNo   string         `gorm:"size:50;not null;index" json:"staff_no"`
	Specialty string         `gorm:"size:100" json:"specialty"`
	HiredOn   string         `gorm:"size:10" json:"hired_on"`
	Status    string         `gorm:"size:20;not null;default:active" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (tc *Teacher) BeforeCreate(tx *gorm.DB) error {
	if tc.ID == "" {
		tc.ID = uuid.NewString()
	}
	return nil
}

func (Teacher) TableName() string {
	return "teachers"
}

type CreateTeacherInput struct {
	FirstName string `json:"firstname" binding:"required"`
	LastName  string `json:"lastname" binding:"required"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone"`
	StaffNo   string `json:"staff_no" binding:"required"`
	Specialty string `json:"specialty"`
	HiredOn   string `json:"hired_on"`
}

type UpdateTeacherInput struct {
	FirstName *string `json:"firstname"`
	LastName  *string `json:"lastname"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone"`
	StaffNo   *string `json:"staff_no"`
	Specialty *string `json:"specialty"`
	HiredOn   *string `json:"hired_on"`
	Status    *string `json:"status" binding:"omitempty,oneof=active on_leave terminated"`
}

type ListFilters struct {
	Status    string
	Specialty string
	Search    string
}
