package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
	RoleParent  = "parent"
	RoleVendor  = "vendor"
)

type User struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	SchoolID  *string        `gorm:"size:36;index" json:"school_id,omitempty"`
	FirstName string         `gorm:"size:100;not null;column:firstname" json:"firstname"`
	LastName  string         `gorm:"size:100;not null;column:lastname" json:"lastname"`
	Email     string         `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Role      string         `gorm:"size:20;not null" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (User) TableName() string {
	return "users"
}

type OTP struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"index;not null"`
	Code      string    `gorm:"size:6;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (OTP) TableName() string {
	return "otps"
}

type LoginResponse struct {
	Token        string  `json:"token"`
	RefreshToken string  `json:"refresh_token"`
	ID           string  `json:"id"`
	FirstName    string  `json:"firstname"`
	LastName     string  `json:"lastname"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	SchoolID     *string `json:"school_id,omitempty"`
}

type SendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	OTP      string `json:"otp" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type ListFilters struct {
	Role   string
	Search string
}

// UpdateUserInput only touches fields the caller actually sent.
type UpdateUserInput struct {
	FirstName *string `json:"firstname"`
	LastName  *string `json:"lastname"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Role      *string `json:"role"`
	SchoolID  *string `json:"school_id"`
}
