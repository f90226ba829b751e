package bursary

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusDisbursed = "disbursed"
)

type Bursary struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	SchoolID    string         `gorm:"size:36;not null;index" json:"school_id"`
	StudentID   string         `gorm:"size:36;not null;index" json:"student_id"`
	Name        string         `gorm:"size:150;not null" json:"name"`
	Sponsor     string         `gorm:"size:150" json:"sponsor"`
	Amount      float64        `gorm:"not null" json:"amount"`
	Currency    string         `gorm:"size:3;not null;default:USD" json:"currency"`
	Status      string         `gorm:"size:20;not null;default:pending" json:"status"`
	AwardDate   string         `gorm:"size:10" json:"award_date"`
	DocumentURL string         `gorm:"size:512" json:"document_url,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *Bursary) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

func (Bursary) TableName() string {
	return "bursaries"
}

type CreateBursaryInput struct {
	StudentID string  `json:"student_id" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Sponsor   string  `json:"sponsor"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Currency  string  `json:"currency"`
	AwardDate string  `json:"award_date"`

	// Optional supporting document, sent inline as base64.
	DocumentName   string `json:"document_name"`
	DocumentBase64 string `json:"document_base64"`
	DocumentMime   string `json:"document_mime"`
}

type UpdateBursaryInput struct {
	Name      *string  `json:"name"`
	Sponsor   *string  `json:"sponsor"`
	Amount    *float64 `json:"amount" binding:"omitempty,gt=0"`
	Currency  *string  `json:"currency"`
	Status    *string  `json:"status" binding:"omitempty,oneof=pending approved rejected disbursed"`
	AwardDate *string  `json:"award_date"`
}

type ListFilters struct {
	StudentID string
	Status    string
	Sponsor   string
}
