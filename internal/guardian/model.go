package guardian

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Guardian struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	SchoolID  string         `gorm:"size:36;not null;index" json:"school_id"`
	FirstName string         `gorm:"size:100;not null;column:firstname" json:"firstname"`
	LastName  string         `gorm:"size:100;not null;column:lastname" json:"lastname"`
	Email     string         `gorm:"size:255" json:"email"`
	Phone     string         `gorm:"size:30" json:"phone"`
	Address   string         `gorm:"size:255" json:"address"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Students []GuardianStudent `gorm:"foreignKey:GuardianID" json:"students,omitempty"`
}

func (g *Guardian) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

func (Guardian) TableName() string {
	return "guardians"
}

// GuardianStudent links a guardian to one student with the relationship
// ("mother", "father", "guardian", ...) recorded on the link itself.
type GuardianStudent struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	GuardianID   string    `gorm:"size:36;not null;index:idx_guardian_student,unique" json:"guardian_id"`
	StudentID    string    `gorm:"size:36;not null;index:idx_guardian_student,unique" json:"student_id"`
	Relationship string    `gorm:"size:50" json:"relationship"`
	CreatedAt    time.Time `json:"created_at"`
}

func (GuardianStudent) TableName() string {
	return "guardian_students"
}

type CreateGuardianInput struct {
	FirstName string `json:"firstname" binding:"required"`
	LastName  string `json:"lastname" binding:"required"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type UpdateGuardianInput struct {
	FirstName *string `json:"firstname"`
	LastName  *string `json:"lastname"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
}

type LinkStudentInput struct {
	StudentID    string `json:"student_id" binding:"required"`
	Relationship string `json:"relationship"`
}

type ListFilters struct {
	StudentID string
	Search    string
}
