package academics

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Subject struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	SchoolID    string         `gorm:"size:36;not null;index" json:"school_id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Code        string         `gorm:"size:20;not null;index" json:"code"`
	GradeLevel  string         `gorm:"size:20" json:"grade_level"`
	CreditHours int            `json:"credit_hours"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Subject) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

func (Subject) TableName() string { return "subjects" }

type Room struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	SchoolID  string         `gorm:"size:36;not null;index" json:"school_id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Code      string         `gorm:"size:20;not null;index" json:"code"`
	Building  string         `gorm:"size:100" json:"building"`
	Capacity  int            `json:"capacity"`
	RoomType  string         `gorm:"size:30" json:"room_type"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (Room) TableName() string { return "rooms" }

type Class struct {
	ID           string         `gorm:"primaryKey;size:36" json:"id"`
	SchoolID     string         `gorm:"size:36;not null;index" json:"school_id"`
	Name         string         `gorm:"size:100;not null" json:"name"`
	GradeLevel   string         `gorm:"size:20" json:"grade_level"`
	AcademicYear string         `gorm:"size:20;not null" json:"academic_year"`
	TeacherID    *string        `gorm:"size:36;index" json:"teacher_id,omitempty"`
	RoomID       *string        `gorm:"size:36;index" json:"room_id,omitempty"`
	Capacity     int            `json:"capacity"`
	ScheduleDays pq.StringArray `gorm:"type:text[];column:schedule_days;default:'{}'" json:"schedule_days"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Class) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (Class) TableName() string { return "classes" }

type CreateSubjectInput struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code" binding:"required"`
	GradeLevel  string `json:"grade_level"`
	CreditHours int    `json:"credit_hours"`
}

type UpdateSubjectInput struct {
	Name        *string `json:"name"`
	Code        *string `json:"code"`
	GradeLevel  *string `json:"grade_level"`
	CreditHours *int    `json:"credit_hours"`
}

type SubjectFilters struct {
	GradeLevel string
	Search     string
}

type CreateRoomInput struct {
	Name     string `json:"name" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Building string `json:"building"`
	Capacity int    `json:"capacity"`
	RoomType string `json:"room_type"`
}

type UpdateRoomInput struct {
	Name     *string `json:"name"`
	Code     *string `json:"code"`
	Building *string `json:"building"`
	Capacity *int    `json:"capacity"`
	RoomType *string `json:"room_type"`
}

type RoomFilters struct {
	RoomType string
	Building string
}

type CreateClassInput struct {
	Name         string   `json:"name" binding:"required"`
	GradeLevel   string   `json:"grade_level"`
	AcademicYear string   `json:"academic_year" binding:"required"`
	TeacherID    *string  `json:"teacher_id"`
	RoomID       *string  `json:"room_id"`
	Capacity     int      `json:"capacity"`
	ScheduleDays []string `json:"schedule_days"`
}

type UpdateClassInput struct {
	Name         *string   `json:"name"`
	GradeLevel   *string   `json:"grade_level"`
	AcademicYear *string   `json:"academic_year"`
	TeacherID    *string   `json:"teacher_id"`
	RoomID       *string   `json:"room_id"`
	Capacity     *int      `json:"capacity"`
	ScheduleDays *[]string `json:"schedule_days"`
}

type ClassFilters struct {
	GradeLevel   string
	AcademicYear string
	TeacherID    string
}
