package academics

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"campus-api/internal/listing"
)

type SubjectService struct {
	DB *gorm.DB
}

func (s *SubjectService) List(schoolID string, f SubjectFilters, p listing.Params) (listing.Result[Subject], error) {
	q := s.DB.Model(&Subject{}).Where("school_id = ?", schoolID)
	if f.GradeLevel != "" {
		q = q.Where("grade_level = ?", f.GradeLevel)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR code LIKE ?", like, like)
	}
	return listing.Find[Subject](q, "name ASC", p)
}

func (s *SubjectService) Get(schoolID, id string) (*Subject, error) {
	var sub Subject
	if err := s.DB.Where("id = ? AND school_id = ?", id, schoolID).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *SubjectService) Create(schoolID string, in CreateSubjectInput) (*Subject, error) {
	var existing int64
	s.DB.Model(&Subject{}).Where("school_id = ? AND code = ?", schoolID, in.Code).Count(&existing)
	if existing > 0 {
		return nil, errors.New("a subject with this code already exists")
	}

	sub := Subject{
		SchoolID:    schoolID,
		Name:        in.Name,
		Code:        in.Code,
		GradeLevel:  in.GradeLevel,
		CreditHours: in.CreditHours,
	}
	if err := s.DB.Create(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *SubjectService) Update(schoolID, id string, in UpdateSubjectInput) (*Subject, error) {
	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Code != nil {
		updates["code"] = *in.Code
	}
	if in.GradeLevel != nil {
		updates["grade_level"] = *in.GradeLevel
	}
	if in.CreditHours != nil {
		updates["credit_hours"] = *in.CreditHours
	}

	var sub Subject
	if err := s.DB.Where("id = ? AND school_id = ?", id, schoolID).First(&sub).Error; err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.DB.Model(&sub).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &sub, nil
}

func (s *SubjectService) Delete(schoolID, id string) error {
	res := s.DB.Where("id = ? AND school_id = ?", id, schoolID).Delete(&Subject{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type RoomService struct {
	DB *gorm.DB
}

func (s *RoomService) List(schoolID string, f RoomFilters, p listing.Params) (listing.Result[Room], error) {
	q := s.DB.Model(&Room{}).Where("school_id = ?", schoolID)
	if f.RoomType != "" {
		q = q.Where("room_type = ?", f.RoomType)
	}
	if f.Building != "" {
		q = q.Where("building = ?", f.Building)
	}
	return listing.Find[Room](q, "name ASC", p)
}

func (s *RoomService) Get(schoolID, id string) (*Room, error) {
	var r Room
	if err := s.DB.Where("id = ? AND school_id = ?", id, schoolID).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *RoomService) Create(schoolID string, in CreateRoomInput) (*Room, error) {
	var existing int64
	s.DB.Model(&Room{}).Where("school_id = ? AND code = ?", schoolID, in.Code).Count(&existing)
	if existing > 0 {
		return nil, errors.New("a room with this code already exists")
	}

	r := Room{
		SchoolID: schoolID,
		Name:     in.Name,
		Code:     in.Code,
		Building: in.Building,
		Capacity: in.Capacity,
		RoomType: in.RoomType,
	}
	if err := s.DB.Create(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *RoomService) Update(schoolID, id string, in UpdateRoomInput) (*Room, error) {
	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Code != nil {
		updates["code"] = *in.Code
	}
	if in.Building != nil {
		updates["building"] = *in.Building
	}
	if in.Capacity != nil {
		updates["capacity"] = *in.Capacity
	}
	if in.RoomType != nil {
		updates["room_type"] = *in.RoomType
	}

	var r Room
	if err := s.DB.Where("id = ? AND school_id = ?", id, schoolID).First(&r).Error; err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.DB.Model(&r).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &r, nil
}

func (s *RoomService) Delete(schoolID, id string) error {
	res := s.DB.Where("id = ? AND school_id = ?", id, schoolID).Delete(&Room{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type ClassService struct {
	DB *gorm.DB
}

func (s *ClassService) List(schoolID string, f ClassFilters, p listing.Params) (listing.Result[Class], error) {
	q := s.DB.Model(&Class{}).Where("school_id = ?", schoolID)
	if f.GradeLevel != "" {
		q = q.Where("grade_level = ?", f.GradeLevel)
	}
	if f.AcademicYear != "" {
		q = q.Where("academic_year = ?", f.AcademicYear)
	}
	if f.TeacherID != "" {
		q = q.Where("teacher_id = ?", f.TeacherID)
	}
	return listing.Find[Class](q, "name ASC", p)
}

func (s *ClassService) Get(schoolID, id string) (*Class, error) {
	var cl Class
	if err := s.DB.Where("id = ? AND school_id = ?", id, schoolID).First(&cl).Error; err != nil {
		return nil, err
	}
	return &cl, nil
}

func (s *ClassService) Create(schoolID string, in CreateClassInput) (*Class, error) {
	cl := Class{
		SchoolID:     schoolID,
		Name:         in.Name,
		GradeLevel:   in.GradeLevel,
		AcademicYear: in.AcademicYear,
		TeacherID:    in.TeacherID,
		RoomID:       in.RoomID,
		Capacity:     in.Capacity,
		ScheduleDays: pq.StringArray(in.ScheduleDays),
	}
	if err := s.DB.Create(&cl).Error; err != nil {
		return nil, err
	}
	return &cl, nil
}

func (s *ClassService) Update(schoolID, id string, in UpdateClassInput) (*Class, error) {
	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.GradeLevel != nil {
		updates["grade_level"] = *in.GradeLevel
	}
	if in.AcademicYear != nil {
		updates["academic_year"] = *in.AcademicYear
	}
	if in.TeacherID != nil {
		updates["teacher_id"] = *in.TeacherID
	}
	if in.RoomID != nil {
		updates["room_id"] = *in.RoomID
	}
	if in.Capacity != nil {
		updates["capacity"] = *in.Capacity
	}
	if in.ScheduleDays != nil {
		updates["schedule_days"] = pq.StringArray(*in.ScheduleDays)
	}

	var cl Class
	if err := s.DB.Where("id = ? AND school_id = ?", id, schoolID).First(&cl).Error; err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.DB.Model(&cl).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &cl, nil
}

func (s *ClassService) Delete(schoolID, id string) error {
	res := s.DB.Where("id = ? AND school_id = ?", id, schoolID).Delete(&Class{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
