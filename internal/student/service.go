package student

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"campus-api/internal/listing"
)

type StudentService struct {
	DB *gorm.DB
}

func (s *StudentService) List(schoolID string, f ListFilters, p listing.Params) (listing.Result[Student], error) {
	q := s.DB.Model(&Student{}).Where("school_id = ?", schoolID)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.GradeLevel != "" {
		q = q.Where("grade_level = ?", f.GradeLevel)
	}
	if f.ClassID != "" {
		q = q.Where("class_id = ?", f.ClassID)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("firstname LIKE ? OR lastname LIKE ? OR admission_no LIKE ?", like, like, like)
	}
	return listing.Find[Student](q, "lastname ASC, firstname ASC", p)
}

func (s *StudentService) Get(schoolID, id string) (*Student, error) {
	var st Student
	if err := s.DB.Where("id = ? AND school_id = ?", id, schoolID).First(&st).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *StudentService) Create(schoolID string, in CreateStudentInput) (*Student, error) {
	var existing int64
	s.DB.Model(&Student{}).
		Where("school_id = ? AND admission_no = ?", schoolID, in.AdmissionNo).
		Count(&existing)
	if existing > 0 {
		return nil, errors.New("a student with this admission number already exists")
	}

	st := Student{
		SchoolID:    schoolID,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		AdmissionNo: in.AdmissionNo,
		GradeLevel:  in.GradeLevel,
		DateOfBirth: in.DateOfBirth,
		Gender:      in.Gender,
		ClassID:     in.ClassID,
		Status:      StatusActive,
	}
	if err := s.DB.Create(&st).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *StudentService) Update(schoolID, id string, in UpdateStudentInput) (*Student, error) {
	updates := map[string]any{}
	if in.FirstName != nil {
		updates["firstname"] = *in.FirstName
	}
	if in.LastName != nil {
		updates["lastname"] = *in.LastName
	}
	if in.AdmissionNo != nil {
		updates["admission_no"] = *in.AdmissionNo
	}
	if in.GradeLevel != nil {
		updates["grade_level"] = *in.GradeLevel
	}
	if in.DateOfBirth != nil {
		updates["date_of_birth"] = *in.DateOfBirth
	}
	if in.Gender != nil {
		updates["gender"] = *in.Gender
	}
	if in.ClassID != nil {
		updates["class_id"] = *in.ClassID
	}
	if in.Status != nil {
		updates["status"] = strings.TrimSpace(*in.Status)
	}

	var st Student
	if err := s.DB.Where("id = ? AND school_id = ?", id, schoolID).First(&st).Error; err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.DB.Model(&st).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &st, nil
}

func (s *StudentService) Delete(schoolID, id string) error {
	res := s.DB.Where("id = ? AND school_id = ?", id, schoolID).Delete(&Student{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
