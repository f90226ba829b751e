package staff

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"campus-api/internal/listing"
)

type StaffService struct {
	DB *gorm.DB
}

func (s *StaffService) List(schoolID string, f ListFilters, p listing.Params) (listing.Result[Teacher], error) {
	q := s.DB.Model(&Teacher{}).Where("school_id = ?", schoolID)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Specialty != "" {
		q = q.Where("specialty = ?", f.Specialty)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("firstname LIKE ? OR lastname LIKE ? OR staff_no LIKE ?", like, like, like)
	}
	return listing.Find[Teacher](q, "lastname ASC, firstname ASC", p)
}

func (s *StaffService) Get(schoolID, id string) (*Teacher, error) {
	var tc Teacher
	if err := s.DB.Where("id = ? AND school_id = ?", id, schoolID).First(&tc).Error; err != nil {
		return nil, err
	}
	return &tc, nil
}

func (s *StaffService) Create(schoolID string, in CreateTeacherInput) (*Teacher, error) {
	var existing int64
	s.DB.Model(&Teacher{}).
		Where("school_id = ? AND staff_no = ?", schoolID, in.StaffNo).
		Count(&existing)
	if existing > 0 {
		return nil, errors.New("a teacher with this staff number already exists")
	}

	tc := Teacher{
		SchoolID:  schoolID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		StaffNo:   in.StaffNo,
		Specialty: in.Specialty,
		HiredOn:   in.HiredOn,
		Status:    StatusActive,
	}
	if err := s.DB.Create(&tc).Error; err != nil {
		return nil, err
	}
	return &tc, nil
}

func (s *StaffService) Update(schoolID, id string, in UpdateTeacherInput) (*Teacher, error) {
	updates := map[string]any{}
	if in.FirstName != nil {
		updates["firstname"] = *in.FirstName
	}
	if in.LastName != nil {
		updates["lastname"] = *in.LastName
	}
	if in.Email != nil {
		updates["email"] = *in.Email
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.StaffNo != nil {
		updates["staff_no"] = *in.StaffNo
	}
	if in.Specialty != nil {
		updates["specialty"] = *in.Specialty
	}
	if in.HiredOn != nil {
		updates["hired_on"] = *in.HiredOn
	}
	if in.Status != nil {
		updates["status"] = strings.TrimSpace(*in.Status)
	}

	var tc Teacher
	if err := s.DB.Where("id = ? AND school_id = ?", id, schoolID).First(&tc).Error; err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.DB.Model(&tc).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &tc, nil
}

func (s *StaffService) Delete(schoolID, id string) error {
	res := s.DB.Where("id = ? AND school_id = ?", id, schoolID).Delete(&Teacher{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
