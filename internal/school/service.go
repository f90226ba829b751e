package school

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"campus-api/internal/listing"
)

type SchoolService struct {
	DB *gorm.DB
}

func (s *SchoolService) List(f ListFilters, p listing.Params) (listing.Result[School], error) {
	q := s.DB.Model(&School{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR code LIKE ? OR city LIKE ?", like, like, like)
	}
	return listing.Find[School](q, "name ASC", p)
}

func (s *SchoolService) Get(id string) (*School, error) {
	var school School
	if err := s.DB.Where("id = ?", id).First(&school).Error; err != nil {
		return nil, err
	}
	return &school, nil
}

func (s *SchoolService) Create(in CreateSchoolInput) (*School, error) {
	school := School{
		Name:    in.Name,
		Code:    in.Code,
		Address: in.Address,
		City:    in.City,
		Phone:   in.Phone,
		Email:   in.Email,
		Status:  StatusActive,
	}
	if err := s.DB.Create(&school).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") ||
			strings.Contains(err.Error(), "unique constraint") ||
			strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil, errors.New("a school with this code already exists")
		}
		return nil, err
	}
	return &school, nil
}

func (s *SchoolService) Update(id string, in UpdateSchoolInput) (*School, error) {
	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Code != nil {
		updates["code"] = *in.Code
	}
	if in.Address != nil {
		updates["address"] = *in.Address
	}
	if in.City != nil {
		updates["city"] = *in.City
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.Email != nil {
		updates["email"] = *in.Email
	}
	if in.Status != nil {
		updates["status"] = *in.Status
	}

	var school School
	if err := s.DB.Where("id = ?", id).First(&school).Error; err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.DB.Model(&school).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &school, nil
}

func (s *SchoolService) Delete(id string) error {
	res := s.DB.Where("id = ?", id).Delete(&School{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
