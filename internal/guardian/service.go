package guardian

import (
	"errors"

	"gorm.io/gorm"

	"campus-api/internal/listing"
)

type GuardianService struct {
	DB *gorm.DB
}

func (s *GuardianService) List(schoolID string, f ListFilters, p listing.Params) (listing.Result[Guardian], error) {
	q := s.DB.Model(&Guardian{}).Where("guardians.school_id = ?", schoolID)
	if f.StudentID != "" {
		q = q.Joins("JOIN guardian_students ON guardian_students.guardian_id = guardians.id").
			Where("guardian_students.student_id = ?", f.StudentID)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("guardians.firstname LIKE ? OR guardians.lastname LIKE ? OR guardians.phone LIKE ?", like, like, like)
	}
	return listing.Find[Guardian](q.Preload("Students"), "guardians.lastname ASC, guardians.firstname ASC", p)
}

func (s *GuardianService) Get(schoolID, id string) (*Guardian, error) {
	var g Guardian
	if err := s.DB.Preload("Students").
		Where("id = ? AND school_id = ?", id, schoolID).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *GuardianService) Create(schoolID string, in CreateGuardianInput) (*Guardian, error) {
	g := Guardian{
		SchoolID:  schoolID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
	}
	if err := s.DB.Create(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *GuardianService) Update(schoolID, id string, in UpdateGuardianInput) (*Guardian, error) {
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
	if in.Address != nil {
		updates["address"] = *in.Address
	}

	var g Guardian
	if err := s.DB.Where("id = ? AND school_id = ?", id, schoolID).First(&g).Error; err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.DB.Model(&g).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &g, nil
}

func (s *GuardianService) Delete(schoolID, id string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND school_id = ?", id, schoolID).Delete(&Guardian{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("guardian_id = ?", id).Delete(&GuardianStudent{}).Error
	})
}

// LinkStudent attaches a student to a guardian. Linking twice is an error.
func (s *GuardianService) LinkStudent(schoolID, guardianID string, in LinkStudentInput) (*GuardianStudent, error) {
	var g Guardian
	if err := s.DB.Where("id = ? AND school_id = ?", guardianID, schoolID).First(&g).Error; err != nil {
		return nil, err
	}

	var existing int64
	s.DB.Model(&GuardianStudent{}).
		Where("guardian_id = ? AND student_id = ?", guardianID, in.StudentID).
		Count(&existing)
	if existing > 0 {
		return nil, errors.New("this student is already linked to the guardian")
	}

	link := GuardianStudent{
		GuardianID:   guardianID,
		StudentID:    in.StudentID,
		Relationship: in.Relationship,
	}
	if err := s.DB.Create(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *GuardianService) UnlinkStudent(schoolID, guardianID, studentID string) error {
	var g Guardian
	if err := s.DB.Where("id = ? AND school_id = ?", guardianID, schoolID).First(&g).Error; err != nil {
		return err
	}

	res := s.DB.Where("guardian_id = ? AND student_id = ?", guardianID, studentID).
		Delete(&GuardianStudent{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
