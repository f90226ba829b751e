package assessment

import (
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"campus-api/internal/listing"
)

// GradeLetter maps a percentage score to the letter reported on transcripts.
func GradeLetter(score, max float64) string {
	if max <= 0 {
		return ""
	}
	pct := score / max * 100
	switch {
	case pct >= 80:
		return "A"
	case pct >= 70:
		return "B"
	case pct >= 60:
		return "C"
	case pct >= 50:
		return "D"
	case pct >= 40:
		return "E"
	default:
		return "F"
	}
}

type AssessmentService struct {
	DB *gorm.DB
}

func (s *AssessmentService) List(schoolID string, f ListFilters, p listing.Params) (listing.Result[Assessment], error) {
	q := s.DB.Model(&Assessment{}).Where("school_id = ?", schoolID)
	if f.StudentID != "" {
		q = q.Where("student_id = ?", f.StudentID)
	}
	if f.SubjectID != "" {
		q = q.Where("subject_id = ?", f.SubjectID)
	}
	if f.ClassID != "" {
		q = q.Where("class_id = ?", f.ClassID)
	}
	if f.Term != "" {
		q = q.Where("term = ?", f.Term)
	}
	return listing.Find[Assessment](q, "created_at DESC", p)
}

func (s *AssessmentService) Get(schoolID, id string) (*Assessment, error) {
	var a Assessment
	if err := s.DB.Where("id = ? AND school_id = ?", id, schoolID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AssessmentService) Create(schoolID string, in CreateAssessmentInput) (*Assessment, error) {
	if in.Score > in.MaxScore {
		return nil, errors.New("score cannot exceed max score")
	}

	a := Assessment{
		SchoolID:    schoolID,
		StudentID:   in.StudentID,
		SubjectID:   in.SubjectID,
		ClassID:     in.ClassID,
		Term:        in.Term,
		Title:       in.Title,
		MaxScore:    in.MaxScore,
		Score:       in.Score,
		GradeLetter: GradeLetter(in.Score, in.MaxScore),
	}
	if in.Breakdown != nil {
		raw, err := json.Marshal(in.Breakdown)
		if err != nil {
			return nil, err
		}
		a.Breakdown = datatypes.JSON(raw)
	}

	if err := s.DB.Create(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AssessmentService) Update(schoolID, id string, in UpdateAssessmentInput) (*Assessment, error) {
	var a Assessment
	if err := s.DB.Where("id = ? AND school_id = ?", id, schoolID).First(&a).Error; err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Term != nil {
		updates["term"] = *in.Term
	}
	if in.Title != nil {
		updates["title"] = *in.Title
	}

	score, max := a.Score, a.MaxScore
	if in.Score != nil {
		score = *in.Score
		updates["score"] = score
	}
	if in.MaxScore != nil {
		max = *in.MaxScore
		updates["max_score"] = max
	}
	if in.Score != nil || in.MaxScore != nil {
		if score > max {
			return nil, errors.New("score cannot exceed max score")
		}
		updates["grade_letter"] = GradeLetter(score, max)
	}

	if in.Breakdown != nil {
		raw, err := json.Marshal(*in.Breakdown)
		if err != nil {
			return nil, err
		}
		updates["breakdown"] = datatypes.JSON(raw)
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&a).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &a, nil
}

func (s *AssessmentService) Delete(schoolID, id string) error {
	res := s.DB.Where("id = ? AND school_id = ?", id, schoolID).Delete(&Assessment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
