package bursary

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"campus-api/internal/listing"
	"campus-api/internal/util"
)

// Swapped out in tests so no real bucket is touched.
var (
	uploadDocument  = util.UploadDocumentToGCS
	deleteDocuments = util.DeleteObjectsWithPrefix
)

// validTransitions holds the allowed status moves for an award.
var validTransitions = map[string][]string{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusDisbursed, StatusRejected},
}

func canTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type BursaryService struct {
	DB     *gorm.DB
	Bucket string
}

func (s *BursaryService) List(schoolID string, f ListFilters, p listing.Params) (listing.Result[Bursary], error) {
	q := s.DB.Model(&Bursary{}).Where("school_id = ?", schoolID)
	if f.StudentID != "" {
		q = q.Where("student_id = ?", f.StudentID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Sponsor != "" {
		q = q.Where("sponsor LIKE ?", "%"+f.Sponsor+"%")
	}
	return listing.Find[Bursary](q, "created_at DESC", p)
}

func (s *BursaryService) Get(schoolID, id string) (*Bursary, error) {
	var b Bursary
	if err := s.DB.Where("id = ? AND school_id = ?", id, schoolID).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BursaryService) Create(schoolID string, in CreateBursaryInput) (*Bursary, error) {
	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}

	b := Bursary{
		SchoolID:  schoolID,
		StudentID: in.StudentID,
		Name:      in.Name,
		Sponsor:   in.Sponsor,
		Amount:    in.Amount,
		Currency:  currency,
		Status:    StatusPending,
		AwardDate: in.AwardDate,
	}
	if err := s.DB.Create(&b).Error; err != nil {
		return nil, err
	}

	if in.DocumentBase64 != "" {
		objectName := util.DocumentObjectName(schoolID, b.ID, in.DocumentName)
		url, _, err := uploadDocument(in.DocumentBase64, s.Bucket, objectName, in.DocumentMime)
		if err != nil {
			return nil, fmt.Errorf("upload supporting document: %w", err)
		}
		if err := s.DB.Model(&b).Update("document_url", url).Error; err != nil {
			return nil, err
		}
		b.DocumentURL = url
	}
	return &b, nil
}

func (s *BursaryService) Update(schoolID, id string, in UpdateBursaryInput) (*Bursary, error) {
	var b Bursary
	if err := s.DB.Where("id = ? AND school_id = ?", id, schoolID).First(&b).Error; err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Sponsor != nil {
		updates["sponsor"] = *in.Sponsor
	}
	if in.Amount != nil {
		updates["amount"] = *in.Amount
	}
	if in.Currency != nil {
		updates["currency"] = *in.Currency
	}
	if in.AwardDate != nil {
		updates["award_date"] = *in.AwardDate
	}
	if in.Status != nil {
		if !canTransition(b.Status, *in.Status) {
			return nil, fmt.Errorf("cannot move a %s bursary to %s", b.Status, *in.Status)
		}
		updates["status"] = *in.Status
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&b).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &b, nil
}

// AttachDocument uploads or replaces the supporting document for an award.
func (s *BursaryService) AttachDocument(schoolID, id, filename, base64Data, mime string) (*Bursary, error) {
	var b Bursary
	if err := s.DB.Where("id = ? AND school_id = ?", id, schoolID).First(&b).Error; err != nil {
		return nil, err
	}

	objectName := util.DocumentObjectName(schoolID, b.ID, filename)
	url, _, err := uploadDocument(base64Data, s.Bucket, objectName, mime)
	if err != nil {
		return nil, fmt.Errorf("upload supporting document: %w", err)
	}
	if err := s.DB.Model(&b).Update("document_url", url).Error; err != nil {
		return nil, err
	}
	b.DocumentURL = url
	return &b, nil
}

func (s *BursaryService) Delete(schoolID, id string) error {
	res := s.DB.Where("id = ? AND school_id = ?", id, schoolID).Delete(&Bursary{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	prefix := fmt.Sprintf("bursaries/%s/%s/", util.SanitizePart(schoolID), util.SanitizePart(id))
	if _, err := deleteDocuments(s.Bucket, prefix); err != nil {
		log.Printf("failed to delete bursary documents under %s: %v", prefix, err)
	}
	return nil
}
