package attendance

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"campus-api/internal/listing"
)

type AttendanceService struct {
	DB *gorm.DB
}

func (s *AttendanceService) applyFilters(f ListFilters) *gorm.DB {
	q := s.DB.Model(&Record{})
	if f.StudentID != "" {
		q = q.Where("student_id = ?", f.StudentID)
	}
	if f.ClassID != "" {
		q = q.Where("class_id = ?", f.ClassID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.StartDate != "" {
		q = q.Where("date >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		q = q.Where("date <= ?", f.EndDate)
	}
	return q
}

func (s *AttendanceService) List(schoolID string, f ListFilters, p listing.Params) (listing.Result[Record], error) {
	q := s.applyFilters(f).Where("school_id = ?", schoolID)
	return listing.Find[Record](q, "date DESC, student_id ASC", p)
}

func (s *AttendanceService) Get(schoolID, id string) (*Record, error) {
	var rec Record
	if err := s.DB.Where("id = ? AND school_id = ?", id, schoolID).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// MarkRegister writes one day's register for a class. Marking the same
// student twice for the same class and date overwrites the earlier entry.
func (s *AttendanceService) MarkRegister(schoolID string, in MarkRegisterInput) ([]Record, error) {
	out := make([]Record, 0, len(in.Entries))

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, e := range in.Entries {
			var rec Record
			err := tx.Where("school_id = ? AND class_id = ? AND student_id = ? AND date = ?",
				schoolID, in.ClassID, e.StudentID, in.Date).First(&rec).Error
			switch {
			case err == nil:
				rec.Status = e.Status
				rec.Remarks = e.Remarks
				if err := tx.Save(&rec).Error; err != nil {
					return err
				}
			case err == gorm.ErrRecordNotFound:
				rec = Record{
					SchoolID:  schoolID,
					StudentID: e.StudentID,
					ClassID:   in.ClassID,
					Date:      in.Date,
					Status:    e.Status,
					Remarks:   e.Remarks,
				}
				if err := tx.Create(&rec).Error; err != nil {
					return err
				}
			default:
				return err
			}
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AttendanceService) Update(schoolID, id string, in UpdateRecordInput) (*Record, error) {
	updates := map[string]any{}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if in.Remarks != nil {
		updates["remarks"] = *in.Remarks
	}

	var rec Record
	if err := s.DB.Where("id = ? AND school_id = ?", id, schoolID).First(&rec).Error; err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.DB.Model(&rec).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &rec, nil
}

func (s *AttendanceService) Delete(schoolID, id string) error {
	res := s.DB.Where("id = ? AND school_id = ?", id, schoolID).Delete(&Record{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *AttendanceService) Summarize(schoolID string, f ListFilters) (*Summary, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	q := s.applyFilters(f).Where("school_id = ?", schoolID)
	if err := q.Select("status, COUNT(*) as count").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	var sum Summary
	for _, r := range rows {
		switch r.Status {
		case StatusPresent:
			sum.Present = r.Count
		case StatusAbsent:
			sum.Absent = r.Count
		case StatusLate:
			sum.Late = r.Count
		case StatusExcused:
			sum.Excused = r.Count
		}
		sum.Total += r.Count
	}
	return &sum, nil
}

// Export renders the filtered records as an .xlsx register.
func (s *AttendanceService) Export(schoolID string, f ListFilters) (string, string, []byte, error) {
	var records []Record
	q := s.applyFilters(f).Where("school_id = ?", schoolID)
	if err := q.Order("date ASC, student_id ASC").Find(&records).Error; err != nil {
		return "", "", nil, err
	}

	xf := excelize.NewFile()
	const sheet = "Attendance"
	xf.SetSheetName("Sheet1", sheet)

	headerStyle, _ := xf.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E2E8F0"}},
	})
	absentStyle, _ := xf.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FECACA"}},
	})

	_ = xf.SetSheetRow(sheet, "A1", &[]interface{}{"date", "student_id", "class_id", "status", "remarks"})
	_ = xf.SetCellStyle(sheet, "A1", "E1", headerStyle)

	for i, rec := range records {
		rowNum := i + 2
		cell := fmt.Sprintf("A%d", rowNum)
		_ = xf.SetSheetRow(sheet, cell, &[]interface{}{rec.Date, rec.StudentID, rec.ClassID, rec.Status, rec.Remarks})
		if rec.Status == StatusAbsent {
			_ = xf.SetCellStyle(sheet, fmt.Sprintf("D%d", rowNum), fmt.Sprintf("D%d", rowNum), absentStyle)
		}
	}

	b, err := xf.WriteToBuffer()
	if err != nil {
		return "", "", nil, err
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "attendance.xlsx", b.Bytes(), nil
}
