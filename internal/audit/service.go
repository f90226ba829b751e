package audit

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/gorm"

	"campus-api/internal/listing"
	"campus-api/internal/util"
)

type Service struct {
	DB *gorm.DB
}

// Log stores one entry, serializing metadata to JSON when provided. Callers
// treat a failed write as non-fatal and only log it.
func (s *Service) Log(entry Entry, metadata any) error {
	var metaStr *string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			str := string(b)
			metaStr = &str
		}
	}

	row := Entry{
		Level:     entry.Level,
		Service:   entry.Service,
		Action:    entry.Action,
		Message:   entry.Message,
		UserID:    entry.UserID,
		SchoolID:  entry.SchoolID,
		Metadata:  metaStr,
		CreatedAt: time.Now(),
	}

	return s.DB.Create(&row).Error
}

// List returns one filtered page plus aggregates computed from the same base
// query. Without an explicit date range only the last 30 days are considered.
func (s *Service) List(input FilterInput, p listing.Params) (listing.Result[Entry], Aggregates, error) {
	base := s.DB.Model(&Entry{})

	if input.StartDate == nil && input.EndDate == nil {
		base = base.Where("created_at >= ?", time.Now().AddDate(0, 0, -30))
	}

	if input.SchoolID != nil && *input.SchoolID != "" {
		base = base.Where("school_id = ?", *input.SchoolID)
	}
	if input.UserID != nil && *input.UserID != "" {
		base = base.Where("user_id = ?", *input.UserID)
	}
	if input.Level != nil && strings.TrimSpace(*input.Level) != "" {
		base = base.Where("level = ?", strings.TrimSpace(*input.Level))
	}
	if input.Service != nil && strings.TrimSpace(*input.Service) != "" {
		base = base.Where("service = ?", strings.TrimSpace(*input.Service))
	}
	if input.Action != nil && strings.TrimSpace(*input.Action) != "" {
		base = base.Where("action = ?", strings.TrimSpace(*input.Action))
	}

	start, hasStart, endExclusive, hasEnd, err := util.ParseDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return listing.Result[Entry]{}, Aggregates{}, err
	}
	if hasStart {
		base = base.Where("created_at >= ?", start)
	}
	if hasEnd {
		base = base.Where("created_at < ?", endExclusive)
	}

	if input.Search != nil && strings.TrimSpace(*input.Search) != "" {
		like := "%" + strings.TrimSpace(*input.Search) + "%"
		base = base.Where(
			"level LIKE ? OR service LIKE ? OR action LIKE ? OR message LIKE ?",
			like, like, like, like,
		)
	}

	res, err := listing.Find[Entry](base, "created_at DESC", p)
	if err != nil {
		return listing.Result[Entry]{}, Aggregates{}, err
	}

	aggs, err := s.aggregatesFromBase(base)
	if err != nil {
		return listing.Result[Entry]{}, Aggregates{}, err
	}

	return res, aggs, nil
}

func (s *Service) aggregatesFromBase(base *gorm.DB) (Aggregates, error) {
	const limit = 12
	aggs := Aggregates{}

	group := func(column string) ([]AggItem, error) {
		type row struct {
			Label string
			Count int64
		}
		var out []row
		if err := base.Session(&gorm.Session{}).
			Select(column + " AS label, COUNT(*) AS count").
			Group(column).
			Order("count DESC").
			Limit(limit).
			Scan(&out).Error; err != nil {
			return nil, err
		}
		items := make([]AggItem, 0, len(out))
		for _, r := range out {
			items = append(items, AggItem{Label: r.Label, Count: r.Count})
		}
		return items, nil
	}

	var err error
	if aggs.ByService, err = group("service"); err != nil {
		return Aggregates{}, err
	}
	if aggs.ByAction, err = group("action"); err != nil {
		return Aggregates{}, err
	}
	if aggs.ByLevel, err = group("level"); err != nil {
		return Aggregates{}, err
	}

	return aggs, nil
}
