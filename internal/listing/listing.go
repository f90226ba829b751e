package listing

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is the page/limit pair every list endpoint accepts.
type Params struct {
	Page  int
	Limit int
}

// Result is the envelope every list endpoint returns.
type Result[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

func (p *Params) Normalize() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 || p.Limit > MaxLimit {
		p.Limit = DefaultLimit
	}
}

// FromQuery reads page/limit query params; anything unparsable falls back to
// the defaults via Normalize.
func FromQuery(c *gin.Context) Params {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	p := Params{Page: page, Limit: limit}
	p.Normalize()
	return p
}

func Pages(total int64, limit int) int {
	pages := int(math.Ceil(float64(total) / float64(limit)))
	if pages == 0 {
		pages = 1
	}
	return pages
}

// Find counts the filtered base query, then scans one page ordered by `order`.
// The base must already carry the model and every filter; callers never apply
// Limit/Offset themselves.
func Find[T any](base *gorm.DB, order string, p Params) (Result[T], error) {
	p.Normalize()

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Result[T]{}, err
	}

	rows := []T{}
	if err := base.
		Session(&gorm.Session{}).
		Order(order).
		Limit(p.Limit).
		Offset((p.Page - 1) * p.Limit).
		Find(&rows).Error; err != nil {
		return Result[T]{}, err
	}

	return Result[T]{
		Data:  rows,
		Total: total,
		Page:  p.Page,
		Pages: Pages(total, p.Limit),
	}, nil
}
