package attendance

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"campus-api/internal/listing"
	"campus-api/internal/middlewares"
)

type AttendanceServiceAPI interface {
	List(schoolID string, f ListFilters, p listing.Params) (listing.Result[Record], error)
	Get(schoolID, id string) (*Record, error)
	MarkRegister(schoolID string, in MarkRegisterInput) ([]Record, error)
	Update(schoolID, id string, in UpdateRecordInput) (*Record, error)
	Delete(schoolID, id string) error
	Summarize(schoolID string, f ListFilters) (*Summary, error)
	Export(schoolID string, f ListFilters) (string, string, []byte, error)
}

var _ AttendanceServiceAPI = (*AttendanceService)(nil)

type AttendanceController struct {
	AttendanceService AttendanceServiceAPI
}

func filtersFromQuery(c *gin.Context) ListFilters {
	return ListFilters{
		StudentID: c.Query("student_id"),
		ClassID:   c.Query("class_id"),
		Status:    c.Query("status"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
}

func (ac *AttendanceController) List(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	res, err := ac.AttendanceService.List(schoolID, filtersFromQuery(c), listing.FromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ac *AttendanceController) Get(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	rec, err := ac.AttendanceService.Get(schoolID, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "attendance record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (ac *AttendanceController) MarkRegister(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	var in MarkRegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	records, err := ac.AttendanceService.MarkRegister(schoolID, in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": records})
}

func (ac *AttendanceController) Update(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	var in UpdateRecordInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	rec, err := ac.AttendanceService.Update(schoolID, c.Param("id"), in)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "attendance record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (ac *AttendanceController) Delete(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	if err := ac.AttendanceService.Delete(schoolID, c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "attendance record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (ac *AttendanceController) Summary(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	sum, err := ac.AttendanceService.Summarize(schoolID, filtersFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (ac *AttendanceController) Export(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	contentType, filename, payload, err := ac.AttendanceService.Export(schoolID, filtersFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, payload)
}
