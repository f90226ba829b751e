package student

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"campus-api/internal/audit"
	"campus-api/internal/listing"
	"campus-api/internal/middlewares"
)

type StudentServiceAPI interface {
	List(schoolID string, f ListFilters, p listing.Params) (listing.Result[Student], error)
	Get(schoolID, id string) (*Student, error)
	Create(schoolID string, in CreateStudentInput) (*Student, error)
	Update(schoolID, id string, in UpdateStudentInput) (*Student, error)
	Delete(schoolID, id string) error
}

type LogServiceAPI interface {
	Log(entry audit.Entry, payload any) error
}

var _ StudentServiceAPI = (*StudentService)(nil)
var _ LogServiceAPI = (*audit.Service)(nil)

type StudentController struct {
	StudentService StudentServiceAPI
	LS             LogServiceAPI
}

func (sc *StudentController) List(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	filters := ListFilters{
		Status:     c.Query("status"),
		GradeLevel: c.Query("grade_level"),
		ClassID:    c.Query("class_id"),
		Search:     c.Query("search"),
	}
	res, err := sc.StudentService.List(schoolID, filters, listing.FromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (sc *StudentController) Get(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	st, err := sc.StudentService.Get(schoolID, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}

func (sc *StudentController) Create(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	var in CreateStudentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	st, err := sc.StudentService.Create(schoolID, in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	userID, _ := middlewares.UserID(c)
	entry := audit.Entry{
		Level:    "INFO",
		Service:  "student",
		Action:   "CREATE",
		Message:  "Student enrolled with admission number " + st.AdmissionNo,
		UserID:   &userID,
		SchoolID: &schoolID,
	}
	if err := sc.LS.Log(entry, nil); err != nil {
		log.Printf("failed to insert audit log: %v", err)
	}

	c.JSON(http.StatusCreated, st)
}

func (sc *StudentController) Update(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	var in UpdateStudentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	st, err := sc.StudentService.Update(schoolID, c.Param("id"), in)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}

func (sc *StudentController) Delete(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	id := c.Param("id")
	if err := sc.StudentService.Delete(schoolID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	userID, _ := middlewares.UserID(c)
	entry := audit.Entry{
		Level:    "WARNING",
		Service:  "student",
		Action:   "DELETE",
		Message:  "Student record " + id + " removed",
		UserID:   &userID,
		SchoolID: &schoolID,
	}
	if err := sc.LS.Log(entry, nil); err != nil {
		log.Printf("failed to insert audit log: %v", err)
	}

	c.Status(http.StatusNoContent)
}
