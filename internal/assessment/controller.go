package assessment

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"campus-api/internal/listing"
	"campus-api/internal/middlewares"
)

type AssessmentServiceAPI interface {
	List(schoolID string, f ListFilters, p listing.Params) (listing.Result[Assessment], error)
	Get(schoolID, id string) (*Assessment, error)
	Create(schoolID string, in CreateAssessmentInput) (*Assessment, error)
	Update(schoolID, id string, in UpdateAssessmentInput) (*Assessment, error)
	Delete(schoolID, id string) error
}

var _ AssessmentServiceAPI = (*AssessmentService)(nil)

type AssessmentController struct {
	AssessmentService AssessmentServiceAPI
}

func (ac *AssessmentController) List(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	filters := ListFilters{
		StudentID: c.Query("student_id"),
		SubjectID: c.Query("subject_id"),
		ClassID:   c.Query("class_id"),
		Term:      c.Query("term"),
	}
	res, err := ac.AssessmentService.List(schoolID, filters, listing.FromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ac *AssessmentController) Get(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	a, err := ac.AssessmentService.Get(schoolID, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "assessment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, a)
}

func (ac *AssessmentController) Create(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	var in CreateAssessmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	a, err := ac.AssessmentService.Create(schoolID, in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (ac *AssessmentController) Update(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	var in UpdateAssessmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	a, err := ac.AssessmentService.Update(schoolID, c.Param("id"), in)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "assessment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, a)
}

func (ac *AssessmentController) Delete(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	if err := ac.AssessmentService.Delete(schoolID, c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "assessment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
