package guardian

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"campus-api/internal/listing"
	"campus-api/internal/middlewares"
)

type GuardianServiceAPI interface {
	List(schoolID string, f ListFilters, p listing.Params) (listing.Result[Guardian], error)
	Get(schoolID, id string) (*Guardian, error)
	Create(schoolID string, in CreateGuardianInput) (*Guardian, error)
	Update(schoolID, id string, in UpdateGuardianInput) (*Guardian, error)
	Delete(schoolID, id string) error
	LinkStudent(schoolID, guardianID string, in LinkStudentInput) (*GuardianStudent, error)
	UnlinkStudent(schoolID, guardianID, studentID string) error
}

var _ GuardianServiceAPI = (*GuardianService)(nil)

type GuardianController struct {
	GuardianService GuardianServiceAPI
}

func (gc *GuardianController) List(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	filters := ListFilters{
		StudentID: c.Query("student_id"),
		Search:    c.Query("search"),
	}
	res, err := gc.GuardianService.List(schoolID, filters, listing.FromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (gc *GuardianController) Get(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	g, err := gc.GuardianService.Get(schoolID, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "guardian not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, g)
}

func (gc *GuardianController) Create(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	var in CreateGuardianInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	g, err := gc.GuardianService.Create(schoolID, in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, g)
}

func (gc *GuardianController) Update(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	var in UpdateGuardianInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	g, err := gc.GuardianService.Update(schoolID, c.Param("id"), in)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "guardian not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, g)
}

func (gc *GuardianController) Delete(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	if err := gc.GuardianService.Delete(schoolID, c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "guardian not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (gc *GuardianController) LinkStudent(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	var in LinkStudentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	link, err := gc.GuardianService.LinkStudent(schoolID, c.Param("id"), in)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "guardian not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, link)
}

func (gc *GuardianController) UnlinkStudent(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	if err := gc.GuardianService.UnlinkStudent(schoolID, c.Param("id"), c.Param("studentId")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "link not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
