package school

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"campus-api/internal/listing"
)

type SchoolServiceAPI interface {
	List(f ListFilters, p listing.Params) (listing.Result[School], error)
	Get(id string) (*School, error)
	Create(in CreateSchoolInput) (*School, error)
	Update(id string, in UpdateSchoolInput) (*School, error)
	Delete(id string) error
}

type SchoolController struct {
	SchoolService SchoolServiceAPI
}

func (sc *SchoolController) List(c *gin.Context) {
	filters := ListFilters{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}

	res, err := sc.SchoolService.List(filters, listing.FromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (sc *SchoolController) Get(c *gin.Context) {
	school, err := sc.SchoolService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "school not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, school)
}

func (sc *SchoolController) Create(c *gin.Context) {
	var in CreateSchoolInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	school, err := sc.SchoolService.Create(in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, school)
}

func (sc *SchoolController) Update(c *gin.Context) {
	var in UpdateSchoolInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	school, err := sc.SchoolService.Update(c.Param("id"), in)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "school not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, school)
}

func (sc *SchoolController) Delete(c *gin.Context) {
	if err := sc.SchoolService.Delete(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "school not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
