package bursary

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"campus-api/internal/listing"
	"campus-api/internal/middlewares"
)

type BursaryServiceAPI interface {
	List(schoolID string, f ListFilters, p listing.Params) (listing.Result[Bursary], error)
	Get(schoolID, id string) (*Bursary, error)
	Create(schoolID string, in CreateBursaryInput) (*Bursary, error)
	Update(schoolID, id string, in UpdateBursaryInput) (*Bursary, error)
	AttachDocument(schoolID, id, filename, base64Data, mime string) (*Bursary, error)
	Delete(schoolID, id string) error
}

var _ BursaryServiceAPI = (*BursaryService)(nil)

type BursaryController struct {
	BursaryService BursaryServiceAPI
}

func (bc *BursaryController) List(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	filters := ListFilters{
		StudentID: c.Query("student_id"),
		Status:    c.Query("status"),
		Sponsor:   c.Query("sponsor"),
	}
	res, err := bc.BursaryService.List(schoolID, filters, listing.FromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (bc *BursaryController) Get(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	b, err := bc.BursaryService.Get(schoolID, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "bursary not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, b)
}

func (bc *BursaryController) Create(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	var in CreateBursaryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	b, err := bc.BursaryService.Create(schoolID, in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (bc *BursaryController) Update(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	var in UpdateBursaryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	b, err := bc.BursaryService.Update(schoolID, c.Param("id"), in)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "bursary not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, b)
}

type attachDocumentRequest struct {
	Filename string `json:"filename" binding:"required"`
	Data     string `json:"data" binding:"required"`
	Mime     string `json:"mime"`
}

func (bc *BursaryController) AttachDocument(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	var req attachDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	b, err := bc.BursaryService.AttachDocument(schoolID, c.Param("id"), req.Filename, req.Data, req.Mime)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "bursary not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, b)
}

func (bc *BursaryController) Delete(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return
	}

	if err := bc.BursaryService.Delete(schoolID, c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "bursary not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
