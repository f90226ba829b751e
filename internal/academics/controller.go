package academics

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"campus-api/internal/listing"
	"campus-api/internal/middlewares"
)

type SubjectServiceAPI interface {
	List(schoolID string, f SubjectFilters, p listing.Params) (listing.Result[Subject], error)
	Get(schoolID, id string) (*Subject, error)
	Create(schoolID string, in CreateSubjectInput) (*Subject, error)
	Update(schoolID, id string, in UpdateSubjectInput) (*Subject, error)
	Delete(schoolID, id string) error
}

type RoomServiceAPI interface {
	List(schoolID string, f RoomFilters, p listing.Params) (listing.Result[Room], error)
	Get(schoolID, id string) (*Room, error)
	Create(schoolID string, in CreateRoomInput) (*Room, error)
	Update(schoolID, id string, in UpdateRoomInput) (*Room, error)
	Delete(schoolID, id string) error
}

type ClassServiceAPI interface {
	List(schoolID string, f ClassFilters, p listing.Params) (listing.Result[Class], error)
	Get(schoolID, id string) (*Class, error)
	Create(schoolID string, in CreateClassInput) (*Class, error)
	Update(schoolID, id string, in UpdateClassInput) (*Class, error)
	Delete(schoolID, id string) error
}

var _ SubjectServiceAPI = (*SubjectService)(nil)
var _ RoomServiceAPI = (*RoomService)(nil)
var _ ClassServiceAPI = (*ClassService)(nil)

func callerSchool(c *gin.Context) (string, bool) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "no school assigned to this account"})
		return "", false
	}
	return schoolID, true
}

func writeNotFoundOr500(c *gin.Context, err error, what string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": what + " not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
}

type SubjectController struct {
	SubjectService SubjectServiceAPI
}

func (sc *SubjectController) List(c *gin.Context) {
	schoolID, ok := callerSchool(c)
	if !ok {
		return
	}
	filters := SubjectFilters{
		GradeLevel: c.Query("grade_level"),
		Search:     c.Query("search"),
	}
	res, err := sc.SubjectService.List(schoolID, filters, listing.FromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (sc *SubjectController) Get(c *gin.Context) {
	schoolID, ok := callerSchool(c)
	if !ok {
		return
	}
	sub, err := sc.SubjectService.Get(schoolID, c.Param("id"))
	if err != nil {
		writeNotFoundOr500(c, err, "subject")
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (sc *SubjectController) Create(c *gin.Context) {
	schoolID, ok := callerSchool(c)
	if !ok {
		return
	}
	var in CreateSubjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	sub, err := sc.SubjectService.Create(schoolID, in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (sc *SubjectController) Update(c *gin.Context) {
	schoolID, ok := callerSchool(c)
	if !ok {
		return
	}
	var in UpdateSubjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	sub, err := sc.SubjectService.Update(schoolID, c.Param("id"), in)
	if err != nil {
		writeNotFoundOr500(c, err, "subject")
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (sc *SubjectController) Delete(c *gin.Context) {
	schoolID, ok := callerSchool(c)
	if !ok {
		return
	}
	if err := sc.SubjectService.Delete(schoolID, c.Param("id")); err != nil {
		writeNotFoundOr500(c, err, "subject")
		return
	}
	c.Status(http.StatusNoContent)
}

type RoomController struct {
	RoomService RoomServiceAPI
}

func (rc *RoomController) List(c *gin.Context) {
	schoolID, ok := callerSchool(c)
	if !ok {
		return
	}
	filters := RoomFilters{
		RoomType: c.Query("room_type"),
		Building: c.Query("building"),
	}
	res, err := rc.RoomService.List(schoolID, filters, listing.FromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (rc *RoomController) Get(c *gin.Context) {
	schoolID, ok := callerSchool(c)
	if !ok {
		return
	}
	r, err := rc.RoomService.Get(schoolID, c.Param("id"))
	if err != nil {
		writeNotFoundOr500(c, err, "room")
		return
	}
	c.JSON(http.StatusOK, r)
}

func (rc *RoomController) Create(c *gin.Context) {
	schoolID, ok := callerSchool(c)
	if !ok {
		return
	}
	var in CreateRoomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	r, err := rc.RoomService.Create(schoolID, in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (rc *RoomController) Update(c *gin.Context) {
	schoolID, ok := callerSchool(c)
	if !ok {
		return
	}
	var in UpdateRoomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	r, err := rc.RoomService.Update(schoolID, c.Param("id"), in)
	if err != nil {
		writeNotFoundOr500(c, err, "room")
		return
	}
	c.JSON(http.StatusOK, r)
}

func (rc *RoomController) Delete(c *gin.Context) {
	schoolID, ok := callerSchool(c)
	if !ok {
		return
	}
	if err := rc.RoomService.Delete(schoolID, c.Param("id")); err != nil {
		writeNotFoundOr500(c, err, "room")
		return
	}
	c.Status(http.StatusNoContent)
}

type ClassController struct {
	ClassService ClassServiceAPI
}

func (cc *ClassController) List(c *gin.Context) {
	schoolID, ok := callerSchool(c)
	if !ok {
		return
	}
	filters := ClassFilters{
		GradeLevel:   c.Query("grade_level"),
		AcademicYear: c.Query("academic_year"),
		TeacherID:    c.Query("teacher_id"),
	}
	res, err := cc.ClassService.List(schoolID, filters, listing.FromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (cc *ClassController) Get(c *gin.Context) {
	schoolID, ok := callerSchool(c)
	if !ok {
		return
	}
	cl, err := cc.ClassService.Get(schoolID, c.Param("id"))
	if err != nil {
		writeNotFoundOr500(c, err, "class")
		return
	}
	c.JSON(http.StatusOK, cl)
}

func (cc *ClassController) Create(c *gin.Context) {
	schoolID, ok := callerSchool(c)
	if !ok {
		return
	}
	var in CreateClassInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	cl, err := cc.ClassService.Create(schoolID, in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, cl)
}

func (cc *ClassController) Update(c *gin.Context) {
	schoolID, ok := callerSchool(c)
	if !ok {
		return
	}
	var in UpdateClassInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	cl, err := cc.ClassService.Update(schoolID, c.Param("id"), in)
	if err != nil {
		writeNotFoundOr500(c, err, "class")
		return
	}
	c.JSON(http.StatusOK, cl)
}

func (cc *ClassController) Delete(c *gin.Context) {
	schoolID, ok := callerSchool(c)
	if !ok {
		return
	}
	if err := cc.ClassService.Delete(schoolID, c.Param("id")); err != nil {
		writeNotFoundOr500(c, err, "class")
		return
	}
	c.Status(http.StatusNoContent)
}
