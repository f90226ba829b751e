package audit

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-api/internal/listing"
	"campus-api/internal/middlewares"
)

type ServiceAPI interface {
	List(input FilterInput, p listing.Params) (listing.Result[Entry], Aggregates, error)
}

type Controller struct {
	Service ServiceAPI
}

func optQuery(c *gin.Context, name string) *string {
	v := c.Query(name)
	if v == "" {
		return nil
	}
	return &v
}

func (ac *Controller) List(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "school scope not found"})
		return
	}

	input := FilterInput{
		Level:     optQuery(c, "level"),
		Service:   optQuery(c, "service"),
		Action:    optQuery(c, "action"),
		UserID:    optQuery(c, "user_id"),
		SchoolID:  &schoolID,
		StartDate: optQuery(c, "start_date"),
		EndDate:   optQuery(c, "end_date"),
		Search:    optQuery(c, "search"),
	}

	res, aggs, err := ac.Service.List(input, listing.FromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       res.Data,
		"total":      res.Total,
		"page":       res.Page,
		"pages":      res.Pages,
		"aggregates": aggs,
	})
}
