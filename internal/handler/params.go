package handler

import (
	"strconv"

	"github.com/fitlog-server/internal/models"
	"github.com/gin-gonic/gin"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// parseIDParam parses the :id path parameter
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// parseSkipLimit parses skip/limit query parameters with sane bounds
func parseSkipLimit(c *gin.Context) (int, int) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultListLimit)))

	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > maxListLimit {
		limit = defaultListLimit
	}
	return skip, limit
}

// parseDateQuery parses an optional YYYY-MM-DD query parameter. The second
// return value is false when the parameter is present but malformed.
func parseDateQuery(c *gin.Context, name string) (*models.Date, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	date, err := models.ParseDate(raw)
	if err != nil {
		return nil, false
	}
	return &date, true
}
