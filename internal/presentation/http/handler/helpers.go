package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/trademarket-api/internal/application/model"
	"github.com/sangkips/trademarket-api/internal/presentation/http/dto/response"
)

// parseID reads a positive integer path parameter. On failure it answers 400
// and returns false.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// parseInt reads an integer from a path parameter or, when absent, the query
func parseInt(c *gin.Context, name string) (int, bool) {
	raw := c.Param(name)
	if raw == "" {
		raw = c.Query(name)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		response.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return n, true
}

// parsePeriod reads the startDate and endDate query parameters. A missing
// date is the zero time.
func parsePeriod(c *gin.Context) (time.Time, time.Time, bool) {
	start, ok := parseDateQuery(c, "startDate")
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, ok := parseDateQuery(c, "endDate")
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func parseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := model.ParseTimestamp(raw)
	if err != nil {
		response.BadRequest(c, "Invalid "+name)
		return time.Time{}, false
	}
	return t, true
}

// bindBody decodes the JSON body into dst, answering 400 on failure
func bindBody(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// matchesPath answers 400 when the body id differs from the path id
func matchesPath(c *gin.Context, pathID, bodyID uint) bool {
	if pathID != bodyID {
		response.BadRequest(c, "Path id does not match body id")
		return false
	}
	return true
}
