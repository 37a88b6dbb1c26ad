package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 6

// pageParams reads page-based pagination controls; limit overrides the
// default page size of 6.
func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
	if limit < 1 {
		limit = defaultPageSize
	}
	return page, limit
}

// paginated is the envelope for every paginated listing
func paginated(count int64, results interface{}) gin.H {
	return gin.H{
		"count":   count,
		"results": results,
	}
}

// uintParam parses a numeric path parameter
func uintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(value), true
}
