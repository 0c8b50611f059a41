// Package pagination parses the page/limit/search query triple shared by
// every list endpoint.
package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	MinLimit     = 1
)

// Params is the clamped result of Parse. Offset is derived, ready for a
// gorm Offset/Limit pair.
type Params struct {
	Page   int
	Limit  int
	Offset int
	Search string
}

// Parse reads page, limit and search from the request query. Malformed or
// out-of-range values fall back to defaults rather than erroring, so a bad
// page number can never break a listing.
func Parse(c *gin.Context) Params {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	if page < 1 {
		page = DefaultPage
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if limit < MinLimit {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
		Search: c.Query("search"),
	}
}
