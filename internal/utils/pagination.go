package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/organiz-api/internal/constants"
)

// PaginationParams holds the pagination parameters. A zero Limit means
// the caller did not ask for a page and wants the full list.
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// GetPaginationParams extracts pagination parameters from the request. Lists
// are unpaginated unless "page" or "limit" is present.
func GetPaginationParams(c *gin.Context) PaginationParams {
	pageStr, hasPage := c.GetQuery("page")
	limitStr, hasLimit := c.GetQuery("limit")
	if !hasPage && !hasLimit {
		return PaginationParams{}
	}

	page, _ := strconv.Atoi(pageStr)
	limit, _ := strconv.Atoi(limitStr)

	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}
