package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/organiz-api/internal/errors"
)

const contextKeyResourceID = "resource_id"

// RequireIDParam parses the ":id" path parameter and rejects anything that is
// not a positive integer before the handler runs.
func RequireIDParam() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || id == 0 {
			apierrors.BadRequest(c, "Invalid id")
			return
		}

		c.Set(contextKeyResourceID, id)
		c.Next()
	}
}

// GetResourceID returns the id parsed by RequireIDParam
func GetResourceID(c *gin.Context) (uint64, bool) {
	id, exists := c.Get(contextKeyResourceID)
	if !exists {
		return 0, false
	}
	v, ok := id.(uint64)
	return v, ok
}
