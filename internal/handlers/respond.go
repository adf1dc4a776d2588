package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	apierrors "github.com/yukikurage/organiz-api/internal/errors"
	"github.com/yukikurage/organiz-api/internal/services"
	"github.com/yukikurage/organiz-api/internal/validation"
	"gorm.io/gorm"
)

// respondError translates service errors into API errors. Anything without a
// known kind is logged and hidden behind a generic 500.
func respondError(c *gin.Context, log logrus.FieldLogger, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrUnauthorized):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrConflict):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, gorm.ErrDuplicatedKey):
		apierrors.Conflict(c, "")
	default:
		log.WithError(err).WithField("path", c.Request.URL.Path).Error("Unhandled error")
		apierrors.InternalError(c, "")
	}
}

// bindJSON binds the body and answers 400 itself when that fails.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if fields, ok := validation.Translate(err); ok {
			apierrors.ValidationFailed(c, fields)
		} else {
			apierrors.BadRequest(c, "Invalid request body")
		}
		return false
	}
	return true
}

// optionalUintQuery parses an optional numeric query parameter.
func optionalUintQuery(c *gin.Context, key string) (*uint64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+key)
		return nil, false
	}
	return &v, true
}
