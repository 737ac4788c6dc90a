package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/schoolauth/errors"
)

// RespondWithError writes an error response in the standard envelope. AppErrors
// map to their own HTTP status; anything else becomes an opaque 500 so internal
// details never reach the client.
func RespondWithError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
		return
	}
	internal := apperrors.Internal(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, internal.ToResponse())
}
