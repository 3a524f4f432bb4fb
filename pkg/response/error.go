package response

import (
	"github.com/gin-gonic/gin"

	"github.com/jishnuMgit/hoardlinks-backend/pkg/apperr"
)

// Error writes the HTTP response matching the taxonomy kind of err.
// Unclassified errors surface as generic 500s.
func Error(c *gin.Context, err error) {
	msg := apperr.MessageOf(err)
	switch apperr.KindOf(err) {
	case apperr.Unauthorized:
		Unauthorized(c, msg)
	case apperr.Forbidden:
		Forbidden(c, msg)
	case apperr.NotFound:
		NotFound(c, msg)
	case apperr.InvalidInput:
		BadRequest(c, msg)
	case apperr.Conflict:
		Conflict(c, msg)
	default:
		Internal(c, msg)
	}
}
