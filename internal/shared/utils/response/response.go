package response

import (
	"github.com/gin-gonic/gin"

	"yatra/internal/shared/errs"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError maps a domain error onto the standard envelope, surfacing the
// stable error code alongside the message.
func RespondError(c *gin.Context, err error) {
	status := errs.HTTPStatus(err)
	var errBody interface{}
	if code := errs.CodeOf(err); code != "" {
		errBody = gin.H{"code": code}
	}
	RespondJSON(c, "error", status, err.Error(), nil, errBody)
}
