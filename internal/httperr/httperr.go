package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Soulinho/pandawok-project/internal/logger"
)

type HTTPError struct {
	Code    string   `json:"error_code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Unprocessable(c *gin.Context, code, message string) {
	Write(c, http.StatusUnprocessableEntity, code, message)
}

func Unavailable(c *gin.Context, code, message string) {
	c.Header("Retry-After", "1")
	Write(c, http.StatusServiceUnavailable, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// ======================================================
// Error → HTTP mapping
// ======================================================

var messages = map[string]string{
	CodeNotFound:                "Resource not found.",
	CodeInvalidState:            "Table is not in a state that allows this action.",
	CodeInvalidSalon:            "Salon does not exist.",
	CodeTargetNotFree:           "Target table is not free.",
	CodeSourceNotBound:          "Source table has no reservation.",
	CodeImmutableFieldViolation: "Origin and creation time cannot be changed.",
	CodeBusy:                    "Table is busy, retry shortly.",
	CodeTableBlocked:            "Table is blocked for that time.",
}

// Handle writes the response for an error returned by a use case.
func Handle(c *gin.Context, err error) {
	var ve ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, HTTPError{
			Code:    CodeInvalidRequest,
			Message: "Invalid data.",
			Fields:  ve.Fields,
		})
		return
	}

	code, ok := AsBusiness(err)
	if !ok {
		logger.ErrorLogger.WithError(err).
			WithField("path", c.FullPath()).
			Error("request failed")
		Internal(c, "internal_error", "Internal error.")
		return
	}

	msg := messages[code]
	switch code {
	case CodeNotFound:
		NotFound(c, code, msg)
	case CodeInvalidSalon:
		Unprocessable(c, code, msg)
	case CodeImmutableFieldViolation:
		BadRequest(c, code, msg)
	case CodeBusy:
		Unavailable(c, code, msg)
	case CodeInvalidState, CodeTargetNotFree, CodeSourceNotBound, CodeTableBlocked:
		Conflict(c, code, msg)
	default:
		BadRequest(c, code, msg)
	}
}
