package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Soulinho/pandawok-project/internal/httperr"
	"github.com/Soulinho/pandawok-project/internal/middleware"
)

// actorID returns the authenticated staff user, if any.
func actorID(c *gin.Context) *uint {
	v, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}

// uintParam parses a positive path id and writes 400 on failure.
func uintParam(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Invalid id.")
		return 0, false
	}
	return uint(n), true
}

func bindError(c *gin.Context, err error) {
	c.JSON(400, httperr.HTTPError{
		Code:    httperr.CodeInvalidRequest,
		Message: err.Error(),
	})
}
