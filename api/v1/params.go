package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yamdb-api/httpx"
)

// idParam parses a numeric path parameter. A malformed id answers 404 like a missing row.
func idParam(c *gin.Context, name, resource string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httpx.Error(c, http.StatusNotFound, resource+" not found", nil)
		return 0, false
	}
	return uint(id), true
}
