package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/poultrytrade/ledger_backend/config"
	"github.com/poultrytrade/ledger_backend/utils"
)

// respondError maps core errors onto status codes: validation -> 400,
// not-found -> 404, anything else -> 500. Internal errors are logged
// in full but never echoed to the client.
func respondError(c *gin.Context, err error) {
	switch {
	case utils.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger := config.GetLogger()
		config.LogError(logger, "handlers", c.HandlerName(), c.FullPath(), nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// respondBindError reports request binding failures; struct tag
// violations come back as a field -> rule map.
func respondBindError(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(verr)})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func pathId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// queryDate reads an optional YYYY-MM-DD query param.
func queryDate(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := utils.ParseDate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + ": invalid date format, use YYYY-MM-DD"})
		return nil, false
	}
	return &t, true
}

func queryDateRange(c *gin.Context) (start, end *time.Time, ok bool) {
	start, ok = queryDate(c, "date_from")
	if !ok {
		return nil, nil, false
	}
	end, ok = queryDate(c, "date_to")
	if !ok {
		return nil, nil, false
	}
	return start, end, true
}
