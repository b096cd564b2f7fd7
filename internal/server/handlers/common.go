package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abiwaumi/tablewater/internal/domain/models"
)

// ContextUserKey is where the auth middleware stores the resolved user.
const ContextUserKey = "current_user"

// ContextTokenKey is where the auth middleware stores the session token.
const ContextTokenKey = "session_token"

// CurrentUser pulls the authenticated user out of the request context.
func CurrentUser(c *gin.Context) (models.User, bool) {
	value, ok := c.Get(ContextUserKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}

// respondStoreError maps domain errors to HTTP status codes. Handlers are
// the recovery boundary: everything is logged and answered, nothing
// propagates to a global crash handler.
func respondStoreError(c *gin.Context, logger *zap.Logger, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	default:
		logger.Error("store operation failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "backend unavailable, please retry"})
	}
}

// dateRange reads the optional inclusive start/end query parameters. Both
// must be present together and well formed.
func dateRange(c *gin.Context) (start, end string, ok bool, err *models.ValidationError) {
	start = c.Query("start")
	end = c.Query("end")
	if start == "" && end == "" {
		return "", "", false, nil
	}
	if !models.ValidDate(start) {
		return "", "", false, &models.ValidationError{Field: "start", Reason: "must be YYYY-MM-DD"}
	}
	if !models.ValidDate(end) {
		return "", "", false, &models.ValidationError{Field: "end", Reason: "must be YYYY-MM-DD"}
	}
	return start, end, true, nil
}
