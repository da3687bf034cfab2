package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/internal/service/resources"
	"github.com/mamadbah2/stockdesk/pkg/clients/backend"
)

// statusFor maps a service error onto the HTTP status returned to callers.
func statusFor(err error) int {
	var validation *models.ValidationError
	switch {
	case errors.Is(err, backend.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, resources.ErrUnsupported):
		return http.StatusNotImplemented
	case backend.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func writeError(c *gin.Context, logger *zap.Logger, err error) {
	status := statusFor(err)
	body := gin.H{"error": err.Error()}

	var validation *models.ValidationError
	if errors.As(err, &validation) {
		body = gin.H{"error": validation.Message, "field": validation.Field}
	}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && len(apiErr.Errors) > 0 {
		body["details"] = apiErr.Errors
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
	} else {
		logger.Warn("request rejected", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
	}
	c.JSON(status, body)
}
