package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-auth-service/internal/application"
	"github.com/oksasatya/user-auth-service/pkg/helpers"
	"github.com/oksasatya/user-auth-service/pkg/response"
)

// writeServiceError maps a service error to a status and fixed message.
// notFound overrides the 404 message for the calling endpoint.
func writeServiceError(c *gin.Context, logger *logrus.Logger, err error, notFound string) {
	if notFound == "" {
		notFound = "user not found"
	}
	switch {
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, notFound, nil)
	case errors.Is(err, application.ErrEmailTaken):
		response.Error[any](c, http.StatusConflict, application.ErrEmailTaken.Error(), nil)
	case errors.Is(err, application.ErrPasswordTooLong):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"password": application.ErrPasswordTooLong.Error()})
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, application.ErrInvalidToken):
		response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
	case errors.Is(err, application.ErrStoreFailure):
		response.Error[any](c, http.StatusServiceUnavailable, "service unavailable", nil)
	default:
		if !errors.Is(err, application.ErrHashFailure) {
			helpers.LogError(logger, "unhandled service error", err, logrus.Fields{"path": c.FullPath()})
		}
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
	}
}
