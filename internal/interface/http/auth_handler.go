package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-auth-service/internal/application"
	"github.com/oksasatya/user-auth-service/internal/interface/middleware"
	"github.com/oksasatya/user-auth-service/pkg/response"
)

type AuthHandler struct {
	Auth   *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(auth *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Logger: logger}
}

// Login issues a token for the principal admitted by the credential guard.
func (h *AuthHandler) Login(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	tok, err := h.Auth.Login(p)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	response.Success(c, http.StatusOK, tok, "login successful", nil)
}

// Profile echoes the principal admitted by the token guard.
func (h *AuthHandler) Profile(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	response.Success(c, http.StatusOK, p, "profile", nil)
}
