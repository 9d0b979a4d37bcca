package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-auth-service/pkg/response"
)

// Pinger reports whether the credential store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type AppHandler struct {
	AppName string
	Port    string
	Store   Pinger
	Logger  *logrus.Logger
}

func NewAppHandler(appName, port string, store Pinger, logger *logrus.Logger) *AppHandler {
	return &AppHandler{AppName: appName, Port: port, Store: store, Logger: logger}
}

func (h *AppHandler) Hello(c *gin.Context) {
	if h.Logger != nil {
		h.Logger.WithField("port", h.Port).Debug("hello")
	}
	response.Success(c, http.StatusOK, gin.H{"name": h.AppName, "message": "Hello World!"}, "ok", nil)
}

func (h *AppHandler) Health(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		response.Error[any](c, http.StatusServiceUnavailable, "store unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ok": true}, "healthy", nil)
}
