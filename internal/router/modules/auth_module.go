package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/user-auth-service/internal/interface/http"
	"github.com/oksasatya/user-auth-service/internal/router"
)

type AuthModule struct {
	Handler      *handlers.AuthHandler
	LoginLimiter gin.HandlerFunc
}

func NewAuthModule(h *handlers.AuthHandler, loginLimiter gin.HandlerFunc) *AuthModule {
	return &AuthModule{Handler: h, LoginLimiter: loginLimiter}
}

func (m *AuthModule) Routes() []router.Route {
	return []router.Route{
		{
			Method:     http.MethodPost,
			Path:       "/auth/login",
			Public:     true,
			Guard:      router.GuardCredentials,
			Middleware: optional(m.LoginLimiter),
			Handler:    m.Handler.Login,
		},
		{Method: http.MethodGet, Path: "/profile", Handler: m.Handler.Profile},
	}
}

func optional(mw ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(mw))
	for _, h := range mw {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}
