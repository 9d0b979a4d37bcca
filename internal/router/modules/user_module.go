package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/user-auth-service/internal/interface/http"
	"github.com/oksasatya/user-auth-service/internal/router"
)

// UserModule exposes registration (public) and the protected user CRUD.
type UserModule struct {
	Handler         *handlers.UserHandler
	RegisterLimiter gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, registerLimiter gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, RegisterLimiter: registerLimiter}
}

func (m *UserModule) Routes() []router.Route {
	return []router.Route{
		{Method: http.MethodPost, Path: "/users", Public: true, Middleware: optional(m.RegisterLimiter), Handler: m.Handler.Create},
		{Method: http.MethodGet, Path: "/users", Handler: m.Handler.List},
		{Method: http.MethodGet, Path: "/users/search", Handler: m.Handler.Search},
		{Method: http.MethodGet, Path: "/users/:id", Handler: m.Handler.Get},
		{Method: http.MethodPatch, Path: "/users/:id", Handler: m.Handler.Update},
		{Method: http.MethodDelete, Path: "/users/:id", Handler: m.Handler.Delete},
	}
}
