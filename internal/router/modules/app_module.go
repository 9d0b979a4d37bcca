package modules

import (
	"net/http"

	handlers "github.com/oksasatya/user-auth-service/internal/interface/http"
	"github.com/oksasatya/user-auth-service/internal/router"
)

type AppModule struct {
	Handler *handlers.AppHandler
}

func NewAppModule(h *handlers.AppHandler) *AppModule {
	return &AppModule{Handler: h}
}

func (m *AppModule) Routes() []router.Route {
	return []router.Route{
		{Method: http.MethodGet, Path: "/", Public: true, Handler: m.Handler.Hello},
		{Method: http.MethodGet, Path: "/healthz", Public: true, Handler: m.Handler.Health},
	}
}
