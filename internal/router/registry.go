package router

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/user-auth-service/internal/interface/middleware"
)

const (
	GuardNone        = middleware.GuardNone
	GuardCredentials = middleware.GuardCredentials
)

type Registry struct {
	Engine      *gin.Engine
	Auth        middleware.Authenticator
	middlewares []gin.HandlerFunc
	modules     []Module
	routes      []Route
}

func NewRegistry(engine *gin.Engine, auth middleware.Authenticator) *Registry {
	return &Registry{Engine: engine, Auth: auth}
}

// Use adds middleware run before every route's chain.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// Routes returns the table registered so far.
func (r *Registry) Routes() []Route {
	return r.routes
}

// RegisterAll mounts every module route. Each chain is: route middleware,
// then the guards chosen by middleware.Dispatch, then the handler.
func (r *Registry) RegisterAll() error {
	if len(r.middlewares) > 0 {
		r.Engine.Use(r.middlewares...)
	}
	seen := make(map[string]bool)
	for _, m := range r.modules {
		for _, rt := range m.Routes() {
			key := rt.Method + " " + rt.Path
			if seen[key] {
				return fmt.Errorf("duplicate route %s", key)
			}
			if rt.Handler == nil {
				return fmt.Errorf("route %s has no handler", key)
			}
			seen[key] = true

			chain := make([]gin.HandlerFunc, 0, len(rt.Middleware)+3)
			chain = append(chain, rt.Middleware...)
			chain = append(chain, middleware.Dispatch(middleware.Policy{Public: rt.Public, Guard: rt.Guard}, r.Auth)...)
			chain = append(chain, rt.Handler)
			r.Engine.Handle(rt.Method, rt.Path, chain...)
			r.routes = append(r.routes, rt)
		}
	}
	return nil
}
