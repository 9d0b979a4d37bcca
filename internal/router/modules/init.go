package modules

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/user-auth-service/internal/container"
	"github.com/oksasatya/user-auth-service/internal/interface/middleware"
	"github.com/oksasatya/user-auth-service/internal/router"
)

// InitModules adds every feature module to the registry.
func InitModules(reg *router.Registry, c *container.Container) {
	cfg := c.Config

	var allow middleware.AllowFunc
	if !cfg.RateLimitPrivate {
		allow = middleware.AllowPrivateIP()
	}
	loginLimiter := middleware.RateLimit(c.Redis, cfg.LoginRateLimit, time.Minute, middleware.KeyByIPAndPath(), allow)
	registerLimiter := middleware.RateLimit(c.Redis, cfg.RegisterRateLimit, time.Minute, middleware.KeyByIPAndPath(), allow)

	reg.Add(NewAppModule(c.AppHandler))
	reg.Add(NewAuthModule(c.AuthHandler, loginLimiter))
	reg.Add(NewUserModule(c.UserHandler, registerLimiter))
}

// NewEngine builds the gin engine with global middleware and the full route
// table mounted.
func NewEngine(c *container.Container) (*gin.Engine, error) {
	cfg := c.Config

	r := gin.New()
	if !cfg.TrustProxy {
		if err := r.SetTrustedProxies(nil); err != nil {
			return nil, err
		}
	}

	reg := router.NewRegistry(r, c.AuthService)
	reg.Use(gin.Recovery(), middleware.RequestIDMiddleware(), middleware.RealIP(cfg.TrustProxy))
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		reg.Use(cors.New(cors.Config{
			AllowOrigins:  origins,
			AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}
	if cfg.HTTPLogEnabled {
		reg.Use(middleware.RequestLogger(c.Logger))
	}

	InitModules(reg, c)
	if err := reg.RegisterAll(); err != nil {
		return nil, err
	}
	return r, nil
}
