package router

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/user-auth-service/internal/interface/middleware"
)

// Route is one entry of the route table. Routes are protected by the token
// guard unless Public is set; Guard adds a per-route check on top.
type Route struct {
	Method     string
	Path       string
	Public     bool
	Guard      middleware.Guard
	Middleware []gin.HandlerFunc
	Handler    gin.HandlerFunc
}

// Module describes a feature module contributing routes to the table.
type Module interface {
	Routes() []Route
}
