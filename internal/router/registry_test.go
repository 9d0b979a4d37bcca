package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/user-auth-service/internal/domain/entity"
	"github.com/oksasatya/user-auth-service/internal/interface/middleware"
)

func init() { gin.SetMode(gin.TestMode) }

type denyAll struct{}

func (denyAll) ValidateCredentials(context.Context, string, string) (*entity.Principal, error) {
	return nil, context.Canceled
}

func (denyAll) VerifyToken(string) (*entity.Principal, error) {
	return nil, context.Canceled
}

type staticModule []Route

func (m staticModule) Routes() []Route { return m }

func ok(c *gin.Context) { c.Status(http.StatusNoContent) }

func TestRegisterAllDefaultsToProtected(t *testing.T) {
	var order []string
	mark := func(name string) gin.HandlerFunc {
		return func(c *gin.Context) { order = append(order, name); c.Next() }
	}

	reg := NewRegistry(gin.New(), denyAll{})
	reg.Add(staticModule{
		{Method: http.MethodGet, Path: "/open", Public: true, Middleware: []gin.HandlerFunc{mark("mw")}, Handler: ok},
		{Method: http.MethodGet, Path: "/closed", Middleware: []gin.HandlerFunc{mark("mw")}, Handler: ok},
	})
	require.NoError(t, reg.RegisterAll())
	assert.Len(t, reg.Routes(), 2)

	w := httptest.NewRecorder()
	reg.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	reg.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/closed", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, []string{"mw", "mw"}, order)
}

func TestRegisterAllRejectsBadTables(t *testing.T) {
	dup := NewRegistry(gin.New(), denyAll{})
	dup.Add(staticModule{
		{Method: http.MethodGet, Path: "/a", Public: true, Handler: ok},
		{Method: http.MethodGet, Path: "/a", Handler: ok},
	})
	assert.ErrorContains(t, dup.RegisterAll(), "duplicate route GET /a")

	noHandler := NewRegistry(gin.New(), denyAll{})
	noHandler.Add(staticModule{{Method: http.MethodPost, Path: "/b", Guard: middleware.GuardCredentials}})
	assert.ErrorContains(t, noHandler.RegisterAll(), "no handler")
}
