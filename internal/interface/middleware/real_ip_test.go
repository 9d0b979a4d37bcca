package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealIP(t *testing.T) {
	for name, tc := range map[string]struct {
		trust bool
		want  string
	}{
		"trusted":   {true, "203.0.113.7"},
		"untrusted": {false, "192.0.2.1"},
	} {
		t.Run(name, func(t *testing.T) {
			r := gin.New()
			require.NoError(t, r.SetTrustedProxies(nil))
			r.Use(RealIP(tc.trust))
			var got string
			r.GET("/", func(c *gin.Context) { got = ipFromCtx(c) })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.0.2.1:1234"
			req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
			r.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tc.want, got)
		})
	}
}
