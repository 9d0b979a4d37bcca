package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/user-auth-service/internal/application"
	"github.com/oksasatya/user-auth-service/internal/domain/entity"
	"github.com/oksasatya/user-auth-service/pkg/response"
	"github.com/oksasatya/user-auth-service/pkg/validation"
)

// PrincipalKey is the single gin context key a guard stores the
// authenticated principal under.
const PrincipalKey = "principal"

// Guard names an extra check a route runs before its handler.
type Guard int

const (
	GuardNone Guard = iota
	GuardCredentials
)

// Policy is the access metadata of one route.
type Policy struct {
	Public bool
	Guard  Guard
}

// Authenticator is the part of the auth service the guards depend on.
type Authenticator interface {
	ValidateCredentials(ctx context.Context, email, password string) (*entity.Principal, error)
	VerifyToken(token string) (*entity.Principal, error)
}

type credentials struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func SetPrincipal(c *gin.Context, p *entity.Principal) {
	c.Set(PrincipalKey, p)
}

// PrincipalFrom returns the principal admitted by a guard, if any.
func PrincipalFrom(c *gin.Context) (*entity.Principal, bool) {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*entity.Principal)
	return p, ok && p != nil
}

// Dispatch returns the guard chain for a route. Routes are protected unless
// marked public; a credential guard runs after the token guard when both apply.
func Dispatch(p Policy, auth Authenticator) []gin.HandlerFunc {
	var chain []gin.HandlerFunc
	if !p.Public {
		chain = append(chain, TokenGuard(auth))
	}
	if p.Guard == GuardCredentials {
		chain = append(chain, CredentialGuard(auth))
	}
	return chain
}

// CredentialGuard binds {email, password} and admits the request when they
// match a stored user.
func CredentialGuard(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentials
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Abort(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
			return
		}
		p, err := auth.ValidateCredentials(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, application.ErrInvalidCredentials) {
				response.Abort(c, http.StatusUnauthorized, "invalid credentials", nil)
				return
			}
			response.Abort(c, http.StatusInternalServerError, "internal server error", nil)
			return
		}
		SetPrincipal(c, p)
		c.Next()
	}
}

// TokenGuard admits requests carrying a valid "Authorization: Bearer" token.
func TokenGuard(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		p, err := auth.VerifyToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		SetPrincipal(c, p)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
