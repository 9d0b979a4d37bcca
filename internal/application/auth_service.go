package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-auth-service/internal/domain/entity"
	repo "github.com/oksasatya/user-auth-service/internal/domain/repository"
	"github.com/oksasatya/user-auth-service/pkg/helpers"
)

// Token is the envelope returned by a successful login.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// AuthService verifies credentials and issues stateless access tokens.
type AuthService struct {
	Repo   repo.UserRepository
	Hasher *helpers.PasswordHasher
	JWT    *helpers.JWTManager
	Logger *logrus.Logger

	// compared against when the email is unknown so both failure paths
	// spend the same bcrypt time
	dummyHash string
}

func NewAuthService(r repo.UserRepository, hasher *helpers.PasswordHasher, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	s := &AuthService{Repo: r, Hasher: hasher, JWT: jwt, Logger: logger}
	if h, err := hasher.Hash("user-auth-service/unknown-user"); err == nil {
		s.dummyHash = h
	}
	return s
}

// ValidateCredentials returns the principal for a matching email/password.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *AuthService) ValidateCredentials(ctx context.Context, email, password string) (*entity.Principal, error) {
	email = entity.NormalizeEmail(email)
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.Hasher.Verify(s.dummyHash, password)
			return nil, ErrInvalidCredentials
		}
		return nil, storeFailure(s.Logger, "get user by email", err, nil)
	}
	if !s.Hasher.Verify(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return entity.PrincipalOf(u), nil
}

// Login mints a signed token for an already validated principal.
func (s *AuthService) Login(p *entity.Principal) (Token, error) {
	access, exp, err := s.JWT.GenerateAccessToken(p.ID, p.Email, p.Name)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", p.ID).Error("generate access token failed")
		}
		return Token{}, err
	}
	return Token{AccessToken: access, TokenType: "Bearer", ExpiresAt: exp}, nil
}

// VerifyToken decodes a presented token into its principal.
func (s *AuthService) VerifyToken(token string) (*entity.Principal, error) {
	claims, err := s.JWT.ParseAccessToken(token)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Debug("token rejected")
		}
		return nil, ErrInvalidToken
	}
	return &entity.Principal{ID: claims.UserID, Email: claims.Email, Name: claims.Name}, nil
}
