package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/user-auth-service/internal/domain/entity"
	"github.com/oksasatya/user-auth-service/internal/infrastructure/memory"
	"github.com/oksasatya/user-auth-service/pkg/helpers"
)

func newAuthFixture(t *testing.T) (*AuthService, *UserService) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	r := memory.NewUserRepository()
	hasher := helpers.NewPasswordHasher(bcrypt.MinCost)
	jwt := helpers.NewJWTManager("test-secret", time.Hour, "test")
	return NewAuthService(r, hasher, jwt, logger), NewUserService(r, hasher, logger)
}

func TestValidateCredentials(t *testing.T) {
	auth, users := newAuthFixture(t)
	ctx := context.Background()

	u, err := users.Register(ctx, CreateUserInput{Email: "alice@example.com", Password: "secret123", Name: "Alice"})
	require.NoError(t, err)

	p, err := auth.ValidateCredentials(ctx, "  ALICE@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, &entity.Principal{ID: u.ID, Email: "alice@example.com", Name: "Alice"}, p)

	_, wrongPwd := auth.ValidateCredentials(ctx, "alice@example.com", "secret124")
	_, unknown := auth.ValidateCredentials(ctx, "bob@example.com", "secret123")
	assert.ErrorIs(t, wrongPwd, ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, ErrInvalidCredentials)
	assert.Equal(t, wrongPwd.Error(), unknown.Error())
}

type failingRepo struct {
	*memory.UserRepository
	err error
}

func (f failingRepo) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, f.err
}

func TestValidateCredentialsStoreFailureIsSanitized(t *testing.T) {
	logger, hook := test.NewNullLogger()
	raw := errors.New("connection refused to 10.0.0.5:27017")
	auth := NewAuthService(
		failingRepo{UserRepository: memory.NewUserRepository(), err: raw},
		helpers.NewPasswordHasher(bcrypt.MinCost),
		helpers.NewJWTManager("s", time.Hour, ""),
		logger,
	)

	_, err := auth.ValidateCredentials(context.Background(), "a@b.c", "x")
	require.ErrorIs(t, err, ErrStoreFailure)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.NotContains(t, err.Error(), "10.0.0.5")

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, raw, hook.LastEntry().Data["error"])
}

func TestLoginThenVerifyToken(t *testing.T) {
	auth, _ := newAuthFixture(t)

	tok, err := auth.Login(&entity.Principal{ID: "u1", Email: "alice@example.com", Name: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.True(t, tok.ExpiresAt.After(time.Now()))

	p, err := auth.VerifyToken(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", p.ID)
	assert.Equal(t, "alice@example.com", p.Email)
}

func TestVerifyTokenFailures(t *testing.T) {
	auth, _ := newAuthFixture(t)

	expired, err := NewAuthService(memory.NewUserRepository(), helpers.NewPasswordHasher(bcrypt.MinCost),
		helpers.NewJWTManager("test-secret", -time.Minute, "test"), nil).Login(&entity.Principal{ID: "u1"})
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"expired":   expired.AccessToken,
		"malformed": "abc.def",
		"empty":     "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := auth.VerifyToken(tok)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
