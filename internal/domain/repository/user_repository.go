package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/user-auth-service/internal/domain/entity"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("duplicate email")
)

// UserRepository defines the interface for user persistence.
// Implementations return ErrNotFound and ErrDuplicateEmail for those cases
// and the driver error otherwise.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
