package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-auth-service/internal/domain/entity"
	repo "github.com/oksasatya/user-auth-service/internal/domain/repository"
	"github.com/oksasatya/user-auth-service/pkg/helpers"
	"github.com/oksasatya/user-auth-service/pkg/mailer"
)

const EventUserRegistered = "user.registered"

// UserIndexer mirrors public user fields into a search backend.
type UserIndexer interface {
	Index(ctx context.Context, u entity.UserView) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]map[string]any, error)
}

// EventPublisher delivers JSON messages to the job queue.
type EventPublisher interface {
	PublishJSON(ctx context.Context, msgType string, body any) error
}

// UserService is the CRUD layer over the credential store. Indexer and
// Publisher are optional.
type UserService struct {
	Repo      repo.UserRepository
	Hasher    *helpers.PasswordHasher
	Logger    *logrus.Logger
	Indexer   UserIndexer
	Publisher EventPublisher
	AppName   string
	SendMail  bool
}

func NewUserService(r repo.UserRepository, hasher *helpers.PasswordHasher, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, Hasher: hasher, Logger: logger}
}

type CreateUserInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Address  string
	Age      int
}

// UpdateUserInput carries optional changes; nil fields are left untouched.
type UpdateUserInput struct {
	Email    *string
	Password *string
	Name     *string
	Phone    *string
	Address  *string
	Age      *int
}

func (in UpdateUserInput) empty() bool {
	return in.Email == nil && in.Password == nil && in.Name == nil &&
		in.Phone == nil && in.Address == nil && in.Age == nil
}

// Register creates a user with a freshly hashed password.
func (s *UserService) Register(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	email := entity.NormalizeEmail(in.Email)
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, storeFailure(s.Logger, "check email", err, nil)
	}

	hash, err := s.hash(in.Password, nil)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Email:    email,
		Password: hash,
		Name:     in.Name,
		Phone:    in.Phone,
		Address:  in.Address,
		Age:      in.Age,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, storeFailure(s.Logger, "create user", err, nil)
	}

	s.index(ctx, u)
	s.publishWelcome(ctx, u)
	return u, nil
}

// List returns every user; an empty collection is reported as ErrUserNotFound.
func (s *UserService) List(ctx context.Context) ([]*entity.User, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, storeFailure(s.Logger, "list users", err, nil)
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storeFailure(s.Logger, "get user", err, logrus.Fields{"user_id": id})
	}
	return u, nil
}

// Update applies the provided fields. A new password goes through the hasher.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*entity.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.empty() {
		return u, nil
	}
	if in.Email != nil {
		u.Email = entity.NormalizeEmail(*in.Email)
	}
	if in.Password != nil {
		hash, err := s.hash(*in.Password, logrus.Fields{"user_id": id})
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	if in.Address != nil {
		u.Address = *in.Address
	}
	if in.Age != nil {
		u.Age = *in.Age
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repo.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		}
		return nil, storeFailure(s.Logger, "update user", err, logrus.Fields{"user_id": id})
	}
	s.index(ctx, u)
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return storeFailure(s.Logger, "delete user", err, logrus.Fields{"user_id": id})
	}
	if s.Indexer != nil {
		if err := s.Indexer.Delete(ctx, id); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("es delete failed")
		}
	}
	return nil
}

// Search queries the user index; without an indexer it returns no hits.
func (s *UserService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.Indexer == nil {
		return []map[string]any{}, nil
	}
	hits, err := s.Indexer.Search(ctx, q, size)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("es search failed")
		}
		return nil, ErrStoreFailure
	}
	return hits, nil
}

// Ping checks the credential store.
func (s *UserService) Ping(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.Repo.Ping(c); err != nil {
		return storeFailure(s.Logger, "ping", err, nil)
	}
	return nil
}

func (s *UserService) hash(plain string, fields logrus.Fields) (string, error) {
	h, err := s.Hasher.Hash(plain)
	if err == nil {
		return h, nil
	}
	if errors.Is(err, helpers.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if s.Logger != nil {
		s.Logger.WithError(err).WithFields(fields).Error("hash password failed")
	}
	return "", ErrHashFailure
}

func (s *UserService) index(ctx context.Context, u *entity.User) {
	if s.Indexer == nil {
		return
	}
	if err := s.Indexer.Index(ctx, u.View()); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
	}
}

func (s *UserService) publishWelcome(ctx context.Context, u *entity.User) {
	if s.Publisher == nil || !s.SendMail {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data: map[string]any{
			"Name":    u.Name,
			"Email":   u.Email,
			"AppName": s.AppName,
		},
	}
	if err := s.Publisher.PublishJSON(ctx, EventUserRegistered, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("publish welcome email failed")
	}
}
