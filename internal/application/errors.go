package application

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Sanitized error kinds. Handlers map these to responses; driver errors are
// logged here and never leave the service.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrStoreFailure       = errors.New("store failure")
	ErrHashFailure        = errors.New("password hashing failed")
	ErrPasswordTooLong    = errors.New("password is too long")
)

func storeFailure(logger *logrus.Logger, op string, err error, fields logrus.Fields) error {
	if logger != nil {
		logger.WithError(err).WithFields(fields).WithField("op", op).Error("credential store failure")
	}
	return fmt.Errorf("%s: %w", op, ErrStoreFailure)
}
