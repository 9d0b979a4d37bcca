package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/user-auth-service/internal/domain/entity"
	"github.com/oksasatya/user-auth-service/internal/domain/repository"
)

func TestCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()

	u := &entity.User{Email: "alice@example.com", Password: "hash", Name: "Alice"}
	require.NoError(t, r.Create(ctx, u))
	require.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	byID, err := r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)

	byEmail, err := r.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = r.GetByEmail(ctx, "bob@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()

	require.NoError(t, r.Create(ctx, &entity.User{Email: "a@example.com", Password: "h"}))
	err := r.Create(ctx, &entity.User{Email: "a@example.com", Password: "h"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestUpdateMovesEmailIndex(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()

	a := &entity.User{Email: "a@example.com", Password: "h"}
	b := &entity.User{Email: "b@example.com", Password: "h"}
	require.NoError(t, r.Create(ctx, a))
	require.NoError(t, r.Create(ctx, b))

	b.Email = "a@example.com"
	assert.ErrorIs(t, r.Update(ctx, b), repository.ErrDuplicateEmail)

	a.Email = "c@example.com"
	require.NoError(t, r.Update(ctx, a))
	_, err := r.GetByEmail(ctx, "a@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	got, err := r.GetByEmail(ctx, "c@example.com")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	assert.ErrorIs(t, r.Update(ctx, &entity.User{ID: "missing"}), repository.ErrNotFound)
}

func TestDeleteAndList(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()

	u := &entity.User{Email: "a@example.com", Password: "h"}
	require.NoError(t, r.Create(ctx, u))
	list, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, r.Delete(ctx, u.ID))
	assert.ErrorIs(t, r.Delete(ctx, u.ID), repository.ErrNotFound)

	list, err = r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestReturnedUserIsACopy(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()

	u := &entity.User{Email: "a@example.com", Password: "h", Name: "A"}
	require.NoError(t, r.Create(ctx, u))

	got, err := r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", again.Name)
}

func TestConcurrentCreateKeepsEmailUnique(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- r.Create(ctx, &entity.User{Email: "same@example.com", Password: "h"})
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
		}
	}
	assert.Equal(t, 1, ok)
}
