package ports

import (
	"context"
	"errors"

	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/users/domain"
)

var (
	// ErrNotFound reports a lookup for an unknown username.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords so login failures stay indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Repository persists user accounts keyed by username.
type Repository interface {
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Delete(ctx context.Context, username string) error
	List(ctx context.Context) ([]*domain.User, error)
}
