package ports

import (
	"context"

	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/users/domain"
)

// Service exposes user bounded context use cases.
type Service interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, username string, updated *domain.User) (*domain.User, error)
	Delete(ctx context.Context, username string) error
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, username string)
	ResolveSession(ctx context.Context, token string) (*domain.User, error)
}
