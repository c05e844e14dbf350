package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/users/domain"
	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps accounts in a map keyed by the lowercased username,
// so lookups are case-insensitive the same way the unique index on the
// SQL side is.
type Repository struct {
	mu     sync.RWMutex
	users  map[string]domain.User
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{users: make(map[string]domain.User), nextID: 1}
}

func usernameKey(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Save inserts or replaces the account. New accounts receive a
// sequential ID, mirroring the SQL adapter's autoincrement column.
func (r *Repository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil || user.Username == "" {
		return nil, errors.New("username is required")
	}
	key := usernameKey(user.Username)

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *user
	if existing, ok := r.users[key]; ok {
		stored.ID = existing.ID
	} else if stored.ID == 0 {
		stored.ID = r.nextID
		r.nextID++
	}
	r.users[key] = stored

	out := stored
	return &out, nil
}

func (r *Repository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.users[usernameKey(username)]
	if !ok {
		return nil, ports.ErrNotFound
	}
	out := stored
	return &out, nil
}

func (r *Repository) Delete(_ context.Context, username string) error {
	key := usernameKey(username)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[key]; !ok {
		return ports.ErrNotFound
	}
	delete(r.users, key)
	return nil
}

// List returns all accounts ordered by username for stable output.
func (r *Repository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*domain.User, 0, len(r.users))
	for _, stored := range r.users {
		out := stored
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Username < list[j].Username })
	return list, nil
}
