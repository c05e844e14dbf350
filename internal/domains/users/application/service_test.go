package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/users/domain"
	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/users/ports"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	clone := *user
	f.users[user.Username] = &clone
	return &clone, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := f.users[username]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, ports.ErrNotFound
}

func (f *fakeUserRepo) Delete(_ context.Context, username string) error {
	if _, ok := f.users[username]; !ok {
		return ports.ErrNotFound
	}
	delete(f.users, username)
	return nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]*domain.User, error) {
	var list []*domain.User
	for _, u := range f.users {
		clone := *u
		list = append(list, &clone)
	}
	return list, nil
}

type fakeSessionStore struct {
	byUser  map[string]string
	byToken map[string]string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{byUser: map[string]string{}, byToken: map[string]string{}}
}

func (f *fakeSessionStore) Save(_ context.Context, username, token string) error {
	f.byUser[username] = token
	f.byToken[token] = username
	return nil
}

func (f *fakeSessionStore) Lookup(_ context.Context, token string) (string, error) {
	username, ok := f.byToken[token]
	if !ok {
		return "", ports.ErrSessionNotFound
	}
	return username, nil
}

func (f *fakeSessionStore) Delete(_ context.Context, username string) error {
	if token, ok := f.byUser[username]; ok {
		delete(f.byToken, token)
		delete(f.byUser, username)
	}
	return nil
}

func TestCreateAndLoginUser(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionStore()
	svc := NewService(repo, sessions)

	user, err := domain.NewUser(1, "alice", "secret", domain.RoleCustomer)
	require.NoError(t, err)
	created, err := svc.CreateUser(context.Background(), user)
	require.NoError(t, err)
	require.Equal(t, "alice", created.Username)
	require.Equal(t, domain.RoleCustomer, created.Role)

	token, err := svc.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, sessions.byUser["alice"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, newFakeSessionStore())

	_, err := svc.Login(context.Background(), "missing", "secret")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)

	user, err := domain.NewUser(1, "alice", "secret", domain.RoleCustomer)
	require.NoError(t, err)
	_, err = svc.CreateUser(context.Background(), user)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestResolveSession(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionStore()
	svc := NewService(repo, sessions)

	user, err := domain.NewUser(1, "alice", "secret", domain.RoleCustomer)
	require.NoError(t, err)
	_, err = svc.CreateUser(context.Background(), user)
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)

	resolved, err := svc.ResolveSession(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, "alice", resolved.Username)

	_, err = svc.ResolveSession(context.Background(), "forged-token")
	require.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestLogout_InvalidatesSession(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionStore()
	svc := NewService(repo, sessions)

	user, err := domain.NewUser(1, "alice", "secret", domain.RoleCustomer)
	require.NoError(t, err)
	_, err = svc.CreateUser(context.Background(), user)
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)

	svc.Logout(context.Background(), "alice")

	_, err = svc.ResolveSession(context.Background(), token)
	require.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestUpdate_PreservesIdentity(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, newFakeSessionStore())

	user, err := domain.NewUser(7, "alice", "secret", domain.RoleCustomer)
	require.NoError(t, err)
	_, err = svc.CreateUser(context.Background(), user)
	require.NoError(t, err)

	updated, err := domain.NewUser(0, "renamed", "secret", domain.RoleCustomer)
	require.NoError(t, err)
	require.NoError(t, updated.UpdateProfile("Alice", "Smith", "alice@example.com"))

	saved, err := svc.Update(context.Background(), "alice", updated)
	require.NoError(t, err)
	require.Equal(t, int64(7), saved.ID)
	require.Equal(t, "alice", saved.Username)
	require.Equal(t, "Smith", saved.Surname)
}

func TestDelete_ClearsSessions(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionStore()
	svc := NewService(repo, sessions)

	user, err := domain.NewUser(1, "alice", "secret", domain.RoleCustomer)
	require.NoError(t, err)
	_, err = svc.CreateUser(context.Background(), user)
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "alice"))
	require.Empty(t, sessions.byUser)
	_, err = svc.GetByUsername(context.Background(), "alice")
	require.ErrorIs(t, err, ports.ErrNotFound)
}
