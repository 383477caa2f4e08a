package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repoStub struct {
	byEmail map[string]*User
	byID    map[string]*User

	created     *User
	savedTokens *OAuthTokens
}

func newRepoStub(users ...*User) *repoStub {
	r := &repoStub{
		byEmail: make(map[string]*User),
		byID:    make(map[string]*User),
	}
	for _, u := range users {
		r.byEmail[u.Email] = u
		r.byID[u.ID] = u
	}
	return r
}

func (r *repoStub) GetByEmail(ctx context.Context, email string) (*User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, ErrNotFound
}

func (r *repoStub) GetByID(ctx context.Context, id string) (*User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, ErrNotFound
}

func (r *repoStub) Create(ctx context.Context, u *User) error {
	u.ID = "new-id"
	u.CreatedAt = time.Now()
	r.created = u
	r.byEmail[u.Email] = u
	r.byID[u.ID] = u
	return nil
}

func (r *repoStub) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	return nil
}

func (r *repoStub) UpdateOAuthTokens(ctx context.Context, id string, tokens OAuthTokens) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	r.savedTokens = &tokens
	return nil
}

type hasherStub struct{}

func (hasherStub) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

func (hasherStub) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return errors.New("mismatch")
	}
	return nil
}

func TestRegister(t *testing.T) {
	repo := newRepoStub()
	svc := NewService(repo, hasherStub{})

	u, err := svc.Register(context.Background(), "  Alice@Example.com ", "secret-password", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email, "email is normalized")
	assert.Equal(t, "hashed:secret-password", u.PasswordHash)
	assert.True(t, u.IsActive)
	require.NotNil(t, repo.created)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	existing := &User{ID: "u1", Email: "alice@example.com"}
	svc := NewService(newRepoStub(existing), hasherStub{})

	_, err := svc.Register(context.Background(), "alice@example.com", "secret-password", "Alice")
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestRegisterShortPassword(t *testing.T) {
	svc := NewService(newRepoStub(), hasherStub{})

	_, err := svc.Register(context.Background(), "alice@example.com", "short", "Alice")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = svc.Register(context.Background(), "   ", "secret-password", "Alice")
	assert.ErrorIs(t, err, ErrEmailRequired)
}

func TestLogin(t *testing.T) {
	existing := &User{
		ID:           "u1",
		Email:        "alice@example.com",
		PasswordHash: "hashed:secret-password",
		IsActive:     true,
	}
	svc := NewService(newRepoStub(existing), hasherStub{})

	u, err := svc.Login(context.Background(), "alice@example.com", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	_, err = svc.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "secret-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	existing := &User{
		ID:           "u1",
		Email:        "alice@example.com",
		PasswordHash: "hashed:secret-password",
		IsActive:     false,
	}
	svc := NewService(newRepoStub(existing), hasherStub{})

	_, err := svc.Login(context.Background(), "alice@example.com", "secret-password")
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestLinkCalendarAccount(t *testing.T) {
	existing := &User{ID: "u1", Email: "alice@example.com", IsActive: true}
	repo := newRepoStub(existing)
	svc := NewService(repo, hasherStub{})

	tokens := OAuthTokens{
		Provider:     "google",
		ProviderUID:  "uid-1",
		AccessToken:  "access",
		RefreshToken: "refresh",
		Expiry:       time.Now().Add(time.Hour),
	}
	require.NoError(t, svc.LinkCalendarAccount(context.Background(), "u1", tokens))
	require.NotNil(t, repo.savedTokens)
	assert.Equal(t, "google", repo.savedTokens.Provider)

	err := svc.LinkCalendarAccount(context.Background(), "u1", OAuthTokens{})
	assert.ErrorIs(t, err, ErrNoCalendarToken)
}

func TestCalendarToken(t *testing.T) {
	access := "access"
	refresh := "refresh"
	expiry := time.Now().Add(time.Hour)

	u := &User{AccessToken: &access, RefreshToken: &refresh, TokenExpiry: &expiry}
	require.True(t, u.HasCalendarToken())

	token := u.CalendarToken()
	assert.Equal(t, "access", token.AccessToken)
	assert.Equal(t, "refresh", token.RefreshToken)
	assert.Equal(t, expiry, token.Expiry)

	bare := &User{}
	assert.False(t, bare.HasCalendarToken())
	assert.Zero(t, bare.CalendarToken())
}
