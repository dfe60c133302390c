package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"lawfirm-cms/internal/cache"
	"lawfirm-cms/internal/model"
	"lawfirm-cms/pkg/apierror"
)

type fakeUserStore struct {
	mu        sync.Mutex
	users     map[string]*model.User
	lockCalls int
}

func newFakeUserStore(users ...model.User) *fakeUserStore {
	s := &fakeUserStore{users: map[string]*model.User{}}
	for i := range users {
		u := users[i]
		s.users[u.ID] = &u
	}
	return s
}

func (s *fakeUserStore) FindByID(_ context.Context, id string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return *u, nil
}

func (s *fakeUserStore) FindByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return *u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (s *fakeUserStore) RecordFailure(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return 0, model.ErrUserNotFound
	}
	u.LoginAttempts++
	return u.LoginAttempts, nil
}

func (s *fakeUserStore) LockAccount(_ context.Context, userID string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return model.ErrUserNotFound
	}
	u.LockedUntil = &until
	s.lockCalls++
	return nil
}

func (s *fakeUserStore) RecordSuccess(_ context.Context, userID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return model.ErrUserNotFound
	}
	u.LoginAttempts = 0
	u.LockedUntil = nil
	u.LastLogin = &at
	return nil
}

func testUser(t *testing.T, username string, password string, role string) model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	now := time.Now().UTC()
	return model.User{
		ID:           "u-" + username,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func newTestAuthService(t *testing.T, store *fakeUserStore, ttl time.Duration) *AuthService {
	t.Helper()

	svc, err := NewAuthService(store, cache.New(time.Minute), "test-secret", ttl, 5, 15*time.Minute)
	require.NoError(t, err)
	return svc
}

func errorCode(t *testing.T, err error) string {
	t.Helper()

	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr), "expected a classified error, got %v", err)
	return apiErr.Code
}

func TestAuthenticateSuccess(t *testing.T) {
	store := newFakeUserStore(testUser(t, "alice", "s3cret", "admin"))
	svc := newTestAuthService(t, store, time.Hour)

	result, err := svc.Authenticate(context.Background(), "alice", "s3cret", "10.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, int64(3600), result.ExpiresIn)
	assert.Equal(t, "alice", result.User.Username)
	assert.Equal(t, "admin", result.User.Role)

	claims, err := svc.VerifyToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-alice", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.Greater(t, claims.Expiry, claims.IssuedAt)

	stored, err := store.FindByID(context.Background(), "u-alice")
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLogin)
	assert.Zero(t, stored.LoginAttempts)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	store := newFakeUserStore(testUser(t, "alice", "s3cret", "admin"))
	svc := newTestAuthService(t, store, time.Hour)

	_, err := svc.Authenticate(context.Background(), "alice", "nope", "10.0.0.1")
	require.Error(t, err)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, err))
}

func TestAuthenticateUnknownUserSameError(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(t, store, time.Hour)

	_, err := svc.Authenticate(context.Background(), "ghost", "whatever", "10.0.0.1")
	require.Error(t, err)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, err))
}

func TestAuthenticateLocksAccountAfterMaxFailures(t *testing.T) {
	store := newFakeUserStore(testUser(t, "alice", "s3cret", "admin"))
	svc := newTestAuthService(t, store, time.Hour)

	// Each failure comes from a fresh IP so the account lock, not the
	// per-IP throttle, is what trips.
	ips := []string{"10.0.0.1", "10.0.0.2", "10.0.0.3", "10.0.0.4", "10.0.0.5"}
	for _, ip := range ips {
		_, err := svc.Authenticate(context.Background(), "alice", "nope", ip)
		require.Error(t, err)
		assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, err))
	}

	assert.Equal(t, 1, store.lockCalls)

	// Even the right password is rejected while the lock holds.
	_, err := svc.Authenticate(context.Background(), "alice", "s3cret", "10.0.0.6")
	require.Error(t, err)
	assert.Equal(t, "ACCOUNT_LOCKED", errorCode(t, err))
}

func TestAuthenticateThrottlesByIP(t *testing.T) {
	store := newFakeUserStore(testUser(t, "alice", "s3cret", "admin"))
	svc := newTestAuthService(t, store, time.Hour)

	// Hammer unknown accounts from one IP; the account lockout never
	// engages because there is no account.
	for i := 0; i < 5; i++ {
		_, err := svc.Authenticate(context.Background(), "ghost", "nope", "172.16.0.9")
		require.Error(t, err)
	}

	_, err := svc.Authenticate(context.Background(), "alice", "s3cret", "172.16.0.9")
	require.Error(t, err)
	assert.Equal(t, "RATE_LIMITED", errorCode(t, err))

	// A different IP is unaffected.
	_, err = svc.Authenticate(context.Background(), "alice", "s3cret", "172.16.0.10")
	require.NoError(t, err)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserStore(), time.Hour)

	_, err := svc.VerifyToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, "TOKEN_INVALID", errorCode(t, err))
}

func TestVerifyTokenRejectsForeignSignature(t *testing.T) {
	store := newFakeUserStore(testUser(t, "alice", "s3cret", "admin"))
	issuer := newTestAuthService(t, store, time.Hour)

	result, err := issuer.Authenticate(context.Background(), "alice", "s3cret", "10.0.0.1")
	require.NoError(t, err)

	other, err := NewAuthService(store, cache.New(time.Minute), "different-secret", time.Hour, 5, 15*time.Minute)
	require.NoError(t, err)

	_, err = other.VerifyToken(result.Token)
	require.Error(t, err)
	assert.Equal(t, "TOKEN_INVALID", errorCode(t, err))
}

func TestLogoutRevokesToken(t *testing.T) {
	store := newFakeUserStore(testUser(t, "alice", "s3cret", "admin"))
	svc := newTestAuthService(t, store, time.Hour)

	result, err := svc.Authenticate(context.Background(), "alice", "s3cret", "10.0.0.1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(result.Token))

	_, err = svc.VerifyToken(result.Token)
	require.Error(t, err)
	assert.Equal(t, "TOKEN_REVOKED", errorCode(t, err))

	// Revoking again stays a no-op.
	require.NoError(t, svc.Logout(result.Token))
}

func TestLogoutExpiredTokenIsNoop(t *testing.T) {
	store := newFakeUserStore(testUser(t, "alice", "s3cret", "admin"))
	svc := newTestAuthService(t, store, time.Millisecond)

	result, err := svc.Authenticate(context.Background(), "alice", "s3cret", "10.0.0.1")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = svc.VerifyToken(result.Token)
	require.Error(t, err)
	assert.Equal(t, "TOKEN_EXPIRED", errorCode(t, err))

	require.NoError(t, svc.Logout(result.Token))
}

func TestRefreshRotatesToken(t *testing.T) {
	store := newFakeUserStore(testUser(t, "alice", "s3cret", "admin"))
	svc := newTestAuthService(t, store, time.Hour)

	first, err := svc.Authenticate(context.Background(), "alice", "s3cret", "10.0.0.1")
	require.NoError(t, err)

	// Role changes after issuance land in the refreshed token.
	store.mu.Lock()
	store.users["u-alice"].Role = "editor"
	store.mu.Unlock()

	refreshed, err := svc.Refresh(context.Background(), first.Token)
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, refreshed.Token)
	assert.Equal(t, "editor", refreshed.User.Role)

	_, err = svc.VerifyToken(first.Token)
	require.Error(t, err)
	assert.Equal(t, "TOKEN_REVOKED", errorCode(t, err))

	claims, err := svc.VerifyToken(refreshed.Token)
	require.NoError(t, err)
	assert.Equal(t, "editor", claims.Role)
}

func TestAuthorize(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserStore(), time.Hour)

	claims := &model.AuthClaims{UserID: "u-1", Role: "editor"}

	require.NoError(t, svc.Authorize(claims, "admin", "editor"))

	err := svc.Authorize(claims, "admin")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", errorCode(t, err))
}

func TestGetUserByIDUsesCache(t *testing.T) {
	store := newFakeUserStore(testUser(t, "alice", "s3cret", "admin"))
	svc := newTestAuthService(t, store, time.Hour)

	first, err := svc.GetUserByID(context.Background(), "u-alice")
	require.NoError(t, err)

	// A store-side change is invisible until the cache entry goes away.
	store.mu.Lock()
	store.users["u-alice"].Role = "editor"
	store.mu.Unlock()

	second, err := svc.GetUserByID(context.Background(), "u-alice")
	require.NoError(t, err)
	assert.Equal(t, first.Role, second.Role)
}
