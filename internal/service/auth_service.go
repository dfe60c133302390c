package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"lawfirm-cms/internal/cache"
	"lawfirm-cms/internal/model"
	"lawfirm-cms/pkg/apierror"
)

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	RecordFailure(ctx context.Context, userID string) (int, error)
	LockAccount(ctx context.Context, userID string, until time.Time) error
	RecordSuccess(ctx context.Context, userID string, at time.Time) error
}

const (
	userCacheTTL     = 5 * time.Minute
	revokedKeyPrefix = "auth:revoked:"
)

type AuthService struct {
	users         UserStore
	cache         *cache.Cache
	jwtSecret     []byte
	tokenTTL      time.Duration
	maxAttempts   int
	lockoutWindow time.Duration
	attempts      *attemptTracker
}

func NewAuthService(users UserStore, c *cache.Cache, jwtSecret string, tokenTTL time.Duration, maxAttempts int, lockoutWindow time.Duration) (*AuthService, error) {
	if strings.TrimSpace(jwtSecret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if lockoutWindow <= 0 {
		lockoutWindow = 15 * time.Minute
	}

	return &AuthService{
		users:         users,
		cache:         c,
		jwtSecret:     []byte(jwtSecret),
		tokenTTL:      tokenTTL,
		maxAttempts:   maxAttempts,
		lockoutWindow: lockoutWindow,
		attempts:      newAttemptTracker(maxAttempts, lockoutWindow),
	}, nil
}

func userKeyByName(username string) string {
	return "user:name:" + strings.ToLower(strings.TrimSpace(username))
}

func userKeyByID(id string) string {
	return "user:id:" + id
}

func revokedKey(token string) string {
	return revokedKeyPrefix + token
}

// Authenticate verifies credentials and issues a signed bearer token.
// The per-IP lockout check runs before any database access; the error for
// unknown users and wrong passwords is identical on purpose.
func (s *AuthService) Authenticate(ctx context.Context, username string, password string, sourceIP string) (model.LoginResult, error) {
	if locked, remaining := s.attempts.locked(sourceIP); locked {
		return model.LoginResult{}, rateLimitedError(remaining)
	}

	username = strings.TrimSpace(username)
	user, err := cache.Wrap(ctx, s.cache, userKeyByName(username), userCacheTTL,
		func(ctx context.Context) (model.User, error) {
			return s.users.FindByUsername(ctx, username)
		})
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			s.attempts.fail(sourceIP)
			return model.LoginResult{}, invalidCredentialsError()
		}
		return model.LoginResult{}, err
	}

	now := time.Now().UTC()
	if user.LockedUntil != nil && user.LockedUntil.After(now) {
		return model.LoginResult{}, accountLockedError(user.LockedUntil.Sub(now))
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.attempts.fail(sourceIP)
		s.invalidateUser(user)

		attempts, ferr := s.users.RecordFailure(ctx, user.ID)
		if ferr != nil {
			return model.LoginResult{}, ferr
		}
		if attempts >= s.maxAttempts {
			if lerr := s.users.LockAccount(ctx, user.ID, now.Add(s.lockoutWindow)); lerr != nil {
				return model.LoginResult{}, lerr
			}
		}

		return model.LoginResult{}, invalidCredentialsError()
	}

	if err := s.users.RecordSuccess(ctx, user.ID, now); err != nil {
		return model.LoginResult{}, err
	}
	s.attempts.reset(sourceIP)
	s.invalidateUser(user)

	token, err := s.issueToken(user, now)
	if err != nil {
		return model.LoginResult{}, err
	}

	return model.LoginResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.tokenTTL.Seconds()),
		User:      user.Public(),
	}, nil
}

// VerifyToken checks signature, expiry and the revocation marker, in that
// order, and returns the decoded claims.
func (s *AuthService) VerifyToken(tokenString string) (*model.AuthClaims, error) {
	claims, err := s.decode(tokenString)
	if err != nil {
		return nil, err
	}

	if _, revoked := s.cache.Get(revokedKey(tokenString)); revoked {
		return nil, tokenError("TOKEN_REVOKED", "token has been revoked")
	}

	return claims, nil
}

// Authorize checks the claims role against the allowed set.
func (s *AuthService) Authorize(claims *model.AuthClaims, allowedRoles ...string) error {
	for _, role := range allowedRoles {
		if strings.EqualFold(claims.Role, role) {
			return nil
		}
	}
	return apierror.New("FORBIDDEN", "insufficient permissions", claims.Role, http.StatusForbidden)
}

// Logout stores a revocation marker keyed by the exact token value, with a
// TTL equal to the token's remaining lifetime. Logging out an already
// expired token is a no-op success.
func (s *AuthService) Logout(tokenString string) error {
	claims, err := s.decode(tokenString)
	if err != nil {
		if errors.Is(err, errTokenExpired) {
			return nil
		}
		return err
	}

	s.revoke(tokenString, claims)
	return nil
}

// Refresh rotates a currently valid token: the user record is re-read from
// the store so role changes since issuance take effect, the old token is
// revoked exactly as Logout does, and a fresh token is returned.
func (s *AuthService) Refresh(ctx context.Context, tokenString string) (model.LoginResult, error) {
	claims, err := s.VerifyToken(tokenString)
	if err != nil {
		return model.LoginResult{}, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return model.LoginResult{}, err
	}

	now := time.Now().UTC()
	token, err := s.issueToken(user, now)
	if err != nil {
		return model.LoginResult{}, err
	}

	s.revoke(tokenString, claims)
	s.invalidateUser(user)

	return model.LoginResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.tokenTTL.Seconds()),
		User:      user.Public(),
	}, nil
}

// GetUserByID returns the public projection for the subject of a token.
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (model.AuthUser, error) {
	user, err := cache.Wrap(ctx, s.cache, userKeyByID(userID), userCacheTTL,
		func(ctx context.Context) (model.User, error) {
			return s.users.FindByID(ctx, userID)
		})
	if err != nil {
		return model.AuthUser{}, err
	}
	return user.Public(), nil
}

func (s *AuthService) CacheStats() cache.Stats {
	return s.cache.Stats()
}

func (s *AuthService) issueToken(user model.User, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) decode(tokenString string) (*model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errTokenExpired
		}
		return nil, tokenError("TOKEN_INVALID", "token is malformed or has a bad signature")
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, tokenError("TOKEN_INVALID", "token carries no claims")
	}

	claims := &model.AuthClaims{}
	claims.UserID, _ = claimsMap["sub"].(string)
	claims.Username, _ = claimsMap["username"].(string)
	claims.Role, _ = claimsMap["role"].(string)
	if iat, ok := claimsMap["iat"].(float64); ok {
		claims.IssuedAt = int64(iat)
	}
	if exp, ok := claimsMap["exp"].(float64); ok {
		claims.Expiry = int64(exp)
	}

	if claims.UserID == "" {
		return nil, tokenError("TOKEN_INVALID", "token subject is missing")
	}

	return claims, nil
}

func (s *AuthService) revoke(tokenString string, claims *model.AuthClaims) {
	remaining := time.Until(time.Unix(claims.Expiry, 0))
	if remaining <= 0 {
		return
	}
	s.cache.Set(revokedKey(tokenString), true, remaining)
}

func (s *AuthService) invalidateUser(user model.User) {
	s.cache.Delete(userKeyByID(user.ID))
	s.cache.Delete(userKeyByName(user.Username))
}

var errTokenExpired = apierror.New("TOKEN_EXPIRED", "token has expired", "", http.StatusUnauthorized)

func tokenError(code string, message string) error {
	return apierror.New(code, message, "", http.StatusUnauthorized)
}

func invalidCredentialsError() error {
	return apierror.New("INVALID_CREDENTIALS", "invalid username or password", "", http.StatusUnauthorized)
}

func accountLockedError(remaining time.Duration) error {
	return apierror.New("ACCOUNT_LOCKED",
		fmt.Sprintf("account is locked, try again in %d minutes", remainingMinutes(remaining)),
		"", http.StatusLocked)
}

func rateLimitedError(remaining time.Duration) error {
	return apierror.New("RATE_LIMITED",
		fmt.Sprintf("too many failed attempts, try again in %d minutes", remainingMinutes(remaining)),
		"", http.StatusTooManyRequests)
}

func remainingMinutes(d time.Duration) int {
	minutes := int((d + time.Minute - 1) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
