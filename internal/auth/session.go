package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"secretgate/internal/logging"
	"secretgate/internal/user"
)

// Sessions binds browser conversations to logged-in users. A session is a
// PASETO token in a cookie; resolving it verifies the token, checks the
// revocation denylist and loads the user record.
type Sessions struct {
	tokens       TokenService
	store        SessionStore
	users        UserStore
	logger       *logging.Logger
	cookieName   string
	ttl          time.Duration
	isProduction bool
}

func NewSessions(
	tokens TokenService,
	store SessionStore,
	users UserStore,
	logger *logging.Logger,
	cookieName string,
	ttl time.Duration,
	isProduction bool,
) *Sessions {
	return &Sessions{
		tokens:       tokens,
		store:        store,
		users:        users,
		logger:       logger,
		cookieName:   cookieName,
		ttl:          ttl,
		isProduction: isProduction,
	}
}

// Issue starts a session for the user and sets the session cookie
func (s *Sessions) Issue(w http.ResponseWriter, u *user.User) error {
	token, err := s.tokens.CreateToken(u.ID, s.ttl)
	if err != nil {
		return fmt.Errorf("failed to create session token: %w", err)
	}

	SetSessionCookie(w, s.cookieName, token, s.isProduction, s.ttl)
	return nil
}

// Resolve returns the user the request's session belongs to, or nil when the
// caller is anonymous. An absent, invalid, expired or revoked token all
// resolve to anonymous rather than an error; only storage failures error.
func (s *Sessions) Resolve(r *http.Request) (*user.User, error) {
	token := GetSessionToken(r, s.cookieName)
	if token == "" {
		return nil, nil
	}

	claims, err := s.tokens.VerifyToken(token)
	if err != nil {
		return nil, nil
	}

	revoked, err := s.store.IsRevoked(r.Context(), claims.TokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to check session revocation: %w", err)
	}
	if revoked {
		return nil, nil
	}

	u, err := s.users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// Token outlived the user record
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}

	return u, nil
}

// Clear ends the request's session: the token id goes on the revocation
// denylist for the token's remaining lifetime and the cookie is expired.
func (s *Sessions) Clear(w http.ResponseWriter, r *http.Request) {
	if token := GetSessionToken(r, s.cookieName); token != "" {
		if claims, err := s.tokens.VerifyToken(token); err == nil {
			if err := s.store.Revoke(r.Context(), claims.TokenID, time.Until(claims.ExpiresAt)); err != nil {
				// Still clear the cookie; the token dies at its natural expiry
				s.logger.Warn("failed to revoke session token", "error", err.Error())
			}
		}
	}

	ClearSessionCookie(w, s.cookieName)
}
