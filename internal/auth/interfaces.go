package auth

import (
	"context"
	"time"

	"secretgate/internal/user"
)

// UserStore defines the user persistence operations the auth layer needs.
// Implemented by user.Repository.
type UserStore interface {
	Create(ctx context.Context, email, passwordHash, name string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

// TokenService defines the interface for session token creation and validation.
// Implemented by PasetoService (PASETO v4.local).
type TokenService interface {
	CreateToken(userID int64, duration time.Duration) (string, error)
	VerifyToken(tokenStr string) (*SessionClaims, error)
}

// SessionStore tracks revoked session token ids so logout invalidates a token
// before its natural expiry.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
