package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// Authenticate resolves a raw session token to its owning user.
	Authenticate(ctx context.Context, rawToken string) (*Session, error)
	// Issue mints a session for a user. The login flow itself lives
	// outside this service.
	Issue(ctx context.Context, userID snowflake.ID) (*Session, error)
}

var (
	ErrInvalidSession = errors.New("invalid session")
	ErrSessionExpired = errors.New("session expired")
)
