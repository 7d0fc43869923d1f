package session

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/solobill/solobill/internal/auth/domain"
	"github.com/solobill/solobill/internal/clock"
	"github.com/solobill/solobill/internal/config"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Cfg   config.Config
	GenID *snowflake.Node
	Clock clock.Clock
}

// Manager resolves and mints session tokens against the sessions table.
type Manager struct {
	db    *gorm.DB
	genID *snowflake.Node
	clock clock.Clock
	ttl   time.Duration
}

func NewManager(p Params) domain.Service {
	ttl := time.Duration(p.Cfg.SessionTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &Manager{
		db:    p.DB,
		genID: p.GenID,
		clock: p.Clock,
		ttl:   ttl,
	}
}

func (m *Manager) Authenticate(ctx context.Context, rawToken string) (*domain.Session, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return nil, domain.ErrInvalidSession
	}

	var session domain.Session
	err := m.db.WithContext(ctx).Raw(
		`SELECT id, user_id, token, expires_at, created_at
		 FROM sessions WHERE token = ?`,
		rawToken,
	).Scan(&session).Error
	if err != nil {
		return nil, err
	}
	if session.ID == 0 {
		return nil, domain.ErrInvalidSession
	}
	if session.ExpiresAt.Before(m.clock.Now()) {
		return nil, domain.ErrSessionExpired
	}

	return &session, nil
}

func (m *Manager) Issue(ctx context.Context, userID snowflake.ID) (*domain.Session, error) {
	if userID == 0 {
		return nil, domain.ErrInvalidSession
	}

	now := m.clock.Now()
	session := domain.Session{
		ID:        m.genID.Generate(),
		UserID:    userID,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(m.ttl),
		CreatedAt: now,
	}

	err := m.db.WithContext(ctx).Exec(
		`INSERT INTO sessions (id, user_id, token, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		session.ID,
		session.UserID,
		session.Token,
		session.ExpiresAt,
		session.CreatedAt,
	).Error
	if err != nil {
		return nil, err
	}

	return &session, nil
}
