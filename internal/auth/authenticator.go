package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"visitor-backend/internal/logging"
	"visitor-backend/internal/navigation"
	"visitor-backend/internal/session"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type Options struct {
	Secret   string
	TokenTTL time.Duration
	// Delay is waited before every login attempt resolves.
	Delay time.Duration
	Now   func() time.Time
}

type Authenticator struct {
	dir      *Directory
	sessions session.Store
	secret   []byte
	tokenTTL time.Duration
	delay    time.Duration
	now      func() time.Time
}

func NewAuthenticator(dir *Directory, sessions session.Store, opts Options) *Authenticator {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Authenticator{
		dir:      dir,
		sessions: sessions,
		secret:   []byte(opts.Secret),
		tokenTTL: ttl,
		delay:    opts.Delay,
		now:      now,
	}
}

func (a *Authenticator) wait(ctx context.Context) error {
	if a.delay <= 0 {
		return nil
	}
	t := time.NewTimer(a.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Login creates and persists a session for a matching email and password.
// A failed attempt leaves every existing session untouched.
func (a *Authenticator) Login(ctx context.Context, email, password string) (*session.Session, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}

	ident, ok := a.dir.Match(email, password)
	if !ok {
		logging.Info("Login rejected", zap.String("email", normalizeEmail(email)))
		return nil, ErrInvalidCredentials
	}

	s := session.FromIdentity(uuid.NewString(), ident, navigation.ViewDashboard, a.now())
	if err := a.sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	logging.Info("Login succeeded",
		zap.String("userID", s.UserID),
		zap.String("role", string(s.Role)),
		zap.String("sessionID", s.ID))
	return s, nil
}

func (a *Authenticator) IssueToken(s *session.Session) (string, error) {
	return GenerateToken(a.secret, s, a.tokenTTL, a.now())
}

// Restore verifies the token and loads the stored session it points to.
func (a *Authenticator) Restore(ctx context.Context, token string) (*session.Session, error) {
	claims, err := ParseToken(a.secret, token)
	if err != nil {
		return nil, err
	}

	s, err := a.sessions.Load(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if s.UserID != claims.UserID {
		return nil, ErrInvalidToken
	}
	return s, nil
}

func (a *Authenticator) Logout(ctx context.Context, sessionID string) error {
	if err := a.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	logging.Info("Logged out", zap.String("sessionID", sessionID))
	return nil
}
