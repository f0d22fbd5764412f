package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/unionmaster/crm-console/internal/api"
	"github.com/unionmaster/crm-console/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const recordID = 1

var (
	errMissingDatabase = errors.New("session: database handle is required")

	// ErrNoSession indicates that no authenticated session exists. Callers
	// that require one (the realtime connector above all) treat this as a
	// programming error, not a user-facing condition.
	ErrNoSession = errors.New("session: not authenticated")
)

// AuthError reports a login rejected by the backend. It is terminal for
// that attempt; the caller re-prompts rather than retrying.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return "authentication failed: " + e.Message
}

// Session pairs the bearer token with the profile of the operator it was
// issued to. Token present ⇔ user present.
type Session struct {
	Token string
	User  domain.User
}

// Authenticator performs the credential exchange against the backend.
// *api.Client satisfies it.
type Authenticator interface {
	Login(ctx context.Context, credentials domain.Credentials) (string, domain.User, error)
}

// StoreConfig describes the dependencies of the persisted session store.
type StoreConfig struct {
	Database *gorm.DB
	Logger   *zap.Logger
}

// Store owns the durable session state. It caches the current session in
// memory and keeps the SQLite row as the restart-surviving copy.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger

	mu      sync.RWMutex
	current *Session
}

// NewStore constructs the session store and loads any persisted session.
func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.Database == nil {
		return nil, errMissingDatabase
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	store := &Store{db: cfg.Database, logger: logger}
	if err := store.restore(); err != nil {
		return nil, err
	}
	return store, nil
}

// Login validates the credentials client-side, exchanges them with the
// backend, and persists the resulting session. Bad credentials surface as
// *AuthError and leave both memory and storage untouched.
func (s *Store) Login(ctx context.Context, auth Authenticator, credentials domain.Credentials) (Session, error) {
	if err := domain.ValidateDraft(credentials); err != nil {
		return Session{}, err
	}

	token, user, err := auth.Login(ctx, credentials)
	if err != nil {
		var httpErr *api.HTTPError
		if errors.As(err, &httpErr) && httpErr.Status >= 400 && httpErr.Status < 500 {
			return Session{}, &AuthError{Message: httpErr.Message}
		}
		return Session{}, err
	}

	sess := Session{Token: token, User: user}
	if err := s.persist(sess); err != nil {
		return Session{}, err
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()

	s.logger.Info("session established",
		zap.Int64("user_id", user.ID),
		zap.String("role", user.Role.String()))
	return sess, nil
}

// Logout clears the persisted session. Clearing an already-empty store is
// a no-op.
func (s *Store) Logout() error {
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&Record{}, "id = ?", recordID).Error
	}); err != nil {
		return fmt.Errorf("session: clear failed: %w", err)
	}

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	s.logger.Info("session cleared")
	return nil
}

// Current returns the active session, or ErrNoSession when none exists.
func (s *Store) Current() (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Session{}, ErrNoSession
	}
	return *s.current, nil
}

// Token returns the bearer token of the active session, or the empty
// string when unauthenticated. It is the api.Client token source.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

func (s *Store) persist(sess Session) error {
	userJSON, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("session: encode user: %w", err)
	}

	// Token and user are replaced as a pair inside one transaction.
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&Record{}, "id = ?", recordID).Error; err != nil {
			return err
		}
		return tx.Create(&Record{
			ID:       recordID,
			Token:    sess.Token,
			UserJSON: string(userJSON),
		}).Error
	})
}

func (s *Store) restore() error {
	var record Record
	err := s.db.First(&record, "id = ?", recordID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("session: restore failed: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal([]byte(record.UserJSON), &user); err != nil {
		// A corrupt row is unrecoverable; drop it rather than fail startup.
		s.logger.Warn("discarding corrupt session record", zap.Error(err))
		return s.db.Delete(&Record{}, "id = ?", recordID).Error
	}

	s.current = &Session{Token: record.Token, User: user}
	return nil
}

// TokenExpiry reports when the bearer token expires. The client holds no
// signing secret, so the claims are read without signature verification;
// the backend remains the authority on rejection. ok is false when the
// token is opaque or carries no expiry.
func TokenExpiry(token string) (time.Time, bool) {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
