package auth

import (
	"context"
	"fmt"
	"time"

	"debt_ledger/internal/domain"
	"debt_ledger/internal/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionKeyPrefix namespaces session records in redis.
const SessionKeyPrefix = "session:"

// Session is the server-side state bound to a session cookie.
type Session struct {
	ID                 string    `json:"-"`
	UserID             uint      `json:"user_id"`
	Username           string    `json:"username"`
	IsAdmin            bool      `json:"is_admin"`
	MustChangePassword bool      `json:"must_change_password"`
	CreatedAt          time.Time `json:"created_at"`
}

// SessionStore keeps sessions in redis so any worker can serve any session.
type SessionStore struct {
	cache *utils.Cache[Session]
	ttl   time.Duration
}

// NewSessionStore creates a store whose records expire after ttl.
func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{cache: utils.NewCache[Session](rdb, SessionKeyPrefix), ttl: ttl}
}

// TTL is the lifetime of new sessions.
func (s *SessionStore) TTL() time.Duration { return s.ttl }

// Create issues a new session for user.
func (s *SessionStore) Create(ctx context.Context, user *domain.User) (*Session, error) {
	sess := &Session{
		ID:                 uuid.NewString(),
		UserID:             user.ID,
		Username:           user.Username,
		IsAdmin:            user.IsAdmin,
		MustChangePassword: user.MustChangePassword,
		CreatedAt:          time.Now().UTC(),
	}
	if err := s.cache.Set(ctx, sess.ID, sess, s.ttl); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return sess, nil
}

// Get loads a session; a missing or expired one is ErrUnauthorized.
func (s *SessionStore) Get(ctx context.Context, id string) (*Session, error) {
	sess, found, err := s.cache.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !found {
		return nil, domain.ErrUnauthorized
	}
	sess.ID = id
	return sess, nil
}

// Save rewrites a session without extending its expiry. A session that expired meanwhile is
// not recreated and yields ErrUnauthorized.
func (s *SessionStore) Save(ctx context.Context, sess *Session) error {
	found, err := s.cache.Replace(ctx, sess.ID, sess)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	if !found {
		return domain.ErrUnauthorized
	}
	return nil
}

// Delete drops a session.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// sync copies the current user flags into the session, reporting whether anything changed.
func (sess *Session) sync(user *domain.User) bool {
	changed := sess.IsAdmin != user.IsAdmin ||
		sess.MustChangePassword != user.MustChangePassword ||
		sess.Username != user.Username
	sess.IsAdmin = user.IsAdmin
	sess.MustChangePassword = user.MustChangePassword
	sess.Username = user.Username
	return changed
}
