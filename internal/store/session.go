// Package store implements the commerce state layer: session, cart and
// voucher stores as explicit constructed objects over durable key-value
// slots. Stores are injected into the transport layer, never ambient.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"serenityspa/internal/domain"
	"serenityspa/internal/pkg/task"
	"serenityspa/internal/storage"
)

// Session is the persisted record of a signed-in identity. At most one
// exists per client context.
type Session struct {
	User      domain.User `json:"user"`
	CreatedAt time.Time   `json:"created_at"`
}

// UserDirectory is the fixed directory sign-in matches against.
type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// ProfilePatch carries the fields UpdateProfile may shallow-merge.
// Empty fields are left untouched.
type ProfilePatch struct {
	Name      string `json:"name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type SessionStore struct {
	kv          storage.KV
	users       UserDirectory
	signInDelay time.Duration
	log         zerolog.Logger
}

func NewSessionStore(kv storage.KV, users UserDirectory, signInDelay time.Duration, log zerolog.Logger) *SessionStore {
	return &SessionStore{
		kv:          kv,
		users:       users,
		signInDelay: signInDelay,
		log:         log,
	}
}

func sessionKey(clientID string) string { return "session:" + clientID }

// SignIn matches email and password against the directory. The
// returned task resolves after the configured delay; a credential
// mismatch resolves to ErrInvalidCredentials and leaves no state
// behind. On success the session record is persisted under the
// client's slot.
func (s *SessionStore) SignIn(ctx context.Context, clientID, email, password string) *task.Task[*Session] {
	return task.Run(s.signInDelay, func() (*Session, error) {
		user, err := s.users.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrInvalidCredentials
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}

		user.PasswordHash = ""
		sess := &Session{User: *user, CreatedAt: time.Now()}
		if err := s.persist(ctx, clientID, sess); err != nil {
			return nil, err
		}
		return sess, nil
	})
}

// Load rehydrates the session for a client context. A missing slot
// means no session; an unparseable slot is discarded and also means no
// session, never an error surfaced to the user.
func (s *SessionStore) Load(ctx context.Context, clientID string) (*Session, error) {
	raw, ok, err := s.kv.Get(ctx, sessionKey(clientID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		s.log.Warn().Str("client_id", clientID).Err(err).Msg("discarding corrupt session record")
		_ = s.kv.Delete(ctx, sessionKey(clientID))
		return nil, nil
	}
	return &sess, nil
}

// IsAuthenticated is derived from record presence.
func (s *SessionStore) IsAuthenticated(ctx context.Context, clientID string) bool {
	sess, err := s.Load(ctx, clientID)
	return err == nil && sess != nil
}

// SignOut destroys the persisted identity. Absent sessions are a no-op.
func (s *SessionStore) SignOut(ctx context.Context, clientID string) error {
	return s.kv.Delete(ctx, sessionKey(clientID))
}

// UpdateProfile shallow-merges the patch into the current identity and
// re-persists it. Without a session it silently does nothing.
func (s *SessionStore) UpdateProfile(ctx context.Context, clientID string, patch ProfilePatch) (*Session, error) {
	sess, err := s.Load(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}

	if patch.Name != "" {
		sess.User.Name = patch.Name
	}
	if patch.Phone != "" {
		sess.User.Phone = patch.Phone
	}
	if patch.Address != "" {
		sess.User.Address = patch.Address
	}
	if patch.AvatarURL != "" {
		sess.User.AvatarURL = patch.AvatarURL
	}

	if err := s.persist(ctx, clientID, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *SessionStore) persist(ctx context.Context, clientID string, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.kv.Put(ctx, sessionKey(clientID), raw)
}
