package session

import (
	"encoding/json"
	"errors"
	"sync"

	"syndiceasy/internal/core/domain"
)

// Session errors
var (
	ErrInvalidSession  = errors.New("invalid session payload")
	ErrStaleGeneration = errors.New("stale session generation")
)

// State is the authentication state of a session.
type State string

const (
	LoggedOut State = "LOGGED_OUT"
	LoggedIn  State = "LOGGED_IN"
)

// UserRecord is the immutable user snapshot carried by a logged-in session.
type UserRecord struct {
	ID       uint        `json:"id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	Gender   string      `json:"gender,omitempty"`
}

// Session is a tagged union: LoggedOut carries nothing, LoggedIn carries
// a user record and an access token. Any other combination is rejected at
// the store boundary.
type Session struct {
	State       State       `json:"state"`
	User        *UserRecord `json:"user,omitempty"`
	AccessToken string      `json:"access_token,omitempty"`
}

// Empty returns the logged-out session value.
func Empty() Session {
	return Session{State: LoggedOut}
}

// Authenticated builds a logged-in session value.
func Authenticated(user UserRecord, accessToken string) Session {
	return Session{State: LoggedIn, User: &user, AccessToken: accessToken}
}

// Validate enforces the tagged-union shape.
func (s Session) Validate() error {
	switch s.State {
	case LoggedOut:
		if s.User != nil || s.AccessToken != "" {
			return ErrInvalidSession
		}
	case LoggedIn:
		if s.User == nil || s.AccessToken == "" || !s.User.Role.Valid() {
			return ErrInvalidSession
		}
	default:
		return ErrInvalidSession
	}
	return nil
}

// IsLoggedIn reports whether the session carries an authenticated user.
func (s Session) IsLoggedIn() bool {
	return s.State == LoggedIn && s.User != nil
}

// Role returns the session role, or the empty role when logged out.
func (s Session) Role() domain.Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// Persistence stores the serialized session and the preferred language code.
// Both live under a single key each.
type Persistence interface {
	SaveSession(payload []byte) error
	LoadSession() ([]byte, error)
	EraseSession() error
	SaveLanguage(code string) error
	LoadLanguage() (string, error)
}

// Store is the process-wide session holder. All mutation goes through Set
// and Clear; every mutation bumps a monotonic generation counter so that a
// late-resolving refresh can never resurrect a cleared session.
type Store struct {
	mu      sync.RWMutex
	current Session
	gen     uint64
	persist Persistence
}

// NewStore creates a store hydrated from persisted state when available.
// A missing or corrupt persisted session hydrates as logged out.
func NewStore(persist Persistence) *Store {
	s := &Store{current: Empty(), persist: persist}
	if persist == nil {
		return s
	}
	payload, err := persist.LoadSession()
	if err != nil || len(payload) == 0 {
		return s
	}
	var restored Session
	if err := json.Unmarshal(payload, &restored); err != nil {
		return s
	}
	if restored.Validate() != nil {
		return s
	}
	s.current = restored
	return s
}

// Get returns the current session and its generation.
func (s *Store) Get() (Session, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.gen
}

// Current returns only the session value.
func (s *Store) Current() Session {
	cur, _ := s.Get()
	return cur
}

// Set replaces the session if gen still matches the current generation.
// Callers read the generation with Get before starting an async exchange
// and pass it back here; a logout in between bumps the generation and the
// stale write is rejected with ErrStaleGeneration.
func (s *Store) Set(gen uint64, next Session) error {
	if err := next.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return ErrStaleGeneration
	}

	s.current = next
	s.gen++
	s.persistLocked()
	return nil
}

// Clear resets to logged out, erases the persisted copy and bumps the
// generation so in-flight writes are discarded.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = Empty()
	s.gen++
	if s.persist != nil {
		_ = s.persist.EraseSession()
	}
}

// Language returns the persisted UI language code, defaulting to "fr".
func (s *Store) Language() string {
	if s.persist == nil {
		return "fr"
	}
	code, err := s.persist.LoadLanguage()
	if err != nil || code == "" {
		return "fr"
	}
	return code
}

// SetLanguage persists the preferred UI language code.
func (s *Store) SetLanguage(code string) error {
	if s.persist == nil {
		return nil
	}
	return s.persist.SaveLanguage(code)
}

func (s *Store) persistLocked() {
	if s.persist == nil {
		return
	}
	payload, err := json.Marshal(s.current)
	if err != nil {
		return
	}
	_ = s.persist.SaveSession(payload)
}
