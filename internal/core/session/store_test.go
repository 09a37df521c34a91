package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"syndiceasy/internal/core/domain"
)

type memPersistence struct {
	session  []byte
	language string
}

func (m *memPersistence) SaveSession(payload []byte) error { m.session = payload; return nil }
func (m *memPersistence) LoadSession() ([]byte, error)     { return m.session, nil }
func (m *memPersistence) EraseSession() error              { m.session = nil; return nil }
func (m *memPersistence) SaveLanguage(code string) error   { m.language = code; return nil }
func (m *memPersistence) LoadLanguage() (string, error)    { return m.language, nil }

func testUser() UserRecord {
	return UserRecord{ID: 1, Username: "karim", Role: domain.RoleSyndic}
}

func TestStoreStartsLoggedOut(t *testing.T) {
	t.Parallel()

	store := NewStore(nil)
	cur, gen := store.Get()
	require.Equal(t, LoggedOut, cur.State)
	require.False(t, cur.IsLoggedIn())
	require.Equal(t, uint64(0), gen)
}

func TestSetValidatesTaggedUnion(t *testing.T) {
	t.Parallel()

	store := NewStore(nil)
	_, gen := store.Get()

	// logged-in without token is rejected
	user := testUser()
	err := store.Set(gen, Session{State: LoggedIn, User: &user})
	require.ErrorIs(t, err, ErrInvalidSession)

	// logged-out carrying a token is rejected
	err = store.Set(gen, Session{State: LoggedOut, AccessToken: "tok"})
	require.ErrorIs(t, err, ErrInvalidSession)

	// well-formed logged-in is accepted
	err = store.Set(gen, Authenticated(testUser(), "tok"))
	require.NoError(t, err)
	require.True(t, store.Current().IsLoggedIn())
}

func TestStaleWriteDiscardedAfterClear(t *testing.T) {
	t.Parallel()

	store := NewStore(nil)
	_, gen := store.Get()

	// an in-flight refresh captured gen, then the user logs out
	store.Clear()

	err := store.Set(gen, Authenticated(testUser(), "late-token"))
	require.ErrorIs(t, err, ErrStaleGeneration)
	require.False(t, store.Current().IsLoggedIn())
}

func TestGenerationAdvancesOnEveryMutation(t *testing.T) {
	t.Parallel()

	store := NewStore(nil)
	_, gen0 := store.Get()

	require.NoError(t, store.Set(gen0, Authenticated(testUser(), "t1")))
	_, gen1 := store.Get()
	require.Greater(t, gen1, gen0)

	// reusing a consumed generation fails
	err := store.Set(gen0, Authenticated(testUser(), "t2"))
	require.ErrorIs(t, err, ErrStaleGeneration)
}

func TestHydrationFromPersistence(t *testing.T) {
	t.Parallel()

	persist := &memPersistence{}
	store := NewStore(persist)
	_, gen := store.Get()
	require.NoError(t, store.Set(gen, Authenticated(testUser(), "tok")))

	restored := NewStore(persist)
	cur := restored.Current()
	require.True(t, cur.IsLoggedIn())
	require.Equal(t, "karim", cur.User.Username)
	require.Equal(t, domain.RoleSyndic, cur.Role())
}

func TestCorruptPersistedSessionHydratesLoggedOut(t *testing.T) {
	t.Parallel()

	persist := &memPersistence{session: []byte("{not json")}
	store := NewStore(persist)
	require.False(t, store.Current().IsLoggedIn())
}

func TestClearErasesPersistedCopy(t *testing.T) {
	t.Parallel()

	persist := &memPersistence{}
	store := NewStore(persist)
	_, gen := store.Get()
	require.NoError(t, store.Set(gen, Authenticated(testUser(), "tok")))
	require.NotEmpty(t, persist.session)

	store.Clear()
	require.Empty(t, persist.session)
	require.False(t, NewStore(persist).Current().IsLoggedIn())
}

func TestLanguageDefaultsAndPersists(t *testing.T) {
	t.Parallel()

	persist := &memPersistence{}
	store := NewStore(persist)
	require.Equal(t, "fr", store.Language())

	require.NoError(t, store.SetLanguage("ar"))
	require.Equal(t, "ar", store.Language())
}
