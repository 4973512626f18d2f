package credstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/notesphere/cli/internal/client/models"
	"github.com/notesphere/cli/internal/common"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func testUser() *models.User {
	return &models.User{ID: "u1", Username: "alice", Email: "alice@example.com", College: "MIT"}
}

func TestStore_SaveAndCurrentToken(t *testing.T) {
	s := newTestStore(t)

	require.Empty(t, s.CurrentToken())
	require.False(t, s.IsAuthenticated())

	require.NoError(t, s.Save("tok-1", testUser(), time.Hour))
	require.Equal(t, "tok-1", s.CurrentToken())
	require.True(t, s.IsAuthenticated())

	u := s.CurrentUser()
	require.NotNil(t, u)
	require.Equal(t, "alice", u.Username)
}

func TestStore_SaveRejectsEmptyToken(t *testing.T) {
	s := newTestStore(t)
	err := s.Save("", testUser(), time.Hour)
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestStore_ExpiredTokenReadsAsAbsent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save("tok-1", testUser(), time.Hour))

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	require.Empty(t, s.CurrentToken())
	require.False(t, s.IsAuthenticated())
}

func TestStore_ExpiryCappedByJWTExpClaim(t *testing.T) {
	s := newTestStore(t)

	exp := time.Now().Add(10 * time.Minute)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)

	// ttl says 24h but the token itself dies in 10 minutes
	require.NoError(t, s.Save(tok, testUser(), 24*time.Hour))
	require.Equal(t, tok, s.CurrentToken())

	s.now = func() time.Time { return exp.Add(time.Second) }
	require.Empty(t, s.CurrentToken())
}

func TestStore_OpaqueTokenUsesTTL(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save("not-a-jwt", testUser(), time.Hour))
	require.Equal(t, "not-a-jwt", s.CurrentToken())
}

func TestStore_SessionSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, s.Save("tok-1", testUser(), time.Hour))

	s2, err := New(dir)
	require.NoError(t, err)
	require.Equal(t, "tok-1", s2.CurrentToken())
	require.Equal(t, "alice", s2.CurrentUser().Username)
}

func TestStore_CorruptFileReadsAsLoggedOut(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, s.Save("tok-1", testUser(), time.Hour))

	require.NoError(t, os.WriteFile(filepath.Join(dir, sessionFile), []byte("garbage"), 0o600))

	require.Empty(t, s.CurrentToken())
	require.Nil(t, s.CurrentUser())
	require.False(t, s.IsAuthenticated())
}

func TestStore_FileFromAnotherDeviceIsUnreadable(t *testing.T) {
	dirA := t.TempDir()
	a, err := New(dirA)
	require.NoError(t, err)
	require.NoError(t, a.Save("tok-1", testUser(), time.Hour))

	// copy the sealed session onto a store with a different device secret
	dirB := t.TempDir()
	b, err := New(dirB)
	require.NoError(t, err)
	sealed, err := os.ReadFile(filepath.Join(dirA, sessionFile))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dirB, sessionFile), sealed, 0o600))

	require.Empty(t, b.CurrentToken())
	require.Nil(t, b.CurrentUser())
}

func TestStore_CurrentUserRequiresIdentityFields(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save("tok-1", &models.User{ID: "u1"}, time.Hour))
	require.Nil(t, s.CurrentUser())
}

func TestStore_CurrentUserReturnsCopy(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save("tok-1", testUser(), time.Hour))

	u := s.CurrentUser()
	u.Username = "mallory"
	require.Equal(t, "alice", s.CurrentUser().Username)
}

func TestStore_UpdateUserKeepsToken(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save("tok-1", testUser(), time.Hour))

	updated := testUser()
	updated.College = "NIT"
	require.NoError(t, s.UpdateUser(updated))

	require.Equal(t, "tok-1", s.CurrentToken())
	require.Equal(t, "NIT", s.CurrentUser().College)
}

func TestStore_UpdateUserWithoutSessionFails(t *testing.T) {
	s := newTestStore(t)
	require.ErrorIs(t, s.UpdateUser(testUser()), common.ErrUnauthenticated)
}

func TestStore_Clear(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save("tok-1", testUser(), time.Hour))

	require.NoError(t, s.Clear())
	require.Empty(t, s.CurrentToken())
	require.Nil(t, s.CurrentUser())

	// clearing an already-empty store is not an error
	require.NoError(t, s.Clear())
}
