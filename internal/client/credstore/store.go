// Package credstore persists the session credential: the bearer token, its
// expiry, and a snapshot of the logged-in user. The record is a single
// AES-GCM sealed file under the client's data directory; the sealing key is
// derived from a per-device secret, so copying the file to another machine
// yields nothing readable.
package credstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/notesphere/cli/internal/client/models"
	"github.com/notesphere/cli/internal/common"
	"github.com/notesphere/cli/internal/cryptox"
	"github.com/notesphere/cli/internal/filex"
)

const (
	secretFile  = "device.key"
	saltFile    = "device.salt"
	sessionFile = "session.enc"
)

// Store is the only process-wide mutable shared state in the client. All
// access is serialized by one mutex so token and expiry are never observed
// torn.
type Store struct {
	mu  sync.Mutex
	dir string
	key []byte

	// now is a test seam for expiry checks.
	now func() time.Time
}

// record is the plaintext layout of the sealed session file.
type record struct {
	Token  string       `json:"token"`
	Expiry time.Time    `json:"expiry"`
	User   *models.User `json:"user,omitempty"`
}

// envelope is the on-disk layout.
type envelope struct {
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// New opens (or initializes) a credential store rooted at dir. The
// per-device secret and salt are created on first use.
func New(dir string) (*Store, error) {
	if _, err := filex.EnsureDir(dir); err != nil {
		return nil, err
	}

	secret, err := loadOrCreate(filepath.Join(dir, secretFile), 32)
	if err != nil {
		return nil, fmt.Errorf("device secret: %w", err)
	}
	salt, err := loadOrCreate(filepath.Join(dir, saltFile), 16)
	if err != nil {
		return nil, fmt.Errorf("device salt: %w", err)
	}

	return &Store{
		dir: dir,
		key: cryptox.DeriveKey(secret, salt),
		now: time.Now,
	}, nil
}

func loadOrCreate(path string, size int) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err == nil && len(b) == size {
		return b, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	b = common.GenerateRandByteArray(size)
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return nil, err
	}
	return b, nil
}

// Save persists the credential. Expiry is now+ttl, capped by the token's
// own exp claim when the token is a JWT that expires sooner. The signature
// is never verified here; the server is the authority, the claim is only a
// hint for skipping doomed requests.
func (s *Store) Save(token string, user *models.User, ttl time.Duration) error {
	if token == "" {
		return fmt.Errorf("%w: empty token", common.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expiry := s.now().Add(ttl)
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err == nil {
		if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(expiry) {
			expiry = claims.ExpiresAt.Time
		}
	}

	return s.write(&record{Token: token, Expiry: expiry, User: user})
}

func (s *Store) write(rec *record) error {
	ct, nonce, err := cryptox.SealRecord(rec, s.key)
	if err != nil {
		return fmt.Errorf("seal session: %w", err)
	}
	b, err := json.Marshal(envelope{Nonce: nonce, Ciphertext: ct})
	if err != nil {
		return err
	}

	// Write-then-rename keeps a crash from leaving a half-written record.
	path := filepath.Join(s.dir, sessionFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// load reads and decrypts the session record. Any failure (missing file,
// corrupt envelope, failed decryption) yields (nil, nil): a broken store
// reads as "not logged in", never as a crash.
func (s *Store) load() *record {
	b, err := os.ReadFile(filepath.Join(s.dir, sessionFile))
	if err != nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil
	}
	var rec record
	if err := cryptox.OpenRecord(env.Ciphertext, env.Nonce, s.key, &rec); err != nil {
		return nil
	}
	return &rec
}

// CurrentToken returns the stored token, or "" when none is stored or the
// expiry has passed. Expired records are treated as absent, not purged.
func (s *Store) CurrentToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.load()
	if rec == nil || rec.Token == "" {
		return ""
	}
	if !s.now().Before(rec.Expiry) {
		return ""
	}
	return rec.Token
}

// CurrentUser reconstructs the cached user snapshot. Records missing the
// required identity fields yield nil.
func (s *Store) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.load()
	if rec == nil || rec.User == nil {
		return nil
	}
	u := rec.User
	if u.ID == "" || u.Username == "" || u.Email == "" {
		return nil
	}
	cp := *u
	return &cp
}

// UpdateUser refreshes the cached user snapshot in place, keeping the
// stored token and expiry. Fails when no live session exists.
func (s *Store) UpdateUser(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.load()
	if rec == nil || rec.Token == "" || !s.now().Before(rec.Expiry) {
		return common.ErrUnauthenticated
	}
	rec.User = u
	return s.write(rec)
}

// IsAuthenticated reports whether a non-expired token is stored.
func (s *Store) IsAuthenticated() bool {
	return s.CurrentToken() != ""
}

// Clear erases the stored session. Used on explicit logout.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(filepath.Join(s.dir, sessionFile))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
