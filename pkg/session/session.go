// Package session holds the client-side authentication state: who is
// signed in, their bearer token, and the durable mirror of both.
package session

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/AymanChabbaki/safaria-sub000/pkg/apiclient"
	"github.com/AymanChabbaki/safaria-sub000/pkg/localstore"
)

// Durable storage keys. KeyAuth holds the full snapshot; KeyToken and
// KeyUser are raw mirrors kept for shells that read them directly.
const (
	KeyAuth  = "safaria_auth"
	KeyToken = "token"
	KeyUser  = "user"
)

type persisted struct {
	User            *apiclient.User `json:"user"`
	Token           string          `json:"token"`
	IsAuthenticated bool            `json:"isAuthenticated"`
}

// Result is the envelope every store operation returns. Network and
// server failures are captured here, never raised to the caller.
type Result struct {
	Success bool
	User    *apiclient.User
	Error   string
}

// Store owns the session state. Construct one per app (or per test)
// with New; there is no package-level instance.
//
// Concurrent calls to Login/Register are not serialized: the last
// response to arrive wins, matching the UI's double-submit behavior.
type Store struct {
	mu      sync.Mutex
	api     *apiclient.Client
	storage localstore.Store

	user            *apiclient.User
	token           string
	isAuthenticated bool
	isLoading       bool
	lastError       string
}

// New builds an anonymous store. Call CheckAuth to restore a persisted
// session.
func New(api *apiclient.Client, storage localstore.Store) *Store {
	return &Store{api: api, storage: storage}
}

// User returns the signed-in profile, or nil.
func (s *Store) User() *apiclient.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Token returns the bearer token, or "".
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsAuthenticated reports whether a login/register/restore succeeded.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isAuthenticated
}

// IsLoading reports whether a network operation is in flight.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLoading
}

// Err returns the last failure message, or "".
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// IsAdmin reports whether the signed-in user has the admin role.
func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.user.Role == "admin"
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.isLoading = v
	s.mu.Unlock()
}

func (s *Store) establish(user *apiclient.User, token string) {
	s.mu.Lock()
	s.user = user
	s.token = token
	s.isAuthenticated = true
	s.lastError = ""
	s.mu.Unlock()

	s.api.SetToken(token)
	s.persist()
}

func (s *Store) fail(msg string) Result {
	s.mu.Lock()
	s.lastError = msg
	s.mu.Unlock()
	return Result{Success: false, Error: msg}
}

func (s *Store) persist() {
	s.mu.Lock()
	snapshot := persisted{User: s.user, Token: s.token, IsAuthenticated: s.isAuthenticated}
	s.mu.Unlock()

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	s.storage.Set(KeyAuth, string(raw))
	s.storage.Set(KeyToken, snapshot.Token)
	if snapshot.User != nil {
		if userRaw, err := json.Marshal(snapshot.User); err == nil {
			s.storage.Set(KeyUser, string(userRaw))
		}
	}
}

func (s *Store) clearStorage() {
	s.storage.Delete(KeyAuth)
	s.storage.Delete(KeyToken)
	s.storage.Delete(KeyUser)
}

// Login authenticates against the backend. On success the user and
// token are held in memory and written through to durable storage.
func (s *Store) Login(ctx context.Context, email, password string) Result {
	s.setLoading(true)
	defer s.setLoading(false)

	payload, err := s.api.Login(ctx, email, password)
	if err != nil {
		return s.fail(errorMessage(err))
	}
	if payload.User == nil || payload.Token == "" {
		return s.fail("login response missing user or token")
	}

	s.establish(payload.User, payload.Token)
	return Result{Success: true, User: payload.User}
}

// Register creates an account; same contract as Login.
func (s *Store) Register(ctx context.Context, req apiclient.RegisterRequest) Result {
	s.setLoading(true)
	defer s.setLoading(false)

	payload, err := s.api.Register(ctx, req)
	if err != nil {
		return s.fail(errorMessage(err))
	}
	if payload.User == nil || payload.Token == "" {
		return s.fail("register response missing user or token")
	}

	s.establish(payload.User, payload.Token)
	return Result{Success: true, User: payload.User}
}

// Logout clears in-memory state and durable storage. Safe to call when
// already anonymous. The server-side session is invalidated best-effort.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	hadToken := s.token != ""
	s.user = nil
	s.token = ""
	s.isAuthenticated = false
	s.lastError = ""
	s.mu.Unlock()

	s.clearStorage()
	if hadToken {
		s.api.Logout(ctx)
	}
	s.api.SetToken("")
}

// UpdateProfile sends changed fields (and an optional photo). The
// server's returned record replaces the in-memory and persisted user
// wholesale; there is no client-side merge.
func (s *Store) UpdateProfile(ctx context.Context, fields map[string]string, photo io.Reader, photoName string) Result {
	s.setLoading(true)
	defer s.setLoading(false)

	user, err := s.api.UpdateProfile(ctx, fields, photo, photoName)
	if err != nil {
		return s.fail(errorMessage(err))
	}
	if user == nil {
		return s.fail("profile response missing user")
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.persist()
	return Result{Success: true, User: user}
}

// ChangePassword verifies the current password server-side. No state
// changes beyond the loading flag and the error field.
func (s *Store) ChangePassword(ctx context.Context, current, next string) Result {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.api.ChangePassword(ctx, current, next); err != nil {
		return s.fail(errorMessage(err))
	}
	s.mu.Lock()
	s.lastError = ""
	s.mu.Unlock()
	return Result{Success: true}
}

// CheckAuth restores a persisted session. Either both token and user
// parse and the session is fully restored, or storage is cleared and
// the store stays anonymous; a corrupt snapshot never half-restores.
func (s *Store) CheckAuth() bool {
	raw, ok := s.storage.Get(KeyAuth)
	if !ok {
		return false
	}

	var snapshot persisted
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil || snapshot.User == nil || snapshot.Token == "" {
		s.clearStorage()
		return false
	}

	s.mu.Lock()
	s.user = snapshot.User
	s.token = snapshot.Token
	s.isAuthenticated = true
	s.mu.Unlock()
	s.api.SetToken(snapshot.Token)
	return true
}

func errorMessage(err error) string {
	if apiErr, ok := err.(*apiclient.APIError); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
