package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AymanChabbaki/safaria-sub000/pkg/apiclient"
	"github.com/AymanChabbaki/safaria-sub000/pkg/localstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authServer(t *testing.T, user *apiclient.User, token string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login", "/api/auth/register":
			json.NewEncoder(w).Encode(apiclient.AuthPayload{Success: true, User: user, Token: token})
		case "/api/auth/logout":
			json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestLoginEstablishesAndPersists(t *testing.T) {
	admin := &apiclient.User{ID: "u1", Name: "Nadia", Email: "nadia@example.com", Role: "admin"}
	srv := authServer(t, admin, "tok-1")
	defer srv.Close()

	storage := localstore.NewMemory()
	store := New(apiclient.New(srv.URL), storage)

	res := store.Login(context.Background(), "nadia@example.com", "secret123")
	require.True(t, res.Success)
	assert.Empty(t, res.Error)

	assert.True(t, store.IsAuthenticated())
	assert.True(t, store.IsAdmin())
	assert.Equal(t, "tok-1", store.Token())
	assert.False(t, store.IsLoading())

	// Storage mirrors the session.
	raw, ok := storage.Get(KeyAuth)
	require.True(t, ok)
	var snapshot struct {
		Token           string `json:"token"`
		IsAuthenticated bool   `json:"isAuthenticated"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &snapshot))
	assert.Equal(t, "tok-1", snapshot.Token)
	assert.True(t, snapshot.IsAuthenticated)

	tok, ok := storage.Get(KeyToken)
	require.True(t, ok)
	assert.Equal(t, "tok-1", tok)
}

func TestLoginFailureReturnsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid email or password"})
	}))
	defer srv.Close()

	store := New(apiclient.New(srv.URL), localstore.NewMemory())
	res := store.Login(context.Background(), "x@x.fr", "wrong")

	assert.False(t, res.Success)
	assert.Equal(t, "Invalid email or password", res.Error)
	assert.Equal(t, "Invalid email or password", store.Err())
	assert.False(t, store.IsAuthenticated())
}

func TestLogoutThenCheckAuth(t *testing.T) {
	user := &apiclient.User{ID: "u1", Name: "Omar", Role: "user"}
	srv := authServer(t, user, "tok-2")
	defer srv.Close()

	storage := localstore.NewMemory()
	store := New(apiclient.New(srv.URL), storage)

	require.True(t, store.Login(context.Background(), "omar@example.com", "pw").Success)
	store.Logout(context.Background())

	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.User())
	assert.Empty(t, store.Token())
	_, ok := storage.Get(KeyAuth)
	assert.False(t, ok)

	// A fresh store over the same storage stays anonymous.
	fresh := New(apiclient.New(srv.URL), storage)
	assert.False(t, fresh.CheckAuth())
}

func TestCheckAuthRestoresFullSession(t *testing.T) {
	user := &apiclient.User{ID: "u1", Name: "Omar", Role: "user"}
	srv := authServer(t, user, "tok-3")
	defer srv.Close()

	storage := localstore.NewMemory()
	first := New(apiclient.New(srv.URL), storage)
	require.True(t, first.Login(context.Background(), "omar@example.com", "pw").Success)

	second := New(apiclient.New(srv.URL), storage)
	require.True(t, second.CheckAuth())
	assert.True(t, second.IsAuthenticated())
	assert.Equal(t, "tok-3", second.Token())
	require.NotNil(t, second.User())
	assert.Equal(t, "Omar", second.User().Name)
}

func TestCheckAuthCorruptSnapshotClears(t *testing.T) {
	storage := localstore.NewMemory()
	storage.Set(KeyAuth, "{broken")
	storage.Set(KeyToken, "stale")

	store := New(apiclient.New("http://localhost:0"), storage)
	assert.False(t, store.CheckAuth())
	assert.False(t, store.IsAuthenticated())

	// Never half-restores: everything is gone.
	_, ok := storage.Get(KeyAuth)
	assert.False(t, ok)
	_, ok = storage.Get(KeyToken)
	assert.False(t, ok)
}

func TestCheckAuthMissingTokenClears(t *testing.T) {
	storage := localstore.NewMemory()
	raw, _ := json.Marshal(map[string]interface{}{
		"user":            map[string]string{"id": "u1"},
		"token":           "",
		"isAuthenticated": true,
	})
	storage.Set(KeyAuth, string(raw))

	store := New(apiclient.New("http://localhost:0"), storage)
	assert.False(t, store.CheckAuth())
	_, ok := storage.Get(KeyAuth)
	assert.False(t, ok)
}

func TestRegister(t *testing.T) {
	user := &apiclient.User{ID: "u9", Name: "Sara", Role: "user"}
	srv := authServer(t, user, "tok-9")
	defer srv.Close()

	store := New(apiclient.New(srv.URL), localstore.NewMemory())
	res := store.Register(context.Background(), apiclient.RegisterRequest{
		Name: "Sara", Email: "sara@example.com", Password: "secret123",
	})
	require.True(t, res.Success)
	assert.Equal(t, "Sara", res.User.Name)
	assert.False(t, store.IsAdmin())
}
