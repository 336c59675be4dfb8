package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSendsCredentialsAndDecodesPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "aicha@example.com", body["email"])
		assert.Equal(t, "secret123", body["password"])

		json.NewEncoder(w).Encode(AuthPayload{
			Success: true,
			User:    &User{ID: "u1", Name: "Aicha", Email: "aicha@example.com", Role: "user"},
			Token:   "tok-1",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	payload, err := c.Login(context.Background(), "aicha@example.com", "secret123")
	require.NoError(t, err)
	assert.True(t, payload.Success)
	assert.Equal(t, "tok-1", payload.Token)
	assert.Equal(t, "Aicha", payload.User.Name)
}

func TestBearerTokenInjected(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{"user": User{ID: "u1"}})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("tok-42")
	_, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-42", seen)
}

func TestUnauthorizedFiresHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Session expired"})
	}))
	defer srv.Close()

	fired := false
	c := New(srv.URL)
	c.OnUnauthorized = func() { fired = true }

	_, err := c.Me(context.Background())
	require.Error(t, err)
	assert.True(t, fired)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Session expired", apiErr.Message)
}

func TestErrorEnvelopeExtraction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "duplicate email"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Register(context.Background(), RegisterRequest{Name: "x", Email: "x@x.fr", Password: "p"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "duplicate email", apiErr.Message)
	assert.Equal(t, "duplicate email", apiErr.Error())
}

func TestFetchListingsPassesLang(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sejours", r.URL.Path)
		assert.Equal(t, "ar", r.URL.Query().Get("lang"))
		w.Write([]byte(`[{"id":1,"name":"x","latitude":"31.5","longitude":"-7.9","price":300}]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	listings, err := c.FetchSejours(context.Background(), "ar")
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.True(t, listings[0].Latitude.Valid)
	assert.InDelta(t, 31.5, listings[0].Latitude.Value, 1e-9)
}

func TestCreateReservationUnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":     true,
			"reservation": Reservation{ID: "res-1", Status: "pending", Amount: 600},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.CreateReservation(context.Background(), Reservation{ListingType: "sejour", ListingID: 1})
	require.NoError(t, err)
	assert.Equal(t, "res-1", res.ID)
	assert.Equal(t, "pending", res.Status)
}
