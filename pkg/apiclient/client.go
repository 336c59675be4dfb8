package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/AymanChabbaki/safaria-sub000/pkg/catalog"
)

// DefaultTimeout bounds every request; a slower backend surfaces as a
// normal request error and never hangs the UI.
const DefaultTimeout = 10 * time.Second

// DefaultBaseURL is used when SAFARIA_API_URL is unset.
const DefaultBaseURL = "http://localhost:8080"

// User is the profile record as returned by the backend.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Photo string `json:"photo,omitempty"`
	Role  string `json:"role,omitempty"`
}

// AuthPayload is the body of successful auth responses.
type AuthPayload struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	User    *User  `json:"user,omitempty"`
	Token   string `json:"token,omitempty"`
}

// Reservation mirrors the backend reservation record.
type Reservation struct {
	ID          string  `json:"id"`
	ListingType string  `json:"listing_type"`
	ListingID   int64   `json:"listing_id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date,omitempty"`
	Guests      int     `json:"guests"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

// PaymentResult is the outcome of a processed payment.
type PaymentResult struct {
	Success       bool    `json:"success"`
	Message       string  `json:"message,omitempty"`
	PaymentID     string  `json:"payment_id,omitempty"`
	ReceiptNumber string  `json:"receipt_number,omitempty"`
	Amount        float64 `json:"amount,omitempty"`
	Status        string  `json:"status,omitempty"`
}

// APIError carries the HTTP status and the server's message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Client speaks to the Safaria backend. It injects the bearer token on
// every authenticated call and reports 401s through OnUnauthorized so
// the shell can clear local session state and return to the login page.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.Mutex
	token string

	// OnUnauthorized is invoked once per 401 response, if set.
	OnUnauthorized func()
}

// New builds a client for the given base URL. An empty base falls back
// to DefaultBaseURL.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
}

// SetToken installs the bearer token used for authenticated calls.
// An empty token clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if tok := c.bearer(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && c.OnUnauthorized != nil {
		c.OnUnauthorized()
	}
	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Message: serverMessage(raw)}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

// serverMessage extracts a human-readable message from an error body,
// preferring the JSON envelope's message over the raw text.
func serverMessage(raw []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return strings.TrimSpace(string(raw))
}

func (c *Client) postJSON(ctx context.Context, path string, in, out interface{}) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(raw), "application/json", out)
}

// Login exchanges credentials for a user and bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthPayload, error) {
	var out AuthPayload
	err := c.postJSON(ctx, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterRequest carries the registration form.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// Register creates an account and returns the same payload as Login.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthPayload, error) {
	var out AuthPayload
	if err := c.postJSON(ctx, "/api/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout invalidates the server-side session. Errors are returned but
// callers typically clear local state regardless.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, "", nil)
}

// Me fetches the profile bound to the current token.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out struct {
		User *User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, "", &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// UpdateProfile sends changed fields and an optional photo as multipart
// form data. The returned user is the server's authoritative record.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]string, photo io.Reader, photoName string) (*User, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if photo != nil {
		part, err := mw.CreateFormFile("photo", photoName)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, photo); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out AuthPayload
	if err := c.do(ctx, http.MethodPut, "/api/auth/profile", &buf, mw.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// ChangePassword verifies the current password and installs a new one.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	return c.do(ctx, http.MethodPut, "/api/auth/password", bytes.NewReader(mustJSON(map[string]string{
		"current_password": current,
		"new_password":     next,
	})), "application/json", nil)
}

func mustJSON(v interface{}) []byte {
	raw, _ := json.Marshal(v)
	return raw
}

func (c *Client) fetchCollection(ctx context.Context, path, lang string) ([]catalog.Listing, error) {
	if lang != "" {
		path += "?lang=" + lang
	}
	var out []catalog.Listing
	if err := c.do(ctx, http.MethodGet, path, nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchArtisans returns the artisan collection.
func (c *Client) FetchArtisans(ctx context.Context, lang string) ([]catalog.Listing, error) {
	return c.fetchCollection(ctx, "/api/artisans", lang)
}

// FetchSejours returns the stays collection.
func (c *Client) FetchSejours(ctx context.Context, lang string) ([]catalog.Listing, error) {
	return c.fetchCollection(ctx, "/api/sejours", lang)
}

// FetchCaravanes returns the desert caravan collection.
func (c *Client) FetchCaravanes(ctx context.Context, lang string) ([]catalog.Listing, error) {
	return c.fetchCollection(ctx, "/api/caravanes", lang)
}

// CreateReservation books a listing for the current user.
func (c *Client) CreateReservation(ctx context.Context, r Reservation) (*Reservation, error) {
	var out struct {
		Reservation *Reservation `json:"reservation"`
	}
	if err := c.postJSON(ctx, "/api/reservations", r, &out); err != nil {
		return nil, err
	}
	return out.Reservation, nil
}

// FetchReservations lists the current user's reservations.
func (c *Client) FetchReservations(ctx context.Context) ([]Reservation, error) {
	var out []Reservation
	if err := c.do(ctx, http.MethodGet, "/api/reservations", nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProcessPayment runs a reservation through the payment gateway.
func (c *Client) ProcessPayment(ctx context.Context, reservationID, cardNumber, cardHolder string) (*PaymentResult, error) {
	var out PaymentResult
	err := c.postJSON(ctx, "/api/payments/process", map[string]string{
		"reservation_id": reservationID,
		"card_number":    cardNumber,
		"card_holder":    cardHolder,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
