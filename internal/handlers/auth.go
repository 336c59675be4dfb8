package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AymanChabbaki/safaria-sub000/internal/database"
	"github.com/AymanChabbaki/safaria-sub000/internal/middleware"
	"github.com/AymanChabbaki/safaria-sub000/internal/models"
	"github.com/AymanChabbaki/safaria-sub000/internal/services"
	"github.com/AymanChabbaki/safaria-sub000/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,max=50"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// AuthResponse is the envelope for every auth endpoint.
type AuthResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	User    map[string]interface{} `json:"user,omitempty"`
	Token   string                 `json:"token,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"success": false, "message": message})
}

// Register creates an account and opens a session.
func Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Name, a valid email and a password of at least 8 characters are required")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var existingEmail string
	err := database.PostgresDB.QueryRowContext(r.Context(),
		"SELECT email FROM users WHERE LOWER(email) = $1", req.Email).Scan(&existingEmail)
	if err == nil {
		writeError(w, http.StatusConflict, "An account with this email already exists")
		return
	} else if err != sql.ErrNoRows {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	userID := uuid.New().String()
	now := time.Now()
	_, err = database.PostgresDB.ExecContext(r.Context(), `
		INSERT INTO users (id, created_at, updated_at, name, email, phone, role, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, 'user', $7)
	`, userID, now, now, req.Name, req.Email, req.Phone, hashedPassword)
	if err != nil {
		log.Printf("ERROR: failed to create user: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	token, err := services.CreateSession(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	user := &models.User{ID: userID, CreatedAt: now, Name: req.Name, Email: req.Email, Phone: req.Phone, Role: "user"}
	writeJSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		Message: "Account created successfully",
		User:    user.Public(),
		Token:   token,
	})
}

// Login authenticates a user and opens a session.
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := findUserByEmail(r, strings.ToLower(strings.TrimSpace(req.Email)))
	if err == sql.ErrNoRows {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	valid, err := utils.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !valid {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := services.CreateSession(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Login successful",
		User:    user.Public(),
		Token:   token,
	})
}

// Logout invalidates the caller's session. Idempotent: an unknown or
// missing token still yields success.
func Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)
	if token != "" {
		services.InvalidateSession(r.Context(), token)
	}
	writeJSON(w, http.StatusOK, AuthResponse{Success: true, Message: "Logged out"})
}

// Me returns the profile bound to the caller's session.
func Me(w http.ResponseWriter, r *http.Request) {
	user, err := findUserByID(r, middleware.UserID(r))
	if err == sql.ErrNoRows {
		writeError(w, http.StatusUnauthorized, "Session user no longer exists")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "user": user.Public()})
}

// UpdateProfile updates the caller's profile. Accepts JSON or multipart
// form data; a multipart "photo" file is uploaded to Cloudinary first.
// The response carries the authoritative record as stored.
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	fields := map[string]string{}
	var photoURL string

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		for _, key := range []string{"name", "phone"} {
			if v := r.FormValue(key); v != "" {
				fields[key] = v
			}
		}
		if headers, ok := r.MultipartForm.File["photo"]; ok && len(headers) > 0 {
			if cloudinaryService == nil {
				writeError(w, http.StatusInternalServerError, "File upload service not available")
				return
			}
			url, err := cloudinaryService.UploadFileFromHeader(r.Context(), headers[0], "safaria/profiles")
			if err != nil {
				log.Printf("ERROR: profile photo upload failed: %v", err)
				writeError(w, http.StatusInternalServerError, "Failed to upload photo")
				return
			}
			photoURL = url
		}
	} else {
		var body struct {
			Name  string `json:"name"`
			Phone string `json:"phone"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if body.Name != "" {
			fields["name"] = body.Name
		}
		if body.Phone != "" {
			fields["phone"] = body.Phone
		}
	}

	if len(fields) == 0 && photoURL == "" {
		writeError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	arg := 1
	for _, key := range []string{"name", "phone"} {
		if v, ok := fields[key]; ok {
			setClauses = append(setClauses, key+" = $"+strconv.Itoa(arg))
			args = append(args, v)
			arg++
		}
	}
	if photoURL != "" {
		setClauses = append(setClauses, "photo = $"+strconv.Itoa(arg))
		args = append(args, photoURL)
		arg++
	}
	args = append(args, userID)

	query := "UPDATE users SET " + strings.Join(setClauses, ", ") + " WHERE id = $" + strconv.Itoa(arg)
	if _, err := database.PostgresDB.ExecContext(r.Context(), query, args...); err != nil {
		log.Printf("ERROR: failed to update profile: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	user, err := findUserByID(r, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	writeJSON(w, http.StatusOK, AuthResponse{Success: true, Message: "Profile updated", User: user.Public()})
}

// ChangePassword verifies the current password, installs the new one
// and invalidates other sessions for the user.
func ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Current password and a new password of at least 8 characters are required")
		return
	}

	userID := middleware.UserID(r)
	user, err := findUserByID(r, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	valid, err := utils.VerifyPassword(req.CurrentPassword, user.PasswordHash)
	if err != nil || !valid {
		writeError(w, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}
	if _, err := database.PostgresDB.ExecContext(r.Context(),
		"UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2", hashed, userID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update password")
		return
	}

	// Force re-login everywhere else; the current request keeps its token
	// until the next call because sessions are opaque redis entries.
	services.InvalidateUserSessions(r.Context(), userID)

	writeJSON(w, http.StatusOK, AuthResponse{Success: true, Message: "Password updated"})
}

func findUserByEmail(r *http.Request, email string) (*models.User, error) {
	return scanUser(database.PostgresDB.QueryRowContext(r.Context(), `
		SELECT id, created_at, updated_at, name, email, phone, photo, role, password_hash
		FROM users WHERE LOWER(email) = $1
	`, email))
}

func findUserByID(r *http.Request, id string) (*models.User, error) {
	return scanUser(database.PostgresDB.QueryRowContext(r.Context(), `
		SELECT id, created_at, updated_at, name, email, phone, photo, role, password_hash
		FROM users WHERE id = $1
	`, id))
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var phone, photo sql.NullString
	err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt, &u.Name, &u.Email, &phone, &photo, &u.Role, &u.PasswordHash)
	if err != nil {
		return nil, err
	}
	u.Phone = phone.String
	u.Photo = photo.String
	return &u, nil
}
