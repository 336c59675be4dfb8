package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/AymanChabbaki/safaria-sub000/internal/database"
)

const (
	// SessionDuration is 7 days.
	SessionDuration = 7 * 24 * time.Hour
	// SessionKeyPrefix is the Redis key prefix for token -> user lookups.
	SessionKeyPrefix = "safaria:session:"
	// UserSessionKeyPrefix is the Redis key prefix for user -> token lookups.
	UserSessionKeyPrefix = "safaria:user_session:"
)

// CreateSession issues an opaque bearer token for the user and stores
// it in Redis. Any existing session for the user is invalidated first,
// so the 7-day timer always restarts at login.
func CreateSession(ctx context.Context, userID string) (string, error) {
	InvalidateUserSessions(ctx, userID)

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	if err := database.RedisClient.Set(ctx, SessionKeyPrefix+token, userID, SessionDuration).Err(); err != nil {
		return "", err
	}
	if err := database.RedisClient.Set(ctx, UserSessionKeyPrefix+userID, token, SessionDuration).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// ValidateSession resolves a bearer token to a user ID. A missing or
// expired token is not an error, just not valid.
func ValidateSession(ctx context.Context, token string) (string, bool) {
	if token == "" {
		return "", false
	}
	userID, err := database.RedisClient.Get(ctx, SessionKeyPrefix+token).Result()
	if err != nil || userID == "" {
		return "", false
	}
	return userID, true
}

// InvalidateSession removes a session token. Idempotent.
func InvalidateSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	userID, err := database.RedisClient.Get(ctx, SessionKeyPrefix+token).Result()
	if err == nil && userID != "" {
		database.RedisClient.Del(ctx, UserSessionKeyPrefix+userID)
	}
	return database.RedisClient.Del(ctx, SessionKeyPrefix+token).Err()
}

// InvalidateUserSessions removes the user's active session, if any.
// Called on login and after a password change.
func InvalidateUserSessions(ctx context.Context, userID string) error {
	userKey := UserSessionKeyPrefix + userID
	token, err := database.RedisClient.Get(ctx, userKey).Result()
	if err == nil && token != "" {
		database.RedisClient.Del(ctx, SessionKeyPrefix+token)
	}
	return database.RedisClient.Del(ctx, userKey).Err()
}
