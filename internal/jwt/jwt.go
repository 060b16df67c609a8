package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "session_token"

// JWT provides methods to generate and validate session tokens.
type JWT struct {
	SecretKey string        // Secret key for signing tokens
	Exp       time.Duration // Token expiration duration
}

// New creates a new JWT instance
func New(secretKey string, expiration time.Duration) *JWT {
	return &JWT{
		SecretKey: secretKey,
		Exp:       expiration,
	}
}

// Generate creates a session token bound to a user and a session ID
func (j *JWT) Generate(ctx context.Context, userID int64, sessionID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    userID,
		"session_id": sessionID.String(),
		"exp":        time.Now().Add(j.Exp).Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.SecretKey))
}

// GetClaims parses the token string and returns the user ID and session ID if valid
func (j *JWT) GetClaims(ctx context.Context, tokenString string) (int64, uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.SecretKey), nil
	})
	if err != nil {
		return 0, uuid.Nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, uuid.Nil, errors.New("invalid token")
	}

	// JSON numbers decode as float64
	rawUserID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, uuid.Nil, errors.New("user_id not found in token")
	}

	rawSessionID, ok := claims["session_id"].(string)
	if !ok {
		return 0, uuid.Nil, errors.New("session_id not found in token")
	}
	sessionID, err := uuid.Parse(rawSessionID)
	if err != nil {
		return 0, uuid.Nil, errors.New("invalid session_id format")
	}

	return int64(rawUserID), sessionID, nil
}

// GetTokenFromRequest extracts the token string from the Authorization header
// or, failing that, from the session cookie.
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return "", errors.New("invalid authorization header format")
		}
		return parts[1], nil
	}

	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", errors.New("no session token in request")
	}
	return cookie.Value, nil
}
