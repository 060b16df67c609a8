package middlewares

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/blog-service/internal/logger"
	"github.com/sbilibin2017/blog-service/internal/models"
)

// Tokener defines the minimal token interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (int64, uuid.UUID, error)
}

// SessionReader checks server-side session state
type SessionReader interface {
	GetUserID(ctx context.Context, sessionID uuid.UUID) (int64, error)
}

// ActorReader loads the user bound to the session
type ActorReader interface {
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
}

// AuthMiddleware returns a middleware that validates the session token,
// verifies the session is still active and binds the current actor into
// the request context.
func AuthMiddleware(tokener Tokener, sessions SessionReader, users ActorReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			userID, sessionID, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			sessionUserID, err := sessions.GetUserID(ctx, sessionID)
			if err != nil || sessionUserID != userID {
				logger.Log.Errorw("session not active", "session_id", sessionID, "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			actor, err := users.GetByID(ctx, userID)
			if err != nil || actor == nil {
				logger.Log.Errorw("failed to load actor", "user_id", userID, "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			ctx = SetActorToContext(ctx, actor)
			ctx = SetSessionIDToContext(ctx, sessionID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SetActorToContext stores the current actor in the context
func SetActorToContext(ctx context.Context, actor *models.UserDB) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActorFromContext retrieves the current actor. Returns nil if the request is anonymous.
func GetActorFromContext(ctx context.Context) *models.UserDB {
	actor, _ := ctx.Value(actorKey).(*models.UserDB)
	return actor
}

// SetSessionIDToContext stores the session ID in the context
func SetSessionIDToContext(ctx context.Context, sessionID uuid.UUID) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// GetSessionIDFromContext retrieves the session ID bound to the request.
func GetSessionIDFromContext(ctx context.Context) uuid.UUID {
	sessionID, ok := ctx.Value(sessionIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return sessionID
}
