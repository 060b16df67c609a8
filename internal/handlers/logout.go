package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/blog-service/internal/jwt"
	"github.com/sbilibin2017/blog-service/internal/logger"
	"github.com/sbilibin2017/blog-service/internal/middlewares"
)

// Logouter defines the interface that the logout service must implement.
type Logouter interface {
	Logout(ctx context.Context, sessionID uuid.UUID) error
}

// NewLogoutHandler returns an HTTP handler that closes the current
// session and clears the session cookie. Idempotent.
// @Summary User logout
// @Description Close the current session and clear the session cookie
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.MessageResponse "Logged out"
// @Failure 401 "Not authenticated"
// @Router /logout [post]
func NewLogoutHandler(svc Logouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middlewares.GetSessionIDFromContext(r.Context())

		if err := svc.Logout(r.Context(), sessionID); err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     jwt.SessionCookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			HttpOnly: true,
		})

		writeJSON(w, http.StatusOK, MessageResponse{
			Message: "Logged out",
		})
	}
}
