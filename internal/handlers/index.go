package handlers

import (
	"fmt"
	"net/http"

	"github.com/sbilibin2017/blog-service/internal/middlewares"
)

// NewIndexHandler returns the authenticated landing page handler.
// @Summary Landing page
// @Description Greets the authenticated actor
// @Tags index
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.MessageResponse "Greeting"
// @Failure 401 "Not authenticated"
// @Router / [get]
func NewIndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := middlewares.GetActorFromContext(r.Context())
		if actor == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{
			Message: fmt.Sprintf("Welcome, %s", actor.Username),
		})
	}
}
