package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/blog-service/internal/logger"
	"github.com/sbilibin2017/blog-service/internal/middlewares"
	"github.com/sbilibin2017/blog-service/internal/models"
	"github.com/sbilibin2017/blog-service/internal/services"
)

// UserDeleter defines the interface that the user deletion service must implement.
type UserDeleter interface {
	Delete(ctx context.Context, actor *models.UserDB, id int64) error
}

// NewUserDeleteHandler returns an HTTP handler for deleting a user.
// The actor may delete their own account; a superuser may delete any.
// Deleting a user also removes all their posts.
// @Summary Delete a user
// @Description Removes a user and all posts they own
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} handlers.MessageResponse "User deleted"
// @Failure 401 "Not authenticated"
// @Failure 403 {object} handlers.ErrorResponse "Permission denied"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /users/{id} [delete]
func NewUserDeleteHandler(svc UserDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := middlewares.GetActorFromContext(r.Context())
		if actor == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		id, err := parseID(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error: "invalid user id",
			})
			return
		}

		if err := svc.Delete(r.Context(), actor, id); err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				writeJSON(w, http.StatusNotFound, ErrorResponse{
					Error: "User not found",
				})
			case errors.Is(err, services.ErrPermissionDenied):
				writeJSON(w, http.StatusForbidden, ErrorResponse{
					Error: "Permission denied",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeJSON(w, http.StatusInternalServerError, ErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{
			Message: "User deleted successfully",
		})
	}
}
