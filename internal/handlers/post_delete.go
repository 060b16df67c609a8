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

// PostDeleter defines the interface that the post deletion service must implement.
type PostDeleter interface {
	Delete(ctx context.Context, actor *models.UserDB, id int64) error
}

// NewPostDeleteHandler returns an HTTP handler for deleting a post.
// Only the owner or a superuser may delete a post.
// @Summary Delete a post
// @Description Permanently removes a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} handlers.MessageResponse "Post deleted"
// @Failure 401 "Not authenticated"
// @Failure 403 {object} handlers.ErrorResponse "Permission denied"
// @Failure 404 {object} handlers.ErrorResponse "Post not found"
// @Router /posts/{id} [delete]
func NewPostDeleteHandler(svc PostDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := middlewares.GetActorFromContext(r.Context())
		if actor == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		id, err := parseID(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error: "invalid post id",
			})
			return
		}

		if err := svc.Delete(r.Context(), actor, id); err != nil {
			switch {
			case errors.Is(err, services.ErrPostNotFound):
				writeJSON(w, http.StatusNotFound, ErrorResponse{
					Error: "Post not found",
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
			Message: "Post deleted successfully",
		})
	}
}
