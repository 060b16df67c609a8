package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/blog-service/internal/logger"
	"github.com/sbilibin2017/blog-service/internal/middlewares"
	"github.com/sbilibin2017/blog-service/internal/models"
	"github.com/sbilibin2017/blog-service/internal/services"
)

// PostUpdater defines the interface that the post update service must implement.
type PostUpdater interface {
	Update(ctx context.Context, actor *models.UserDB, id int64, title, text *string) (*models.PostWithAuthor, error)
}

// PostUpdateRequest represents the JSON body for a partial post update.
// Absent fields keep their prior value.
// swagger:model PostUpdateRequest
type PostUpdateRequest struct {
	// New title
	// example: Updated title
	Title *string `json:"title"`

	// New post body
	// example: Updated text.
	Text *string `json:"text"`
}

// NewPostUpdateHandler returns an HTTP handler for partial post updates.
// Only the owner or a superuser may update a post.
// @Summary Update a post
// @Description Partial update of title and text; absent fields keep their prior value
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param postUpdateRequest body handlers.PostUpdateRequest true "Post update request"
// @Success 200 {object} handlers.PostDetailResponse
// @Failure 401 "Not authenticated"
// @Failure 403 {object} handlers.ErrorResponse "Permission denied"
// @Failure 404 {object} handlers.ErrorResponse "Post not found"
// @Router /posts/{id} [put]
func NewPostUpdateHandler(svc PostUpdater) http.HandlerFunc {
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

		var req PostUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		post, err := svc.Update(r.Context(), actor, id, req.Title, req.Text)
		if err != nil {
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

		writeJSON(w, http.StatusOK, PostDetailResponse{
			Post: toPostResponse(post),
		})
	}
}
