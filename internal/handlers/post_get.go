package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/blog-service/internal/logger"
	"github.com/sbilibin2017/blog-service/internal/models"
	"github.com/sbilibin2017/blog-service/internal/services"
)

// PostGetter defines the interface that the post detail service must implement.
type PostGetter interface {
	Get(ctx context.Context, id int64) (*models.PostWithAuthor, error)
}

// NewPostGetHandler returns an HTTP handler for reading one post.
// @Summary Get a post
// @Description Returns a post with its author's username
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} handlers.PostDetailResponse
// @Failure 401 "Not authenticated"
// @Failure 404 {object} handlers.ErrorResponse "Post not found"
// @Router /posts/{id} [get]
func NewPostGetHandler(svc PostGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error: "invalid post id",
			})
			return
		}

		post, err := svc.Get(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrPostNotFound):
				writeJSON(w, http.StatusNotFound, ErrorResponse{
					Error: "Post not found",
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
