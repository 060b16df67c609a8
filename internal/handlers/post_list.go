package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/blog-service/internal/logger"
	"github.com/sbilibin2017/blog-service/internal/models"
)

// PostLister defines the interface that the post listing service must implement.
type PostLister interface {
	List(ctx context.Context) ([]models.PostWithAuthor, error)
}

// PostListResponse wraps the post collection
// swagger:model PostListResponse
type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
}

// NewPostListHandler returns an HTTP handler listing all posts with
// their owner usernames, ordered by creation time.
// @Summary List posts
// @Description Returns all posts joined with owner usernames, oldest first
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.PostListResponse
// @Failure 401 "Not authenticated"
// @Router /posts [get]
func NewPostListHandler(svc PostLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := svc.List(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		resp := PostListResponse{Posts: make([]PostResponse, 0, len(posts))}
		for i := range posts {
			resp.Posts = append(resp.Posts, toPostResponse(&posts[i]))
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
