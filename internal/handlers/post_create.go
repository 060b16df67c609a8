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

// PostCreator defines the interface that the post creation service must implement.
type PostCreator interface {
	Create(ctx context.Context, actor *models.UserDB, title string, text *string) (*models.PostWithAuthor, error)
}

// PostCreateRequest represents the JSON body for post creation
// swagger:model PostCreateRequest
type PostCreateRequest struct {
	// Title
	// required: true
	// example: Hello world
	Title string `json:"title"`

	// Optional post body
	// example: First post.
	Text *string `json:"text"`
}

// PostDetailResponse wraps a single post
// swagger:model PostDetailResponse
type PostDetailResponse struct {
	Post PostResponse `json:"post"`
}

// NewPostCreateHandler returns an HTTP handler that creates a post
// owned by the current actor.
// @Summary Create a post
// @Description Creates a post owned by the current actor. Title is required.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postCreateRequest body handlers.PostCreateRequest true "Post creation request"
// @Success 201 {object} handlers.PostDetailResponse
// @Failure 400 {object} handlers.ErrorResponse "Title is required"
// @Failure 401 "Not authenticated"
// @Router /posts [post]
func NewPostCreateHandler(svc PostCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := middlewares.GetActorFromContext(r.Context())
		if actor == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var req PostCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		post, err := svc.Create(r.Context(), actor, req.Title, req.Text)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTitleRequired):
				writeJSON(w, http.StatusBadRequest, ErrorResponse{
					Error: "Title is required",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeJSON(w, http.StatusInternalServerError, ErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		writeJSON(w, http.StatusCreated, PostDetailResponse{
			Post: toPostResponse(post),
		})
	}
}
