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

// UserUpdater defines the interface that the user update service must implement.
type UserUpdater interface {
	Update(ctx context.Context, actor *models.UserDB, id int64, username, email *string, isSuperuser *bool) (*models.UserDB, error)
}

// UserUpdateRequest represents the JSON body for a partial user update.
// Absent fields keep their prior value. Only a superuser may change the
// is_superuser flag.
// swagger:model UserUpdateRequest
type UserUpdateRequest struct {
	// New username
	// example: john_doe
	Username *string `json:"username"`

	// New email
	// example: john@example.com
	Email *string `json:"email"`

	// Superuser flag
	// example: false
	IsSuperuser *bool `json:"is_superuser"`
}

// NewUserUpdateHandler returns an HTTP handler for partial user updates.
// The actor may update their own record; a superuser may update any.
// @Summary Update a user
// @Description Partial update of username, email and superuser flag
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param userUpdateRequest body handlers.UserUpdateRequest true "User update request"
// @Success 200 {object} handlers.UserDetailResponse
// @Failure 401 "Not authenticated"
// @Failure 403 {object} handlers.ErrorResponse "Permission denied"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 409 {object} handlers.ErrorResponse "Username already exists"
// @Router /users/{id} [put]
func NewUserUpdateHandler(svc UserUpdater) http.HandlerFunc {
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

		var req UserUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		user, err := svc.Update(r.Context(), actor, id, req.Username, req.Email, req.IsSuperuser)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				writeJSON(w, http.StatusNotFound, ErrorResponse{
					Error: "User not found",
				})
			case errors.Is(err, services.ErrPermissionDenied):
				writeJSON(w, http.StatusForbidden, ErrorResponse{
					Error: "Permission denied",
				})
			case errors.Is(err, services.ErrUserAlreadyExists):
				writeJSON(w, http.StatusConflict, ErrorResponse{
					Error: "Username already exists",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeJSON(w, http.StatusInternalServerError, ErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		writeJSON(w, http.StatusOK, UserDetailResponse{
			User: toUserResponse(user),
		})
	}
}
