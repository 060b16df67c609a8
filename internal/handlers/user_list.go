package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/blog-service/internal/logger"
	"github.com/sbilibin2017/blog-service/internal/models"
)

// UserLister defines the interface that the user listing service must implement.
type UserLister interface {
	List(ctx context.Context) ([]models.UserDB, error)
}

// UserListResponse wraps the user collection
// swagger:model UserListResponse
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// NewUserListHandler returns an HTTP handler listing all users.
// @Summary List users
// @Description Returns username, email and superuser flag for all users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.UserListResponse
// @Failure 401 "Not authenticated"
// @Router /users [get]
func NewUserListHandler(svc UserLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.List(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		resp := UserListResponse{Users: make([]UserResponse, 0, len(users))}
		for i := range users {
			resp.Users = append(resp.Users, toUserResponse(&users[i]))
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
