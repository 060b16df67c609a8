package handlers

import (
	"time"

	"github.com/sbilibin2017/blog-service/internal/models"
)

// PostResponse is the serialized shape of a post
// swagger:model PostResponse
type PostResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Text      *string   `json:"text"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toPostResponse(post *models.PostWithAuthor) PostResponse {
	return PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Text:      post.Text,
		Author:    post.Username,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

// UserResponse is the serialized shape of a user. The password hash is
// never included.
// swagger:model UserResponse
type UserResponse struct {
	ID          int64   `json:"id"`
	Username    string  `json:"username"`
	Email       *string `json:"email"`
	IsSuperuser bool    `json:"is_superuser"`
}

func toUserResponse(user *models.UserDB) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		IsSuperuser: user.IsSuperuser,
	}
}
