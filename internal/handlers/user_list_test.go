package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/blog-service/internal/handlers"
	"github.com/sbilibin2017/blog-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestUserListHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := []models.UserDB{
		{ID: 1, Username: "alice", Email: strPtr("alice@example.com"), PasswordHash: "secret-hash"},
		{ID: 2, Username: "root", IsSuperuser: true, PasswordHash: "secret-hash"},
	}

	mockSvc := handlers.NewMockUserLister(ctrl)
	mockSvc.EXPECT().List(gomock.Any()).Return(users, nil)

	handler := handlers.NewUserListHandler(mockSvc)
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"users": [
			{"id": 1, "username": "alice", "email": "alice@example.com", "is_superuser": false},
			{"id": 2, "username": "root", "email": null, "is_superuser": true}
		]
	}`, rr.Body.String())
	assert.NotContains(t, rr.Body.String(), "secret-hash")
}

func TestUserListHandler_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := handlers.NewMockUserLister(ctrl)
	mockSvc.EXPECT().List(gomock.Any()).Return(nil, errors.New("db error"))

	handler := handlers.NewUserListHandler(mockSvc)
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
