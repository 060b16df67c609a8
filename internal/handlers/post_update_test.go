package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/blog-service/internal/handlers"
	"github.com/sbilibin2017/blog-service/internal/middlewares"
	"github.com/sbilibin2017/blog-service/internal/models"
	"github.com/sbilibin2017/blog-service/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestPostUpdateHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	actor := &models.UserDB{ID: 2, Username: "bob"}
	updated := &models.PostWithAuthor{
		PostDB:   models.PostDB{ID: 5, Title: "new title", UserID: 2},
		Username: "bob",
	}

	tests := []struct {
		name           string
		actor          *models.UserDB
		url            string
		body           string
		mockSetup      func(svc *handlers.MockPostUpdater)
		expectedStatus int
	}{
		{
			name:  "successful update",
			actor: actor,
			url:   "/posts/5",
			body:  `{"title":"new title"}`,
			mockSetup: func(svc *handlers.MockPostUpdater) {
				svc.EXPECT().
					Update(gomock.Any(), actor, int64(5), gomock.Any(), gomock.Any()).
					Return(updated, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "not authenticated",
			actor:          nil,
			url:            "/posts/5",
			body:           `{"title":"new title"}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "non-numeric id",
			actor:          actor,
			url:            "/posts/abc",
			body:           `{"title":"new title"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid request body",
			actor:          actor,
			url:            "/posts/5",
			body:           `{not json`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "permission denied",
			actor: actor,
			url:   "/posts/5",
			body:  `{"title":"new title"}`,
			mockSetup: func(svc *handlers.MockPostUpdater) {
				svc.EXPECT().
					Update(gomock.Any(), actor, int64(5), gomock.Any(), gomock.Any()).
					Return(nil, services.ErrPermissionDenied)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:  "post not found",
			actor: actor,
			url:   "/posts/99",
			body:  `{"title":"new title"}`,
			mockSetup: func(svc *handlers.MockPostUpdater) {
				svc.EXPECT().
					Update(gomock.Any(), actor, int64(99), gomock.Any(), gomock.Any()).
					Return(nil, services.ErrPostNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := handlers.NewMockPostUpdater(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			router := chi.NewRouter()
			router.Put("/posts/{id}", handlers.NewPostUpdateHandler(mockSvc))

			req := httptest.NewRequest(http.MethodPut, tt.url, bytes.NewBufferString(tt.body))
			if tt.actor != nil {
				req = req.WithContext(middlewares.SetActorToContext(req.Context(), tt.actor))
			}
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}
