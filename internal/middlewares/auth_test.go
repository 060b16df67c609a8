package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/blog-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sessionID := uuid.New()
	actor := &models.UserDB{ID: 7, Username: "alice"}

	tests := []struct {
		name             string
		mockSetup        func(tok *MockTokener, sess *MockSessionReader, users *MockActorReader)
		expectedStatus   int
		expectNextCalled bool
	}{
		{
			name: "no token",
			mockSetup: func(tok *MockTokener, sess *MockSessionReader, users *MockActorReader) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("", errors.New("no token"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "invalid token",
			mockSetup: func(tok *MockTokener, sess *MockSessionReader, users *MockActorReader) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("sometoken", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "sometoken").
					Return(int64(0), uuid.Nil, errors.New("invalid token"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "session revoked",
			mockSetup: func(tok *MockTokener, sess *MockSessionReader, users *MockActorReader) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("validtoken", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "validtoken").
					Return(int64(7), sessionID, nil)
				sess.EXPECT().GetUserID(gomock.Any(), sessionID).
					Return(int64(0), errors.New("session not found"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "session bound to another user",
			mockSetup: func(tok *MockTokener, sess *MockSessionReader, users *MockActorReader) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("validtoken", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "validtoken").
					Return(int64(7), sessionID, nil)
				sess.EXPECT().GetUserID(gomock.Any(), sessionID).
					Return(int64(8), nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "actor load failure",
			mockSetup: func(tok *MockTokener, sess *MockSessionReader, users *MockActorReader) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("validtoken", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "validtoken").
					Return(int64(7), sessionID, nil)
				sess.EXPECT().GetUserID(gomock.Any(), sessionID).
					Return(int64(7), nil)
				users.EXPECT().GetByID(gomock.Any(), int64(7)).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "valid session",
			mockSetup: func(tok *MockTokener, sess *MockSessionReader, users *MockActorReader) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("validtoken", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "validtoken").
					Return(int64(7), sessionID, nil)
				sess.EXPECT().GetUserID(gomock.Any(), sessionID).
					Return(int64(7), nil)
				users.EXPECT().GetByID(gomock.Any(), int64(7)).
					Return(actor, nil)
			},
			expectedStatus:   http.StatusOK,
			expectNextCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTokener := NewMockTokener(ctrl)
			mockSessions := NewMockSessionReader(ctrl)
			mockUsers := NewMockActorReader(ctrl)
			tt.mockSetup(mockTokener, mockSessions, mockUsers)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				assert.Equal(t, actor, GetActorFromContext(r.Context()))
				assert.Equal(t, sessionID, GetSessionIDFromContext(r.Context()))
				w.WriteHeader(http.StatusOK)
			})

			handler := AuthMiddleware(mockTokener, mockSessions, mockUsers)(next)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectNextCalled, nextCalled)
		})
	}
}

func TestGetActorFromContext_Anonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, GetActorFromContext(req.Context()))
	assert.Equal(t, uuid.Nil, GetSessionIDFromContext(req.Context()))
}
