package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/blog-service/internal/models"
	"github.com/sbilibin2017/blog-service/internal/services"
	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestUserService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := []models.UserDB{
		{ID: 1, Username: "alice"},
		{ID: 2, Username: "bob"},
	}

	mockReader := services.NewMockUserReader(ctrl)
	mockReader.EXPECT().List(gomock.Any()).Return(users, nil)

	svc := services.NewUserService(mockReader, services.NewMockUserWriter(ctrl))

	got, err := svc.List(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, users, got)
}

func TestUserService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	alice := &models.UserDB{ID: 1, Username: "alice"}

	tests := []struct {
		name      string
		id        int64
		mockSetup func(reader *services.MockUserReader)
		want      *models.UserDB
		wantErr   error
	}{
		{
			name: "found",
			id:   1,
			mockSetup: func(reader *services.MockUserReader) {
				reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(alice, nil)
			},
			want: alice,
		},
		{
			name: "not found",
			id:   99,
			mockSetup: func(reader *services.MockUserReader) {
				reader.EXPECT().GetByID(gomock.Any(), int64(99)).Return(nil, nil)
			},
			wantErr: services.ErrUserNotFound,
		},
		{
			name: "reader error",
			id:   1,
			mockSetup: func(reader *services.MockUserReader) {
				reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(nil, errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader := services.NewMockUserReader(ctrl)
			tt.mockSetup(mockReader)

			svc := services.NewUserService(mockReader, services.NewMockUserWriter(ctrl))

			got, err := svc.Get(context.Background(), tt.id)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestUserService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	alice := &models.UserDB{ID: 1, Username: "alice"}
	bob := &models.UserDB{ID: 2, Username: "bob"}
	admin := &models.UserDB{ID: 3, Username: "root", IsSuperuser: true}

	renamed := &models.UserDB{ID: 1, Username: "alice2"}

	tests := []struct {
		name        string
		actor       *models.UserDB
		id          int64
		username    *string
		isSuperuser *bool
		mockSetup   func(reader *services.MockUserReader, writer *services.MockUserWriter)
		want        *models.UserDB
		wantErr     error
	}{
		{
			name:     "user may rename themselves",
			actor:    alice,
			id:       1,
			username: strPtr("alice2"),
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {
				reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(alice, nil)
				reader.EXPECT().GetByUsername(gomock.Any(), "alice2").Return(nil, nil)
				writer.EXPECT().Update(gomock.Any(), int64(1), gomock.Any(), gomock.Any(), gomock.Nil()).Return(int64(1), nil)
				reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(renamed, nil)
			},
			want: renamed,
		},
		{
			name:  "superuser may update another user",
			actor: admin,
			id:    1,
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {
				reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(alice, nil)
				writer.EXPECT().Update(gomock.Any(), int64(1), gomock.Nil(), gomock.Nil(), gomock.Nil()).Return(int64(1), nil)
				reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(alice, nil)
			},
			want: alice,
		},
		{
			name:  "non-owner denied",
			actor: bob,
			id:    1,
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {
				reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(alice, nil)
			},
			wantErr: services.ErrPermissionDenied,
		},
		{
			name:        "ordinary user cannot grant superuser to themselves",
			actor:       alice,
			id:          1,
			isSuperuser: boolPtr(true),
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {
				reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(alice, nil)
			},
			wantErr: services.ErrPermissionDenied,
		},
		{
			name:        "superuser may change the flag",
			actor:       admin,
			id:          1,
			isSuperuser: boolPtr(true),
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {
				reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(alice, nil)
				writer.EXPECT().Update(gomock.Any(), int64(1), gomock.Nil(), gomock.Nil(), gomock.Any()).Return(int64(1), nil)
				reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(alice, nil)
			},
			want: alice,
		},
		{
			name:     "new username already taken",
			actor:    alice,
			id:       1,
			username: strPtr("bob"),
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {
				reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(alice, nil)
				reader.EXPECT().GetByUsername(gomock.Any(), "bob").Return(bob, nil)
			},
			wantErr: services.ErrUserAlreadyExists,
		},
		{
			name:  "missing user",
			actor: alice,
			id:    99,
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {
				reader.EXPECT().GetByID(gomock.Any(), int64(99)).Return(nil, nil)
			},
			wantErr: services.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader := services.NewMockUserReader(ctrl)
			mockWriter := services.NewMockUserWriter(ctrl)
			tt.mockSetup(mockReader, mockWriter)

			svc := services.NewUserService(mockReader, mockWriter)

			got, err := svc.Update(context.Background(), tt.actor, tt.id, tt.username, nil, tt.isSuperuser)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestUserService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	alice := &models.UserDB{ID: 1, Username: "alice"}
	bob := &models.UserDB{ID: 2, Username: "bob"}
	admin := &models.UserDB{ID: 3, Username: "root", IsSuperuser: true}

	tests := []struct {
		name      string
		actor     *models.UserDB
		id        int64
		mockSetup func(reader *services.MockUserReader, writer *services.MockUserWriter)
		wantErr   error
	}{
		{
			name:  "user may delete themselves",
			actor: alice,
			id:    1,
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {
				reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(alice, nil)
				writer.EXPECT().Delete(gomock.Any(), int64(1)).Return(int64(1), nil)
			},
		},
		{
			name:  "superuser may delete anyone",
			actor: admin,
			id:    1,
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {
				reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(alice, nil)
				writer.EXPECT().Delete(gomock.Any(), int64(1)).Return(int64(1), nil)
			},
		},
		{
			name:  "non-owner denied",
			actor: bob,
			id:    1,
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {
				reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(alice, nil)
			},
			wantErr: services.ErrPermissionDenied,
		},
		{
			name:  "missing user",
			actor: alice,
			id:    99,
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {
				reader.EXPECT().GetByID(gomock.Any(), int64(99)).Return(nil, nil)
			},
			wantErr: services.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader := services.NewMockUserReader(ctrl)
			mockWriter := services.NewMockUserWriter(ctrl)
			tt.mockSetup(mockReader, mockWriter)

			svc := services.NewUserService(mockReader, mockWriter)

			err := svc.Delete(context.Background(), tt.actor, tt.id)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
