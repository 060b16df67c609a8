package services

import (
	"context"
	"errors"

	"github.com/sbilibin2017/blog-service/internal/logger"
	"github.com/sbilibin2017/blog-service/internal/models"
	"github.com/sbilibin2017/blog-service/internal/policy"
)

// ErrUserNotFound is returned when the requested user does not exist.
var ErrUserNotFound = errors.New("user not found")

// UserService handles user resource operations.
type UserService struct {
	reader UserReader
	writer UserWriter
}

// NewUserService creates a new UserService.
func NewUserService(reader UserReader, writer UserWriter) *UserService {
	return &UserService{
		reader: reader,
		writer: writer,
	}
}

// List returns all users.
func (svc *UserService) List(ctx context.Context) ([]models.UserDB, error) {
	users, err := svc.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, err
	}
	return users, nil
}

// Get returns a user by id.
func (svc *UserService) Get(ctx context.Context, id int64) (*models.UserDB, error) {
	user, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", id, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Update applies a partial update to a user record. The actor must be
// the user themselves or a superuser; only a superuser may change the
// is_superuser flag.
func (svc *UserService) Update(ctx context.Context, actor *models.UserDB, id int64, username, email *string, isSuperuser *bool) (*models.UserDB, error) {
	user, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", id, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if !policy.CanWrite(actor, user.ID) {
		logger.Log.Errorw("user update denied", "user_id", id, "actor_id", actor.ID)
		return nil, ErrPermissionDenied
	}
	if isSuperuser != nil && !actor.IsSuperuser {
		logger.Log.Errorw("superuser flag change denied", "user_id", id, "actor_id", actor.ID)
		return nil, ErrPermissionDenied
	}

	if username != nil && *username != user.Username {
		existing, err := svc.reader.GetByUsername(ctx, *username)
		if err != nil {
			logger.Log.Errorw("failed to check username", "err", err)
			return nil, err
		}
		if existing != nil {
			return nil, ErrUserAlreadyExists
		}
	}

	if _, err := svc.writer.Update(ctx, id, username, email, isSuperuser); err != nil {
		logger.Log.Errorw("failed to update user", "user_id", id, "err", err)
		return nil, err
	}

	updated, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to reload user", "user_id", id, "err", err)
		return nil, err
	}

	return updated, nil
}

// Delete removes a user and, via the FK cascade, all their posts. The
// actor must be the user themselves or a superuser.
func (svc *UserService) Delete(ctx context.Context, actor *models.UserDB, id int64) error {
	user, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", id, "err", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if !policy.CanWrite(actor, user.ID) {
		logger.Log.Errorw("user delete denied", "user_id", id, "actor_id", actor.ID)
		return ErrPermissionDenied
	}

	if _, err := svc.writer.Delete(ctx, id); err != nil {
		logger.Log.Errorw("failed to delete user", "user_id", id, "err", err)
		return err
	}

	return nil
}
