package services

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/sbilibin2017/blog-service/internal/logger"
	"github.com/sbilibin2017/blog-service/internal/models"
	"github.com/sbilibin2017/blog-service/internal/policy"
	"github.com/segmentio/kafka-go"
)

// Error variables
var (
	ErrTitleRequired    = errors.New("title is required")
	ErrPostNotFound     = errors.New("post not found")
	ErrPermissionDenied = errors.New("permission denied")
)

// PostReader defines read operations for posts.
type PostReader interface {
	GetByID(ctx context.Context, id int64) (*models.PostWithAuthor, error)
	List(ctx context.Context) ([]models.PostWithAuthor, error)
}

// PostWriter defines write operations for posts.
type PostWriter interface {
	Save(ctx context.Context, title string, text *string, userID int64) (int64, error)
	Update(ctx context.Context, id int64, title, text *string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// PostService handles post CRUD and event publishing.
type PostService struct {
	reader      PostReader
	writer      PostWriter
	kafkaWriter KafkaWriter
}

// NewPostService creates a new PostService.
func NewPostService(reader PostReader, writer PostWriter, kafkaWriter KafkaWriter) *PostService {
	return &PostService{
		reader:      reader,
		writer:      writer,
		kafkaWriter: kafkaWriter,
	}
}

// publishEvent publishes a post lifecycle event to Kafka.
func (svc *PostService) publishEvent(ctx context.Context, event models.PostEvent) {
	if svc.kafkaWriter == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal post event", "err", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.PostID, 10)),
		Value: payload,
	}
	if err := svc.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish post event", "event", event.Event, "err", err)
	}
}

// List returns all posts with their owner usernames, oldest first.
func (svc *PostService) List(ctx context.Context) ([]models.PostWithAuthor, error) {
	posts, err := svc.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list posts", "err", err)
		return nil, err
	}
	return posts, nil
}

// Create creates a post owned by the actor.
func (svc *PostService) Create(ctx context.Context, actor *models.UserDB, title string, text *string) (*models.PostWithAuthor, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}

	id, err := svc.writer.Save(ctx, title, text, actor.ID)
	if err != nil {
		logger.Log.Errorw("failed to save post", "err", err)
		return nil, err
	}

	post, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to load created post", "post_id", id, "err", err)
		return nil, err
	}

	svc.publishEvent(ctx, models.PostEvent{
		Event:  "created",
		PostID: id,
		UserID: actor.ID,
		Title:  title,
		At:     time.Now(),
	})

	return post, nil
}

// Get returns a post by id.
func (svc *PostService) Get(ctx context.Context, id int64) (*models.PostWithAuthor, error) {
	post, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get post", "post_id", id, "err", err)
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Update applies a partial update to a post. Only the owner or a
// superuser may update; the owner never changes.
func (svc *PostService) Update(ctx context.Context, actor *models.UserDB, id int64, title, text *string) (*models.PostWithAuthor, error) {
	post, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get post", "post_id", id, "err", err)
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if !policy.CanWrite(actor, post.UserID) {
		logger.Log.Errorw("post update denied", "post_id", id, "actor_id", actor.ID)
		return nil, ErrPermissionDenied
	}

	if _, err := svc.writer.Update(ctx, id, title, text); err != nil {
		logger.Log.Errorw("failed to update post", "post_id", id, "err", err)
		return nil, err
	}

	updated, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to reload post", "post_id", id, "err", err)
		return nil, err
	}

	svc.publishEvent(ctx, models.PostEvent{
		Event:  "updated",
		PostID: id,
		UserID: post.UserID,
		Title:  updated.Title,
		At:     time.Now(),
	})

	return updated, nil
}

// Delete removes a post. Only the owner or a superuser may delete.
func (svc *PostService) Delete(ctx context.Context, actor *models.UserDB, id int64) error {
	post, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get post", "post_id", id, "err", err)
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	if !policy.CanWrite(actor, post.UserID) {
		logger.Log.Errorw("post delete denied", "post_id", id, "actor_id", actor.ID)
		return ErrPermissionDenied
	}

	if _, err := svc.writer.Delete(ctx, id); err != nil {
		logger.Log.Errorw("failed to delete post", "post_id", id, "err", err)
		return err
	}

	svc.publishEvent(ctx, models.PostEvent{
		Event:  "deleted",
		PostID: id,
		UserID: post.UserID,
		At:     time.Now(),
	})

	return nil
}
