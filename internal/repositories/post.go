package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/blog-service/internal/logger"
	"github.com/sbilibin2017/blog-service/internal/models"
)

// PostReadRepository handles post read operations
type PostReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewPostReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *PostReadRepository {
	return &PostReadRepository{db: db, txGetter: txGetter}
}

func (r *PostReadRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// GetByID returns the post joined with its owner's username, or nil if absent.
func (r *PostReadRepository) GetByID(ctx context.Context, id int64) (*models.PostWithAuthor, error) {
	const query = `
		SELECT p.id, p.title, p.text, p.user_id, p.created_at, p.updated_at, u.username
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`

	var post models.PostWithAuthor
	err := sqlx.GetContext(ctx, r.executor(ctx), &post, query, id)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &post, nil
}

// List returns all posts joined with owner usernames, oldest first.
func (r *PostReadRepository) List(ctx context.Context) ([]models.PostWithAuthor, error) {
	const query = `
		SELECT p.id, p.title, p.text, p.user_id, p.created_at, p.updated_at, u.username
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at, p.id
	`

	var posts []models.PostWithAuthor
	err := sqlx.SelectContext(ctx, r.executor(ctx), &posts, query)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"result", len(posts),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return posts, nil
}

// PostWriteRepository handles post write operations
type PostWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewPostWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *PostWriteRepository {
	return &PostWriteRepository{db: db, txGetter: txGetter}
}

func (r *PostWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a new post owned by userID and returns its generated id.
func (r *PostWriteRepository) Save(ctx context.Context, title string, text *string, userID int64) (int64, error) {
	const query = `
		INSERT INTO posts (title, text, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id
	`
	args := []any{title, text, userID}

	var id int64
	err := sqlx.GetContext(ctx, r.executor(ctx), &id, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", id,
		"error", err,
	)

	return id, err
}

// Update applies a partial update and refreshes updated_at. The owner
// and created_at are never touched.
func (r *PostWriteRepository) Update(ctx context.Context, id int64, title, text *string) (int64, error) {
	const query = `
		UPDATE posts
		SET title = COALESCE($2, title),
		    text = COALESCE($3, text),
		    updated_at = NOW()
		WHERE id = $1
	`
	args := []any{id, title, text}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	return rowsAffected, err
}

// Delete removes a post permanently.
func (r *PostWriteRepository) Delete(ctx context.Context, id int64) (int64, error) {
	const query = `DELETE FROM posts WHERE id = $1`

	res, err := r.executor(ctx).ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", query,
		"args", []any{id},
		"result", rowsAffected,
		"error", err,
	)

	return rowsAffected, err
}
