package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgresContainer(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "5432")

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	assert.NoError(t, err)

	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		email VARCHAR(100),
		password_hash VARCHAR(255) NOT NULL,
		is_superuser BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS posts (
		id BIGSERIAL PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		text TEXT,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);
	`
	_, err = db.Exec(schema)
	assert.NoError(t, err)

	teardown := func() {
		db.Close()
		container.Terminate(context.Background())
	}

	return db, teardown
}

func TestUserWriteRepository_Save(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	repo := NewUserWriteRepository(db, nil)
	ctx := context.Background()

	id, err := repo.Save(ctx, "alice", "hash123", nil)
	assert.NoError(t, err)
	assert.Positive(t, id)

	var user struct {
		Username     string  `db:"username"`
		Email        *string `db:"email"`
		PasswordHash string  `db:"password_hash"`
		IsSuperuser  bool    `db:"is_superuser"`
	}
	err = db.Get(&user, "SELECT username, email, password_hash, is_superuser FROM users WHERE id=$1", id)
	assert.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.Nil(t, user.Email)
	assert.Equal(t, "hash123", user.PasswordHash)
	assert.False(t, user.IsSuperuser)
}

func TestUserWriteRepository_Save_DuplicateUsername(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	repo := NewUserWriteRepository(db, nil)
	ctx := context.Background()

	_, err := repo.Save(ctx, "alice", "hash123", nil)
	assert.NoError(t, err)

	_, err = repo.Save(ctx, "alice", "hash456", nil)
	assert.Error(t, err)
}

func TestUserReadRepository_GetByID(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db, nil)
	ctx := context.Background()

	id, err := writeRepo.Save(ctx, "bob", "hash", nil)
	assert.NoError(t, err)

	t.Run("existing user", func(t *testing.T) {
		user, err := readRepo.GetByID(ctx, id)
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "bob", user.Username)
	})

	t.Run("missing user returns nil without error", func(t *testing.T) {
		user, err := readRepo.GetByID(ctx, 999999)
		assert.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestUserReadRepository_GetByUsername(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db, nil)
	ctx := context.Background()

	_, err := writeRepo.Save(ctx, "charlie", "hash", nil)
	assert.NoError(t, err)

	t.Run("existing user", func(t *testing.T) {
		user, err := readRepo.GetByUsername(ctx, "charlie")
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "charlie", user.Username)
	})

	t.Run("missing user returns nil without error", func(t *testing.T) {
		user, err := readRepo.GetByUsername(ctx, "nobody")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestUserReadRepository_List(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db, nil)
	ctx := context.Background()

	_, err := writeRepo.Save(ctx, "alice", "hash", nil)
	assert.NoError(t, err)
	_, err = writeRepo.Save(ctx, "bob", "hash", nil)
	assert.NoError(t, err)

	users, err := readRepo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
}

func TestUserWriteRepository_Update(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db, nil)
	ctx := context.Background()

	id, err := writeRepo.Save(ctx, "dave", "hash", nil)
	assert.NoError(t, err)

	t.Run("partial update keeps absent fields", func(t *testing.T) {
		email := "dave@example.com"
		rows, err := writeRepo.Update(ctx, id, nil, &email, nil)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		user, err := readRepo.GetByID(ctx, id)
		assert.NoError(t, err)
		assert.Equal(t, "dave", user.Username)
		assert.NotNil(t, user.Email)
		assert.Equal(t, email, *user.Email)
		assert.False(t, user.IsSuperuser)
	})

	t.Run("superuser flag change", func(t *testing.T) {
		flag := true
		rows, err := writeRepo.Update(ctx, id, nil, nil, &flag)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		user, err := readRepo.GetByID(ctx, id)
		assert.NoError(t, err)
		assert.True(t, user.IsSuperuser)
	})

	t.Run("missing user affects no rows", func(t *testing.T) {
		username := "ghost"
		rows, err := writeRepo.Update(ctx, 999999, &username, nil, nil)
		assert.NoError(t, err)
		assert.Zero(t, rows)
	})
}

func TestUserWriteRepository_Delete_CascadesPosts(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	userWrite := NewUserWriteRepository(db, nil)
	postWrite := NewPostWriteRepository(db, nil)
	ctx := context.Background()

	userID, err := userWrite.Save(ctx, "eve", "hash", nil)
	assert.NoError(t, err)

	_, err = postWrite.Save(ctx, "post one", nil, userID)
	assert.NoError(t, err)
	_, err = postWrite.Save(ctx, "post two", nil, userID)
	assert.NoError(t, err)

	rows, err := userWrite.Delete(ctx, userID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	var postCount int
	err = db.Get(&postCount, "SELECT COUNT(*) FROM posts WHERE user_id=$1", userID)
	assert.NoError(t, err)
	assert.Zero(t, postCount)
}
