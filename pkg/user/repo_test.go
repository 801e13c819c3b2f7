package user_test

import (
	"context"
	"database/sql"
	"testing"

	"todoapp/pkg/user"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	assert.NoError(t, err)

	schema := `
	CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		password TEXT NOT NULL
	);`

	_, err = db.Exec(schema)
	assert.NoError(t, err)

	return db
}

func setupTestBadDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	assert.NoError(t, err)

	schema := `
	CREATE TABLE users (
		id TEXT PRIMARY KEY,
		password TEXT NOT NULL
	);`

	_, err = db.Exec(schema)
	assert.NoError(t, err)

	return db
}

func TestMySQLRepo_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := user.NewMySQLRepo(db)

	alice := &user.User{
		ID:       "user123",
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "hashed_pass",
	}
	assert.NoError(t, repo.Create(ctx, alice))

	dup := &user.User{
		ID:       "user123",
		Email:    "other@example.com",
		Name:     "Other",
		Password: "hashed_pass",
	}
	assert.Error(t, repo.Create(ctx, dup))

	u, err := repo.FindByEmail(ctx, alice.Email)
	assert.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)

	u2, err := repo.FindByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, user.ErrNotFound)
	assert.Nil(t, u2)

	db2 := setupTestBadDB(t)
	repo2 := user.NewMySQLRepo(db2)

	_, err = repo2.FindByEmail(ctx, "whoever")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, user.ErrNotFound)
}
