package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/user-service/internal/domain"
)

var userCols = []string{"id", "name", "email", "phone", "password_hash", "role", "created_at", "updated_at"}

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, UserRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewUserRepository(mock)
}

func userRow(mock pgxmock.PgxPoolIface, id string, now time.Time) *pgxmock.Rows {
	return mock.NewRows(userCols).
		AddRow(id, "A", "a@x.com", "1", "hash", domain.RoleUser, now, now)
}

func TestUserRepository_Create(t *testing.T) {
	mock, repo := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("id-1", "A", "a@x.com", "1", "hash", domain.RoleUser).
		WillReturnRows(mock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	user := &domain.User{
		ID:           "id-1",
		Name:         "A",
		Email:        "a@x.com",
		Phone:        "1",
		PasswordHash: "hash",
		Role:         domain.RoleUser,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, now, user.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_UniqueViolation(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("id-1", "A", "a@x.com", "1", "hash", domain.RoleUser).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &domain.User{
		ID:           "id-1",
		Name:         "A",
		Email:        "a@x.com",
		Phone:        "1",
		PasswordHash: "hash",
		Role:         domain.RoleUser,
	})
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
}

func TestUserRepository_GetByID(t *testing.T) {
	mock, repo := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id=\$1`).
		WithArgs("id-1").
		WillReturnRows(userRow(mock, "id-1", now))

	user, err := repo.GetByID(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, domain.RoleUser, user.Role)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id=\$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestUserRepository_List(t *testing.T) {
	mock, repo := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM users ORDER BY created_at`).
		WillReturnRows(mock.NewRows(userCols).
			AddRow("id-1", "A", "a@x.com", "1", "hash", domain.RoleUser, now, now).
			AddRow("id-2", "B", "b@x.com", "2", "hash", domain.RoleAdmin, now, now))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, domain.RoleAdmin, users[1].Role)
}

func TestUserRepository_List_Empty(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM users ORDER BY created_at`).
		WillReturnRows(mock.NewRows(userCols))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUserRepository_Update_Partial(t *testing.T) {
	mock, repo := newMockRepo(t)
	now := time.Now()
	name := "B"
	var nilStr *string

	mock.ExpectQuery(`UPDATE users SET`).
		WithArgs("id-1", &name, nilStr, nilStr, nilStr, nilStr).
		WillReturnRows(mock.NewRows(userCols).
			AddRow("id-1", "B", "a@x.com", "1", "hash", domain.RoleUser, now, now))

	user, err := repo.Update(context.Background(), "id-1", domain.UserPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "B", user.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update_NotFound(t *testing.T) {
	mock, repo := newMockRepo(t)
	var nilStr *string

	mock.ExpectQuery(`UPDATE users SET`).
		WithArgs("missing", nilStr, nilStr, nilStr, nilStr, nilStr).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Update(context.Background(), "missing", domain.UserPatch{})
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestUserRepository_Delete(t *testing.T) {
	mock, repo := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`DELETE FROM users WHERE id=\$1`).
		WithArgs("id-1").
		WillReturnRows(userRow(mock, "id-1", now))

	user, err := repo.Delete(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, "id-1", user.ID)
}

func TestUserRepository_Delete_NotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`DELETE FROM users WHERE id=\$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}
