package repository_test

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/online-shop/internal/models"
	repository "github.com/aaravmahajanofficial/online-shop/internal/repositories"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumnNames = []string{"id", "username", "email", "phone_number", "password", "is_staff", "created_at", "updated_at"}

func TestUserRepository_CreateUser(t *testing.T) {
	insertSQL := regexp.QuoteMeta(`INSERT INTO users (username, email, phone_number, password, is_staff, created_at, updated_at)`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		db, mock := newMock(t)
		repo := repository.NewUserRepo(db)
		user := &models.User{Username: "ada", Email: "ada@example.com", PhoneNumber: "+15550001", Password: "hash"}
		newID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(insertSQL).
			WithArgs(user.Username, user.Email, user.PhoneNumber, user.Password, false).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(newID.String(), now, now))

		// Act
		err := repo.CreateUser(t.Context(), user)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, newID, user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Duplicate email", func(t *testing.T) {
		// Arrange
		db, mock := newMock(t)
		repo := repository.NewUserRepo(db)
		user := &models.User{Username: "ada", Email: "ada@example.com"}

		mock.ExpectQuery(insertSQL).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		// Act
		err := repo.CreateUser(t.Context(), user)

		// Assert
		assert.ErrorIs(t, err, repository.ErrDuplicate)
		assert.Contains(t, err.Error(), "users_email_key")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetUserByEmail(t *testing.T) {
	selectSQL := regexp.QuoteMeta(`FROM users WHERE email = $1`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		db, mock := newMock(t)
		repo := repository.NewUserRepo(db)
		id := uuid.New()
		now := time.Now()

		mock.ExpectQuery(selectSQL).
			WithArgs("ada@example.com").
			WillReturnRows(sqlmock.NewRows(userColumnNames).AddRow(id.String(), "ada", "ada@example.com", "+15550001", "hash", true, now, now))

		// Act
		user, err := repo.GetUserByEmail(t.Context(), "ada@example.com")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.True(t, user.IsStaff)
		assert.Equal(t, "hash", user.Password)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not found", func(t *testing.T) {
		// Arrange
		db, mock := newMock(t)
		repo := repository.NewUserRepo(db)

		mock.ExpectQuery(selectSQL).WithArgs("ghost@example.com").WillReturnError(sql.ErrNoRows)

		// Act
		user, err := repo.GetUserByEmail(t.Context(), "ghost@example.com")

		// Assert
		assert.Nil(t, user)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_UpdateUser(t *testing.T) {
	// Arrange
	db, mock := newMock(t)
	repo := repository.NewUserRepo(db)
	user := &models.User{ID: uuid.New(), Username: "ada", Email: "new@example.com", PhoneNumber: "+15550002"}
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users SET username = $1, email = $2, phone_number = $3, updated_at = NOW()`)).
		WithArgs(user.Username, user.Email, user.PhoneNumber, user.ID).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	// Act
	err := repo.UpdateUser(t.Context(), user)

	// Assert
	require.NoError(t, err)
	assert.WithinDuration(t, now, user.UpdatedAt, time.Second)
	assert.NoError(t, mock.ExpectationsWereMet())
}
