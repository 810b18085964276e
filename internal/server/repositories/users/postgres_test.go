package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/watchlist/internal/common"
	"github.com/dmitrijs2005/watchlist/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	qCreate   = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*username,\s*secret_hash\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+created_at\s*$`
	qByLogin  = `(?s)^SELECT\s+id,\s*username,\s*secret_hash,\s*created_at\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1\s*$`
	qLock     = `(?s)^SELECT\s+id\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s+FOR\s+UPDATE\s*$`
	qAddItem  = `(?s)^INSERT\s+INTO\s+user_list_items\s*\(user_id,\s*list,\s*item_id\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*ON\s+CONFLICT\s+DO\s+NOTHING\s*$`
	qDelItem  = `(?s)^DELETE\s+FROM\s+user_list_items\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+list\s*=\s*\$2\s+AND\s+item_id\s*=\s*\$3\s*$`
	qGetList  = `(?s)^SELECT\s+i\.item_id\s+FROM\s+users\s+u\s+LEFT\s+JOIN\s+user_list_items\s+i\s+ON.*WHERE\s+u\.id\s*=\s*\$1\s+ORDER\s+BY\s+i\.seq\s*$`
	userIDFix = "6f1c2a52-0c3e-4d9a-9d0e-3f7f5d1b9a11"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewPostgresRepository(db), mock
}

func TestCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery(qCreate).
		WithArgs(sqlmock.AnyArg(), "alice", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	got, err := repo.Create(context.Background(), &models.User{UserName: "alice", SecretHash: "hash"})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "alice", got.UserName)
	assert.Equal(t, created, got.CreatedAt)
}

func TestCreate_KeepsProvidedID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(qCreate).
		WithArgs(userIDFix, "alice", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	got, err := repo.Create(context.Background(), &models.User{ID: userIDFix, UserName: "alice", SecretHash: "hash"})
	require.NoError(t, err)
	assert.Equal(t, userIDFix, got.ID)
}

func TestCreate_Duplicate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(qCreate).
		WithArgs(sqlmock.AnyArg(), "alice", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	_, err := repo.Create(context.Background(), &models.User{UserName: "alice", SecretHash: "hash"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(qCreate).
		WithArgs(sqlmock.AnyArg(), "alice", "hash").
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{UserName: "alice", SecretHash: "hash"})
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func TestGetUserByLogin(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		rows := sqlmock.NewRows([]string{"id", "username", "secret_hash", "created_at"}).
			AddRow(userIDFix, "alice", "hash", time.Now())
		mock.ExpectQuery(qByLogin).WithArgs("alice").WillReturnRows(rows)

		got, err := repo.GetUserByLogin(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, userIDFix, got.ID)
		assert.Equal(t, "hash", got.SecretHash)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(qByLogin).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetUserByLogin(context.Background(), "ghost")
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(qByLogin).WithArgs("alice").WillReturnError(errors.New("db err"))

		_, err := repo.GetUserByLogin(context.Background(), "alice")
		require.Error(t, err)
		assert.NotErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestLockUser(t *testing.T) {
	t.Run("exists", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(qLock).WithArgs(userIDFix).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(userIDFix))

		require.NoError(t, repo.LockUser(context.Background(), userIDFix))
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(qLock).WithArgs("nobody").WillReturnError(sql.ErrNoRows)

		assert.ErrorIs(t, repo.LockUser(context.Background(), "nobody"), common.ErrorNotFound)
	})
}

func TestAddAndRemoveListItem(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(qAddItem).WithArgs(userIDFix, "favourites", "42").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(qDelItem).WithArgs(userIDFix, "history", "7").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(qAddItem).WithArgs(userIDFix, "favourites", "43").
		WillReturnError(errors.New("fk violation"))

	require.NoError(t, repo.AddListItem(context.Background(), userIDFix, models.ListFavourites, "42"))
	require.NoError(t, repo.RemoveListItem(context.Background(), userIDFix, models.ListHistory, "7"))

	err := repo.AddListItem(context.Background(), userIDFix, models.ListFavourites, "43")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fk violation")
}

func TestGetList(t *testing.T) {
	t.Run("items in order", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(qGetList).WithArgs(userIDFix, "favourites").
			WillReturnRows(sqlmock.NewRows([]string{"item_id"}).AddRow("42").AddRow("7"))

		got, err := repo.GetList(context.Background(), userIDFix, models.ListFavourites)
		require.NoError(t, err)
		assert.Equal(t, []string{"42", "7"}, got)
	})

	t.Run("empty list", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(qGetList).WithArgs(userIDFix, "history").
			WillReturnRows(sqlmock.NewRows([]string{"item_id"}).AddRow(nil))

		got, err := repo.GetList(context.Background(), userIDFix, models.ListHistory)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(qGetList).WithArgs("nobody", "history").
			WillReturnRows(sqlmock.NewRows([]string{"item_id"}))

		_, err := repo.GetList(context.Background(), "nobody", models.ListHistory)
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(qGetList).WithArgs(userIDFix, "history").
			WillReturnError(errors.New("boom"))

		_, err := repo.GetList(context.Background(), userIDFix, models.ListHistory)
		require.Error(t, err)
	})
}

func TestPing(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`SELECT 1`).WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	require.NoError(t, repo.Ping(context.Background()))
}
