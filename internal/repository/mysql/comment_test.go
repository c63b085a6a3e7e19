package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Guyuepp/Go-Blog-Platform/domain"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return gdb, mock
}

func commentRows(ids ...int64) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "blog_post_id", "author_id", "parent_comment_id", "text", "created_at"})
	for _, id := range ids {
		rows.AddRow(id, 1, 7, nil, "some text", time.Now())
	}
	return rows
}

func TestFetchTopLevel_NoCursor(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewCommentRepository(gdb)

	mock.ExpectQuery("SELECT \\* FROM `comment` WHERE blog_post_id = \\? AND parent_comment_id IS NULL ORDER BY id DESC").
		WillReturnRows(commentRows(9, 8, 7))

	res, err := repo.FetchTopLevel(context.Background(), 1, 0, 4)
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.EqualValues(t, 9, res[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchTopLevel_WithCursor(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewCommentRepository(gdb)

	mock.ExpectQuery("SELECT \\* FROM `comment` WHERE \\(blog_post_id = \\? AND parent_comment_id IS NULL\\) AND id < \\? ORDER BY id DESC").
		WillReturnRows(commentRows(6, 5))

	res, err := repo.FetchTopLevel(context.Background(), 1, 7, 4)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchReplies_WithCursor(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewCommentRepository(gdb)

	mock.ExpectQuery("SELECT \\* FROM `comment` WHERE parent_comment_id = \\? AND id > \\? ORDER BY id ASC").
		WillReturnRows(commentRows(12, 13))

	res, err := repo.FetchReplies(context.Background(), 4, 11, 3)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.EqualValues(t, 12, res[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByParent(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewCommentRepository(gdb)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `comment` WHERE parent_comment_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	count, err := repo.CountByParent(context.Background(), 4)
	require.NoError(t, err)
	assert.EqualValues(t, 5, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewCommentRepository(gdb)

	mock.ExpectQuery("SELECT \\* FROM `comment` WHERE id = \\?").
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateText_NoRowMeansNotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewCommentRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `comment` SET `text`=\\?").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.UpdateText(context.Background(), 404, "new text")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteWithReplies_SingleTransaction(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewCommentRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `comment` WHERE `comment`.`id` = \\?").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `comment` WHERE parent_comment_id = \\?").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := repo.DeleteWithReplies(context.Background(), 4)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteWithReplies_MissingCommentRollsBack(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewCommentRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `comment` WHERE `comment`.`id` = \\?").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.DeleteWithReplies(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOrphanReplies(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewCommentRepository(gdb)

	mock.ExpectExec("DELETE c FROM comment c LEFT JOIN comment p").
		WillReturnResult(sqlmock.NewResult(0, 3))

	removed, err := repo.DeleteOrphanReplies(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, removed)
}
