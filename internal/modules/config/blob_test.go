package config

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseBlobStore(t *testing.T, blobs BlobStore) {
	t.Helper()
	ctx := context.Background()

	_, err := blobs.Get(ctx, BlobKey)
	assert.ErrorIs(t, err, ErrBlobNotFound)

	require.NoError(t, blobs.Put(ctx, BlobKey, []byte(`{"a":1}`)))
	require.NoError(t, blobs.Put(ctx, BlobKey, []byte(`{"a":2}`)))
	got, err := blobs.Get(ctx, BlobKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":2}`, string(got))

	require.NoError(t, blobs.Delete(ctx, BlobKey))
	require.NoError(t, blobs.Delete(ctx, BlobKey))
	_, err = blobs.Get(ctx, BlobKey)
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func TestMemoryBlobStore(t *testing.T) {
	exerciseBlobStore(t, NewMemoryBlobStore())
}

func TestFileBlobStore(t *testing.T) {
	dir := t.TempDir()
	blobs, err := NewFileBlobStore(filepath.Join(dir, "data"))
	require.NoError(t, err)
	exerciseBlobStore(t, blobs)

	require.NoError(t, blobs.Put(context.Background(), BlobKey, []byte("{}")))
	entries, err := os.ReadDir(filepath.Join(dir, "data"))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
	assert.Equal(t, BlobKey+".json", entries[0].Name())
}

func TestPostgresBlobStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()
	blobs := NewPostgresBlobStore(db)

	selectQ := regexp.QuoteMeta(`SELECT value FROM config_blobs WHERE key=$1`)

	mock.ExpectQuery(selectQ).WithArgs(BlobKey).WillReturnError(sql.ErrNoRows)
	_, err = blobs.Get(ctx, BlobKey)
	assert.ErrorIs(t, err, ErrBlobNotFound)

	mock.ExpectExec(`INSERT INTO config_blobs`).
		WithArgs(BlobKey, `{"a":1}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, blobs.Put(ctx, BlobKey, []byte(`{"a":1}`)))

	mock.ExpectQuery(selectQ).WithArgs(BlobKey).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"a":1}`))
	got, err := blobs.Get(ctx, BlobKey)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM config_blobs WHERE key=$1`)).
		WithArgs(BlobKey).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, blobs.Delete(ctx, BlobKey))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS config_blobs`).WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, EnsureSchema(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreOverPostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT value FROM config_blobs`).WithArgs(BlobKey).WillReturnError(sql.ErrConnDone)
	s := NewStore(NewPostgresBlobStore(db), nil)
	assert.False(t, s.Load(context.Background()))
	assert.Equal(t, Default(), s.Snapshot())
	assert.NoError(t, mock.ExpectationsWereMet())
}
