package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"exam-byte/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var documentRowColumns = []string{"ID", "USER_ID", "FILE_NAME", "FILE_TYPE", "SUBJECT", "SIZE_BYTES", "CREATED_AT"}

func TestDocumentDatabaseAdapter_SaveDocument(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewDocumentDatabaseAdapter(db)

	doc := &domain.Document{UserID: "user1", FileName: "notes.pdf", Type: domain.DocumentPDF, SizeBytes: 2048}

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(sqlmock.AnyArg(), "user1", "notes.pdf", "pdf", nil, int64(2048), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SaveDocument(context.Background(), doc))
	assert.NotEmpty(t, doc.ID)
	assert.False(t, doc.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentDatabaseAdapter_GetDocumentByID(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewDocumentDatabaseAdapter(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM documents WHERE id = :1`).
		WithArgs("d1").
		WillReturnRows(sqlmock.NewRows(documentRowColumns).AddRow("d1", "user1", "ch1.txt", "txt", "history", 512, now))
	got, err := repo.GetDocumentByID(context.Background(), "d1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.DocumentTXT, got.Type)
	assert.Equal(t, "history", got.Subject)
	assert.Equal(t, int64(512), got.SizeBytes)

	mock.ExpectQuery(`SELECT (.+) FROM documents WHERE id = :1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(documentRowColumns))
	got, err = repo.GetDocumentByID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentDatabaseAdapter_ListDocumentsByUser(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewDocumentDatabaseAdapter(db)
	now := time.Now()

	rows := sqlmock.NewRows(documentRowColumns).
		AddRow("d2", "user1", "b.docx", "docx", nil, 30, now).
		AddRow("d1", "user1", "a.pdf", "pdf", nil, 20, now.Add(-time.Hour))
	mock.ExpectQuery(`SELECT (.+) FROM documents WHERE user_id = :1 ORDER BY created_at DESC`).
		WithArgs("user1").
		WillReturnRows(rows)

	got, err := repo.ListDocumentsByUser(context.Background(), "user1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "d2", got[0].ID)
	assert.Empty(t, got[0].Subject)

	mock.ExpectQuery("SELECT (.+) FROM documents").WillReturnError(errors.New("ORA-03113"))
	_, err = repo.ListDocumentsByUser(context.Background(), "user1")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentDatabaseAdapter_DeleteDocument(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewDocumentDatabaseAdapter(db)

	mock.ExpectExec("DELETE FROM documents WHERE id = :1").WithArgs("d1").WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.DeleteDocument(context.Background(), "d1"))

	mock.ExpectExec("DELETE FROM documents WHERE id = :1").WithArgs("d2").WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.DeleteDocument(context.Background(), "d2")
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Deleting a document and releasing its storage commit together.
func TestDocumentDatabaseAdapter_DeleteWithQuotaReleaseRollsBack(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	docs := NewDocumentDatabaseAdapter(db)
	users := NewSQLXUserRepository(db)
	txManager := NewTransactionManagerAdapter(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM documents WHERE id = :1").WithArgs("d1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE users SET").WillReturnError(errors.New("ORA-00060: deadlock detected"))
	mock.ExpectRollback()

	err := txManager.WithTransaction(context.Background(), func(ctx context.Context) error {
		if err := docs.DeleteDocument(ctx, "d1"); err != nil {
			return err
		}
		return users.UpdateQuota(ctx, "user1", domain.QuotaState{StorageUsed: 0, Version: 3})
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
