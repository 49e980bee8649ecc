package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"exam-byte/internal/domain"
	"exam-byte/internal/repository/models"
	"exam-byte/internal/util"

	"github.com/jmoiron/sqlx"
)

const documentColumns = `ID, USER_ID, FILE_NAME, FILE_TYPE, SUBJECT, SIZE_BYTES, CREATED_AT`

// DocumentDatabaseAdapter implements domain.DocumentRepository using sqlx.DB
type DocumentDatabaseAdapter struct {
	db *sqlx.DB
}

// NewDocumentDatabaseAdapter creates a new instance of DocumentDatabaseAdapter
func NewDocumentDatabaseAdapter(db *sqlx.DB) domain.DocumentRepository {
	return &DocumentDatabaseAdapter{db: db}
}

func toDomainDocument(m *models.Document) *domain.Document {
	return &domain.Document{
		ID:        m.ID,
		UserID:    m.UserID,
		FileName:  m.FileName,
		Type:      domain.DocumentType(m.FileType),
		Subject:   m.Subject.String,
		SizeBytes: m.SizeBytes,
		CreatedAt: m.CreatedAt,
	}
}

// SaveDocument implements domain.DocumentRepository. The ID is generated when empty.
func (a *DocumentDatabaseAdapter) SaveDocument(ctx context.Context, document *domain.Document) error {
	if document == nil {
		return fmt.Errorf("cannot save nil document")
	}
	if document.ID == "" {
		document.ID = util.NewULID()
	}
	if document.CreatedAt.IsZero() {
		document.CreatedAt = time.Now()
	}

	query := `INSERT INTO documents (` + documentColumns + `) VALUES (:1, :2, :3, :4, :5, :6, :7)`
	_, err := GetExecutor(ctx, a.db).ExecContext(ctx, query,
		document.ID,
		document.UserID,
		document.FileName,
		string(document.Type),
		util.StringToNullString(document.Subject),
		document.SizeBytes,
		document.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// GetDocumentByID implements domain.DocumentRepository
func (a *DocumentDatabaseAdapter) GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	var m models.Document
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = :1`
	if err := GetExecutor(ctx, a.db).GetContext(ctx, &m, query, documentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document %s: %w", documentID, err)
	}
	return toDomainDocument(&m), nil
}

// ListDocumentsByUser implements domain.DocumentRepository, newest first.
func (a *DocumentDatabaseAdapter) ListDocumentsByUser(ctx context.Context, userID string) ([]*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE user_id = :1 ORDER BY created_at DESC`

	var rows []models.Document
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	out := make([]*domain.Document, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainDocument(&rows[i]))
	}
	return out, nil
}

// DeleteDocument implements domain.DocumentRepository
func (a *DocumentDatabaseAdapter) DeleteDocument(ctx context.Context, documentID string) error {
	result, err := GetExecutor(ctx, a.db).ExecContext(ctx, `DELETE FROM documents WHERE id = :1`, documentID)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return checkRowsAffected(result, "document not found: "+documentID)
}
