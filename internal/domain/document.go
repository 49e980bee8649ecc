package domain

import (
	"context"
	"path"
	"strings"
	"time"
)

// DocumentType is the kind of study material a document holds.
type DocumentType string

const (
	DocumentPDF  DocumentType = "pdf"
	DocumentDOCX DocumentType = "docx"
	DocumentTXT  DocumentType = "txt"
)

// DocumentTypeOf derives the type from the file extension.
func DocumentTypeOf(fileName string) (DocumentType, bool) {
	switch t := DocumentType(strings.TrimPrefix(strings.ToLower(path.Ext(fileName)), ".")); t {
	case DocumentPDF, DocumentDOCX, DocumentTXT:
		return t, true
	}
	return "", false
}

// Document is an uploaded file whose bytes count against the owner's storage.
type Document struct {
	ID        string
	UserID    string
	FileName  string
	Type      DocumentType
	Subject   string
	SizeBytes int64
	CreatedAt time.Time
}

// Validate validates the document
func (d *Document) Validate() error {
	if strings.TrimSpace(d.FileName) == "" {
		return NewInvalidInputError("file name is required")
	}
	if _, ok := DocumentTypeOf(d.FileName); !ok {
		return NewInvalidInputError("unsupported document type: " + d.FileName)
	}
	if d.SizeBytes < 0 {
		return NewInvalidInputError("document size must not be negative")
	}
	return nil
}

// DocumentRepository defines the interface for document persistence
type DocumentRepository interface {
	SaveDocument(ctx context.Context, document *Document) error
	// GetDocumentByID returns nil, nil when the document does not exist.
	GetDocumentByID(ctx context.Context, documentID string) (*Document, error)
	ListDocumentsByUser(ctx context.Context, userID string) ([]*Document, error)
	DeleteDocument(ctx context.Context, documentID string) error
}
