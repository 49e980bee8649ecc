package service

import (
	"context"
	"strings"

	"exam-byte/internal/domain"
	"exam-byte/internal/logger"

	"go.uber.org/zap"
)

// DocumentInput describes one file of an upload.
type DocumentInput struct {
	FileName  string
	Subject   string
	SizeBytes int64
}

// UploadResult is what one upload recorded.
type UploadResult struct {
	Documents []*domain.Document
	Quota     *domain.QuotaState
}

// DeleteDocumentResult reports the storage a deletion gave back.
type DeleteDocumentResult struct {
	FreedBytes int64
	Quota      *domain.QuotaState
}

// DocumentService records uploaded documents against the owner's quota.
// Reserving or releasing quota and writing the document rows share one
// transaction.
type DocumentService interface {
	Register(ctx context.Context, userID string, docs []DocumentInput) (*UploadResult, error)
	List(ctx context.Context, userID string) ([]*domain.Document, error)
	Delete(ctx context.Context, userID, documentID string) (*DeleteDocumentResult, error)
}

type documentService struct {
	quota        QuotaService
	documentRepo domain.DocumentRepository
	txManager    domain.TransactionManager
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(quota QuotaService, documentRepo domain.DocumentRepository, txManager domain.TransactionManager) DocumentService {
	return &documentService{quota: quota, documentRepo: documentRepo, txManager: txManager}
}

// Register implements DocumentService. Either every document is recorded
// and counted, or none is.
func (s *documentService) Register(ctx context.Context, userID string, docs []DocumentInput) (*UploadResult, error) {
	if len(docs) == 0 {
		return nil, domain.NewInvalidInputError("at least one document is required")
	}

	documents := make([]*domain.Document, 0, len(docs))
	sizes := make([]int64, 0, len(docs))
	for _, in := range docs {
		doc := &domain.Document{
			UserID:    userID,
			FileName:  strings.TrimSpace(in.FileName),
			Subject:   strings.TrimSpace(in.Subject),
			SizeBytes: in.SizeBytes,
		}
		if err := doc.Validate(); err != nil {
			return nil, err
		}
		doc.Type, _ = domain.DocumentTypeOf(doc.FileName)
		documents = append(documents, doc)
		sizes = append(sizes, doc.SizeBytes)
	}

	var quota *domain.QuotaState
	err := inTransaction(ctx, s.txManager, "failed to record upload", func(txCtx context.Context) error {
		var err error
		quota, err = s.quota.ReserveUpload(txCtx, userID, sizes...)
		if err != nil {
			return err
		}
		for _, doc := range documents {
			if err := s.documentRepo.SaveDocument(txCtx, doc); err != nil {
				return domain.NewInternalError("failed to save document", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Info("Upload recorded",
		zap.String("user_id", userID),
		zap.Int("documents", len(documents)),
		zap.Int64("storage_used", quota.StorageUsed))
	return &UploadResult{Documents: documents, Quota: quota}, nil
}

// List implements DocumentService
func (s *documentService) List(ctx context.Context, userID string) ([]*domain.Document, error) {
	documents, err := s.documentRepo.ListDocumentsByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list documents", err)
	}
	return documents, nil
}

// Delete implements DocumentService
func (s *documentService) Delete(ctx context.Context, userID, documentID string) (*DeleteDocumentResult, error) {
	var result DeleteDocumentResult
	err := inTransaction(ctx, s.txManager, "failed to delete document", func(txCtx context.Context) error {
		doc, err := s.documentRepo.GetDocumentByID(txCtx, documentID)
		if err != nil {
			return domain.NewInternalError("failed to load document", err)
		}
		if doc == nil {
			return domain.NewNotFoundError("document not found: " + documentID)
		}
		if doc.UserID != userID {
			return domain.NewUnauthorizedError("document belongs to another user")
		}

		if err := s.documentRepo.DeleteDocument(txCtx, documentID); err != nil {
			if domain.IsCode(err, domain.CodeNotFound) {
				return err
			}
			return domain.NewInternalError("failed to delete document", err)
		}
		quota, err := s.quota.ReleaseStorage(txCtx, userID, doc.SizeBytes)
		if err != nil {
			return err
		}
		result = DeleteDocumentResult{FreedBytes: doc.SizeBytes, Quota: quota}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Info("Document deleted",
		zap.String("document_id", documentID),
		zap.String("user_id", userID),
		zap.Int64("freed_bytes", result.FreedBytes))
	return &result, nil
}
