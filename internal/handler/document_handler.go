package handler

import (
	"exam-byte/internal/domain"
	"exam-byte/internal/dto"
	"exam-byte/internal/service"
	"exam-byte/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// DocumentHandler exposes upload accounting and the caller's documents.
type DocumentHandler struct {
	documents service.DocumentService
	validator *validation.Validator
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documents service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents, validator: validation.NewValidator()}
}

// RegisterUpload godoc
// @Summary Record an upload
// @Description Records the documents of one upload and counts them against the daily and storage limits
// @Tags documents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.RegisterUploadRequest true "Documents"
// @Success 201 {object} dto.UploadResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Router /uploads [post]
func (h *DocumentHandler) RegisterUpload(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.RegisterUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateRegisterUploadRequest(&req); len(errs) > 0 {
		return errs
	}

	inputs := make([]service.DocumentInput, len(req.Documents))
	for i, d := range req.Documents {
		inputs[i] = service.DocumentInput{FileName: d.FileName, Subject: d.Subject, SizeBytes: d.Size}
	}

	result, err := h.documents.Register(c.UserContext(), userID, inputs)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewUploadResponse(result.Documents, result.Quota))
}

// List godoc
// @Summary List documents
// @Description Lists the caller's uploaded documents, newest first
// @Tags documents
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.DocumentListResponse
// @Router /documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	documents, err := h.documents.List(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDocumentListResponse(documents))
}

// Delete godoc
// @Summary Delete a document
// @Description Deletes one of the caller's documents and gives its bytes back to the storage quota
// @Tags documents
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Document ID (ULID)"
// @Success 200 {object} dto.DeleteDocumentResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	result, err := h.documents.Delete(c.UserContext(), userID, pathID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.DeleteDocumentResponse{
		FreedSpace: result.FreedBytes,
		Quota:      dto.NewQuotaResponse(result.Quota),
	})
}
