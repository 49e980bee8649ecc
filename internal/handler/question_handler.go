package handler

import (
	"strings"

	"exam-byte/internal/domain"
	"exam-byte/internal/dto"
	"exam-byte/internal/service"
	"exam-byte/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuestionHandler exposes the caller's question bank and quota-gated generation.
type QuestionHandler struct {
	generation service.GenerationService
	questions  service.QuestionService
	validator  *validation.Validator
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(generation service.GenerationService, questions service.QuestionService) *QuestionHandler {
	return &QuestionHandler{generation: generation, questions: questions, validator: validation.NewValidator()}
}

// Generate godoc
// @Summary Generate questions
// @Description Generates practice questions from study material and saves them
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.GenerateQuestionsRequest true "Generation request"
// @Success 201 {object} dto.GenerateQuestionsResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /questions/generate [post]
func (h *QuestionHandler) Generate(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.GenerateQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateGenerateQuestionsRequest(&req); len(errs) > 0 {
		return errs
	}

	genReq := domain.GenerationRequest{
		SourceText: req.SourceText,
		Subject:    req.Subject,
		Count:      req.Count,
	}
	if level, ok := domain.ParseDifficulty(req.Difficulty); ok {
		genReq.Difficulty = level
	}
	for _, t := range req.Types {
		if qType, ok := domain.ParseQuestionType(t); ok {
			genReq.Types = append(genReq.Types, qType)
		}
	}

	result, err := h.generation.Generate(c.UserContext(), userID, genReq)
	if err != nil {
		return err
	}

	resp := dto.GenerateQuestionsResponse{
		Questions:   make([]dto.QuestionResponse, 0, len(result.Questions)),
		KeyConcepts: result.KeyConcepts,
		Skipped:     result.Skipped,
		Quota:       dto.NewQuotaResponse(result.Quota),
	}
	for _, q := range result.Questions {
		resp.Questions = append(resp.Questions, dto.NewQuestionResponse(q))
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary List questions
// @Description Lists the caller's questions, newest first, optionally filtered
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param type query string false "mcq, short, truefalse or application"
// @Param difficulty query string false "easy, medium or hard"
// @Param subject query string false "Subject, case-insensitive"
// @Success 200 {object} dto.QuestionListResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /questions [get]
func (h *QuestionHandler) List(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	qType, difficulty := c.Query("type"), c.Query("difficulty")
	if errs := h.validator.ValidateQuestionFilter(qType, difficulty); len(errs) > 0 {
		return errs
	}
	filter := domain.QuestionFilter{Subject: strings.TrimSpace(c.Query("subject"))}
	if t, ok := domain.ParseQuestionType(qType); ok {
		filter.Type = t
	}
	if level, ok := domain.ParseDifficulty(difficulty); ok {
		filter.Difficulty = level
	}

	questions, err := h.questions.List(c.UserContext(), userID, filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuestionListResponse(questions))
}

// Update godoc
// @Summary Update a question
// @Description Changes the fields present in the body of one of the caller's questions
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Question ID (ULID)"
// @Param request body dto.UpdateQuestionRequest true "Fields to change"
// @Success 200 {object} dto.QuestionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /questions/{id} [put]
func (h *QuestionHandler) Update(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.UpdateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateUpdateQuestionRequest(&req); len(errs) > 0 {
		return errs
	}

	update := service.QuestionUpdate{
		Subject:       req.Subject,
		Question:      req.Question,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
		Hint:          req.Hint,
	}
	if req.Type != nil {
		t, _ := domain.ParseQuestionType(*req.Type)
		update.Type = &t
	}
	if req.Difficulty != nil {
		level, _ := domain.ParseDifficulty(*req.Difficulty)
		update.Difficulty = &level
	}

	question, err := h.questions.Update(c.UserContext(), userID, pathID(c), update)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuestionResponse(question))
}

// Delete godoc
// @Summary Delete a question
// @Tags questions
// @Security ApiKeyAuth
// @Param id path string true "Question ID (ULID)"
// @Success 204
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /questions/{id} [delete]
func (h *QuestionHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.questions.Delete(c.UserContext(), userID, pathID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
