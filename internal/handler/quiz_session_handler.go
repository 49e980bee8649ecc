package handler

import (
	"exam-byte/internal/domain"
	"exam-byte/internal/dto"
	"exam-byte/internal/middleware"
	"exam-byte/internal/service"
	"exam-byte/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizSessionHandler handles quiz session HTTP requests
type QuizSessionHandler struct {
	service   service.QuizSessionService
	validator *validation.Validator
}

// NewQuizSessionHandler creates a new QuizSessionHandler instance
func NewQuizSessionHandler(service service.QuizSessionService) *QuizSessionHandler {
	return &QuizSessionHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

func currentUser(c *fiber.Ctx) (string, error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return "", fiber.NewError(fiber.StatusUnauthorized, "User not authenticated")
	}
	return userID, nil
}

func pathID(c *fiber.Ctx) string {
	if id, ok := c.Locals(middleware.ValidatedIDKey).(string); ok {
		return id
	}
	return c.Params("id")
}

// Create godoc
// @Summary Create a quiz session
// @Description Starts a quiz over the caller's questions in the given order
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateQuizRequest true "Quiz"
// @Success 201 {object} dto.QuizSessionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /quizzes [post]
func (h *QuizSessionHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateCreateQuizRequest(&req); len(errs) > 0 {
		return errs
	}

	session, err := h.service.Create(c.UserContext(), userID, service.CreateQuizInput{
		QuestionIDs: req.QuestionIDs,
		Options:     req.SessionOptionsRequest.ToDomain(),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewQuizSessionResponse(session))
}

// CreateRandom godoc
// @Summary Create a random quiz session
// @Description Samples questions from the caller's pool after applying the filters
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateRandomQuizRequest true "Random quiz"
// @Success 201 {object} dto.QuizSessionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /quizzes/random [post]
func (h *QuizSessionHandler) CreateRandom(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.CreateRandomQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateCreateRandomQuizRequest(&req); len(errs) > 0 {
		return errs
	}

	filter := domain.QuestionFilter{Subject: req.FilterSubject}
	if level, ok := domain.ParseDifficulty(req.FilterDifficulty); ok {
		filter.Difficulty = level
	}
	if qType, ok := domain.ParseQuestionType(req.QuestionType); ok {
		filter.Type = qType
	}

	session, err := h.service.CreateRandom(c.UserContext(), userID, service.RandomQuizInput{
		Count:   req.Count,
		Filter:  filter,
		Options: req.SessionOptionsRequest.ToDomain(),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewQuizSessionResponse(session))
}

// List godoc
// @Summary List quiz sessions
// @Description Lists the caller's sessions, newest first
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "in-progress | completed | abandoned"
// @Success 200 {object} dto.QuizSessionListResponse
// @Router /quizzes [get]
func (h *QuizSessionHandler) List(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	status, _ := domain.ParseSessionStatus(c.Query("status"))
	sessions, err := h.service.List(c.UserContext(), userID, status)
	if err != nil {
		return err
	}

	resp := dto.QuizSessionListResponse{Sessions: make([]dto.QuizSessionResponse, 0, len(sessions))}
	for _, s := range sessions {
		resp.Sessions = append(resp.Sessions, dto.NewQuizSessionResponse(s))
	}
	return c.JSON(resp)
}

// Get godoc
// @Summary Get a quiz session
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Success 200 {object} dto.QuizSessionResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizSessionHandler) Get(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	session, err := h.service.Get(c.UserContext(), userID, pathID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizSessionResponse(session))
}

// SubmitAnswer godoc
// @Summary Submit an answer
// @Description Grades the answer for one item and records it
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Param request body dto.SubmitAnswerRequest true "Answer"
// @Success 200 {object} dto.SubmitAnswerResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/answers [post]
func (h *QuizSessionHandler) SubmitAnswer(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateSubmitAnswerRequest(&req); len(errs) > 0 {
		return errs
	}

	result, err := h.service.SubmitAnswer(c.UserContext(), userID, pathID(c), service.SubmitAnswerInput{
		Index:            req.Index,
		Answer:           req.Answer,
		TimeSpentSeconds: req.TimeSpentSeconds,
	})
	if err != nil {
		return err
	}

	return c.JSON(dto.SubmitAnswerResponse{
		Index:             result.Index,
		IsCorrect:         result.Evaluation.IsCorrect,
		Score:             result.Evaluation.Score,
		Feedback:          result.Evaluation.Feedback,
		Fallback:          result.Evaluation.Fallback,
		CorrectAnswer:     result.CorrectAnswer,
		Explanation:       result.Explanation,
		DifficultyUpdated: result.Difficulty.Applied,
	})
}

// Complete godoc
// @Summary Complete a quiz session
// @Description Marks unanswered items incorrect and computes the score
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Success 200 {object} dto.QuizSessionResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/complete [post]
func (h *QuizSessionHandler) Complete(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	session, err := h.service.Complete(c.UserContext(), userID, pathID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizSessionResponse(session))
}

// Delete godoc
// @Summary Delete a quiz session
// @Tags quizzes
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Success 204
// @Failure 403 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [delete]
func (h *QuizSessionHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), userID, pathID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
