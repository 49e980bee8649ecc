package handler

import (
	"exam-byte/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles everything RegisterRoutes mounts.
type Handlers struct {
	Sessions  *QuizSessionHandler
	Users     *UserHandler
	Questions *QuestionHandler
	Documents *DocumentHandler
}

// RegisterRoutes mounts the API under /api behind the bearer-token guard.
func RegisterRoutes(app *fiber.App, h Handlers, auth fiber.Handler) {
	vm := middleware.NewValidationMiddleware()
	api := app.Group("/api", auth)

	quizzes := api.Group("/quizzes")
	quizzes.Post("/", h.Sessions.Create)
	quizzes.Post("/random", h.Sessions.CreateRandom)
	quizzes.Get("/", vm.ValidateStatusFilter(), h.Sessions.List)
	quizzes.Get("/:id", vm.ValidateID(), h.Sessions.Get)
	quizzes.Post("/:id/answers", vm.ValidateID(), h.Sessions.SubmitAnswer)
	quizzes.Post("/:id/complete", vm.ValidateID(), h.Sessions.Complete)
	quizzes.Delete("/:id", vm.ValidateID(), h.Sessions.Delete)

	me := api.Group("/users/me")
	me.Get("/statistics", h.Users.GetStatistics)
	me.Get("/difficulty", h.Users.GetDifficulty)
	me.Get("/quota", h.Users.GetQuota)

	questions := api.Group("/questions")
	questions.Get("/", h.Questions.List)
	questions.Post("/generate", h.Questions.Generate)
	questions.Put("/:id", vm.ValidateID(), h.Questions.Update)
	questions.Delete("/:id", vm.ValidateID(), h.Questions.Delete)

	api.Post("/uploads", h.Documents.RegisterUpload)
	documents := api.Group("/documents")
	documents.Get("/", h.Documents.List)
	documents.Delete("/:id", vm.ValidateID(), h.Documents.Delete)
}
