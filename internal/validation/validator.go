package validation

import (
	"strings"

	"exam-byte/internal/domain"
	"exam-byte/internal/dto"
	"exam-byte/internal/util"
)

const (
	maxQuizQuestions   = 200
	maxAnswerLength    = 5000
	maxSourceTextBytes = 100_000
	maxGenerateCount   = 50
	maxUploadFiles     = 20
	maxTimeLimit       = 24 * 60
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateID validates a ULID path parameter
func (v *Validator) ValidateID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("id"))
	} else if !util.IsULID(id) {
		errors = append(errors, domain.NewInvalidFormatError("id", id))
	}
	return errors
}

// ValidateStatus validates the optional status filter
func (v *Validator) ValidateStatus(status string) domain.ValidationErrors {
	if status == "" {
		return nil
	}
	if _, ok := domain.ParseSessionStatus(status); !ok {
		return domain.ValidationErrors{domain.NewInvalidFormatError("status", status)}
	}
	return nil
}

func (v *Validator) validateOptions(opts dto.SessionOptionsRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if opts.Difficulty != "" && opts.Difficulty != "mixed" {
		if _, ok := domain.ParseDifficulty(opts.Difficulty); !ok {
			errors = append(errors, domain.NewInvalidFormatError("difficulty", opts.Difficulty))
		}
	}
	if opts.TimeLimitMinutes < 0 || opts.TimeLimitMinutes > maxTimeLimit {
		errors = append(errors, domain.NewOutOfRangeError("time_limit_minutes", opts.TimeLimitMinutes, 0, maxTimeLimit))
	}
	return errors
}

// ValidateCreateQuizRequest validates the create quiz request
func (v *Validator) ValidateCreateQuizRequest(req *dto.CreateQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if len(req.QuestionIDs) == 0 {
		errors = append(errors, domain.NewMissingFieldError("question_ids"))
	} else if len(req.QuestionIDs) > maxQuizQuestions {
		errors = append(errors, domain.NewOutOfRangeError("question_ids", len(req.QuestionIDs), 1, maxQuizQuestions))
	}

	errors = append(errors, v.validateOptions(req.SessionOptionsRequest)...)
	return errors
}

// ValidateCreateRandomQuizRequest validates the random quiz request
func (v *Validator) ValidateCreateRandomQuizRequest(req *dto.CreateRandomQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if req.Count < 1 || req.Count > maxQuizQuestions {
		errors = append(errors, domain.NewOutOfRangeError("count", req.Count, 1, maxQuizQuestions))
	}
	if req.FilterDifficulty != "" {
		if _, ok := domain.ParseDifficulty(req.FilterDifficulty); !ok {
			errors = append(errors, domain.NewInvalidFormatError("filter_difficulty", req.FilterDifficulty))
		}
	}
	if req.QuestionType != "" {
		if _, ok := domain.ParseQuestionType(req.QuestionType); !ok {
			errors = append(errors, domain.NewInvalidFormatError("question_type", req.QuestionType))
		}
	}

	errors = append(errors, v.validateOptions(req.SessionOptionsRequest)...)
	return errors
}

// ValidateSubmitAnswerRequest validates the submit answer request. An empty
// answer is allowed and graded as incorrect.
func (v *Validator) ValidateSubmitAnswerRequest(req *dto.SubmitAnswerRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if len(req.Answer) > maxAnswerLength {
		errors = append(errors, domain.NewOutOfRangeError("answer", len(req.Answer), 0, maxAnswerLength))
	}
	if req.TimeSpentSeconds < 0 {
		errors = append(errors, domain.NewInvalidFormatError("time_spent_seconds", req.TimeSpentSeconds))
	}
	return errors
}

// ValidateGenerateQuestionsRequest validates the question generation request
func (v *Validator) ValidateGenerateQuestionsRequest(req *dto.GenerateQuestionsRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.SourceText) == "" {
		errors = append(errors, domain.NewMissingFieldError("source_text"))
	} else if len(req.SourceText) > maxSourceTextBytes {
		errors = append(errors, domain.NewOutOfRangeError("source_text", len(req.SourceText), 1, maxSourceTextBytes))
	}
	if req.Count < 1 || req.Count > maxGenerateCount {
		errors = append(errors, domain.NewOutOfRangeError("count", req.Count, 1, maxGenerateCount))
	}
	if req.Difficulty != "" {
		if _, ok := domain.ParseDifficulty(req.Difficulty); !ok {
			errors = append(errors, domain.NewInvalidFormatError("difficulty", req.Difficulty))
		}
	}
	for _, t := range req.Types {
		if _, ok := domain.ParseQuestionType(t); !ok {
			errors = append(errors, domain.NewInvalidFormatError("types", t))
		}
	}
	return errors
}

// ValidateRegisterUploadRequest validates the documents of one upload
func (v *Validator) ValidateRegisterUploadRequest(req *dto.RegisterUploadRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if len(req.Documents) == 0 {
		errors = append(errors, domain.NewMissingFieldError("documents"))
	} else if len(req.Documents) > maxUploadFiles {
		errors = append(errors, domain.NewOutOfRangeError("documents", len(req.Documents), 1, maxUploadFiles))
	}
	for _, doc := range req.Documents {
		if strings.TrimSpace(doc.FileName) == "" {
			errors = append(errors, domain.NewMissingFieldError("file_name"))
		} else if _, ok := domain.DocumentTypeOf(doc.FileName); !ok {
			errors = append(errors, domain.NewInvalidFormatError("file_name", doc.FileName))
		}
		if doc.Size < 0 {
			errors = append(errors, domain.NewInvalidFormatError("size", doc.Size))
		}
	}
	return errors
}

// ValidateQuestionFilter validates the optional question list filters
func (v *Validator) ValidateQuestionFilter(qType, difficulty string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if qType != "" {
		if _, ok := domain.ParseQuestionType(qType); !ok {
			errors = append(errors, domain.NewInvalidFormatError("type", qType))
		}
	}
	if difficulty != "" {
		if _, ok := domain.ParseDifficulty(difficulty); !ok {
			errors = append(errors, domain.NewInvalidFormatError("difficulty", difficulty))
		}
	}
	return errors
}

// ValidateUpdateQuestionRequest validates the fields present in a question update
func (v *Validator) ValidateUpdateQuestionRequest(req *dto.UpdateQuestionRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if req.Type == nil && req.Difficulty == nil && req.Subject == nil && req.Question == nil &&
		req.Options == nil && req.CorrectAnswer == nil && req.Explanation == nil && req.Hint == nil {
		errors = append(errors, domain.NewMissingFieldError("updates"))
		return errors
	}
	if req.Type != nil {
		if _, ok := domain.ParseQuestionType(*req.Type); !ok {
			errors = append(errors, domain.NewInvalidFormatError("type", *req.Type))
		}
	}
	if req.Difficulty != nil {
		if _, ok := domain.ParseDifficulty(*req.Difficulty); !ok {
			errors = append(errors, domain.NewInvalidFormatError("difficulty", *req.Difficulty))
		}
	}
	if req.Question != nil && strings.TrimSpace(*req.Question) == "" {
		errors = append(errors, domain.NewMissingFieldError("question"))
	}
	if req.CorrectAnswer != nil && strings.TrimSpace(*req.CorrectAnswer) == "" {
		errors = append(errors, domain.NewMissingFieldError("correct_answer"))
	}
	return errors
}
