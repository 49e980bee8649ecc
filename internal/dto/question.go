package dto

import (
	"time"

	"exam-byte/internal/domain"
)

// GenerateQuestionsRequest represents the request body for question generation.
// @Description Request body for generating questions from study material
type GenerateQuestionsRequest struct {
	SourceText string   `json:"source_text"`
	Subject    string   `json:"subject,omitempty"`
	Difficulty string   `json:"difficulty,omitempty"`
	Count      int      `json:"count"`
	Types      []string `json:"types,omitempty"`
}

// QuestionResponse represents a stored question.
type QuestionResponse struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	Difficulty    string   `json:"difficulty"`
	Subject       string   `json:"subject,omitempty"`
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
	Hint          string   `json:"hint,omitempty"`
}

func NewQuestionResponse(q *domain.Question) QuestionResponse {
	return QuestionResponse{
		ID:            q.ID,
		Type:          string(q.Type),
		Difficulty:    string(q.Difficulty),
		Subject:       q.Subject,
		Question:      q.Question,
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Hint:          q.Hint,
	}
}

// GenerateQuestionsResponse lists what the generator produced and was saved.
// @Description Generated questions
type GenerateQuestionsResponse struct {
	Questions   []QuestionResponse `json:"questions"`
	KeyConcepts []string           `json:"key_concepts"`
	Skipped     int                `json:"skipped"`
	Quota       QuotaResponse      `json:"quota"`
}

// QuestionListResponse is the caller's filtered question bank.
// @Description Questions matching the filter, newest first
type QuestionListResponse struct {
	Questions []QuestionResponse `json:"questions"`
	Count     int                `json:"count"`
}

func NewQuestionListResponse(questions []*domain.Question) QuestionListResponse {
	resp := QuestionListResponse{Questions: make([]QuestionResponse, 0, len(questions)), Count: len(questions)}
	for _, q := range questions {
		resp.Questions = append(resp.Questions, NewQuestionResponse(q))
	}
	return resp
}

// UpdateQuestionRequest changes the fields that are present.
// @Description Partial update of a question
type UpdateQuestionRequest struct {
	Type          *string   `json:"type,omitempty"`
	Difficulty    *string   `json:"difficulty,omitempty"`
	Subject       *string   `json:"subject,omitempty"`
	Question      *string   `json:"question,omitempty"`
	Options       *[]string `json:"options,omitempty"`
	CorrectAnswer *string   `json:"correct_answer,omitempty"`
	Explanation   *string   `json:"explanation,omitempty"`
	Hint          *string   `json:"hint,omitempty"`
}

// UploadDocumentRequest describes one file of an upload.
type UploadDocumentRequest struct {
	FileName string `json:"file_name"`
	Subject  string `json:"subject,omitempty"`
	Size     int64  `json:"size"`
}

// RegisterUploadRequest records the documents of one upload against the quota.
// @Description Documents of one upload
type RegisterUploadRequest struct {
	Documents []UploadDocumentRequest `json:"documents"`
}

// DocumentResponse represents a stored document.
type DocumentResponse struct {
	ID        string    `json:"id"`
	FileName  string    `json:"file_name"`
	FileType  string    `json:"file_type"`
	Subject   string    `json:"subject,omitempty"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

func NewDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		ID:        d.ID,
		FileName:  d.FileName,
		FileType:  string(d.Type),
		Subject:   d.Subject,
		Size:      d.SizeBytes,
		CreatedAt: d.CreatedAt,
	}
}

func newDocumentResponses(docs []*domain.Document) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, NewDocumentResponse(d))
	}
	return out
}

// UploadResponse lists the recorded documents and the quota after the upload.
// @Description Recorded upload
type UploadResponse struct {
	Documents []DocumentResponse `json:"documents"`
	Quota     QuotaResponse      `json:"quota"`
}

func NewUploadResponse(docs []*domain.Document, quota *domain.QuotaState) UploadResponse {
	return UploadResponse{Documents: newDocumentResponses(docs), Quota: NewQuotaResponse(quota)}
}

// DocumentListResponse is the caller's documents, newest first.
// @Description Uploaded documents
type DocumentListResponse struct {
	Documents []DocumentResponse `json:"documents"`
	Count     int                `json:"count"`
}

func NewDocumentListResponse(docs []*domain.Document) DocumentListResponse {
	return DocumentListResponse{Documents: newDocumentResponses(docs), Count: len(docs)}
}

// DeleteDocumentResponse reports the storage given back.
// @Description Result of a document deletion
type DeleteDocumentResponse struct {
	FreedSpace int64         `json:"freed_space"`
	Quota      QuotaResponse `json:"quota"`
}
