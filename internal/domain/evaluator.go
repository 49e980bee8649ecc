package domain

import "context"

// PassMark is the lowest grader score counted as a correct answer.
// Bands: >=90 full credit, 70-89 minor omissions, 50-69 partial,
// 30-49 significant gaps, <30 incorrect.
const PassMark = 70

const (
	FeedbackNoAnswer = "no answer provided"
	FeedbackFallback = "AI evaluation unavailable, using exact match"
)

// Evaluation is the correctness outcome for one submitted answer.
// Score and Feedback are only set for open-ended question types.
type Evaluation struct {
	IsCorrect bool
	Score     *int
	Feedback  string
	Fallback  bool
}

// GradeRequest is what the external grader receives.
type GradeRequest struct {
	Question        string
	ReferenceAnswer string
	UserAnswer      string
	Explanation     string
}

// GradeResult is the grader's verdict; Score is in [0,100].
type GradeResult struct {
	IsCorrect bool
	Score     int
	Feedback  string
}

// Grader is the external semantic answer grader.
type Grader interface {
	Grade(ctx context.Context, req GradeRequest) (*GradeResult, error)
}
