package domain

import (
	"strings"
	"time"
)

// DifficultyLevel is both a question's difficulty and a student's recommended level.
type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

// DifficultyLevels lists the levels from easiest to hardest.
var DifficultyLevels = []DifficultyLevel{DifficultyEasy, DifficultyMedium, DifficultyHard}

const (
	// PromoteAfterCorrect consecutive correct answers raise the level.
	PromoteAfterCorrect = 3
	// DemoteAfterIncorrect consecutive incorrect answers lower the level.
	DemoteAfterIncorrect = 2
)

// ParseDifficulty converts a string into a DifficultyLevel.
func ParseDifficulty(s string) (DifficultyLevel, bool) {
	switch DifficultyLevel(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy, true
	case DifficultyMedium:
		return DifficultyMedium, true
	case DifficultyHard:
		return DifficultyHard, true
	}
	return "", false
}

func (d DifficultyLevel) Promote() DifficultyLevel {
	switch d {
	case DifficultyEasy:
		return DifficultyMedium
	case DifficultyMedium:
		return DifficultyHard
	}
	return d
}

func (d DifficultyLevel) Demote() DifficultyLevel {
	switch d {
	case DifficultyHard:
		return DifficultyMedium
	case DifficultyMedium:
		return DifficultyEasy
	}
	return d
}

// DifficultyState is the adaptive difficulty ratchet of a student.
// At most one of the two streak counters is nonzero.
type DifficultyState struct {
	CurrentLevel         DifficultyLevel
	ConsecutiveCorrect   int
	ConsecutiveIncorrect int
	LastUpdated          time.Time
	Version              int64
}

// NewDifficultyState returns the state a student starts with.
func NewDifficultyState(now time.Time) DifficultyState {
	return DifficultyState{
		CurrentLevel: DifficultyMedium,
		LastUpdated:  now,
	}
}

// RecordOutcome advances the ratchet by one graded answer.
func RecordOutcome(s DifficultyState, isCorrect bool, now time.Time) DifficultyState {
	if s.CurrentLevel == "" {
		s.CurrentLevel = DifficultyMedium
	}
	if isCorrect {
		s.ConsecutiveCorrect++
		s.ConsecutiveIncorrect = 0
		if s.ConsecutiveCorrect >= PromoteAfterCorrect {
			s.CurrentLevel = s.CurrentLevel.Promote()
			s.ConsecutiveCorrect = 0
		}
	} else {
		s.ConsecutiveIncorrect++
		s.ConsecutiveCorrect = 0
		if s.ConsecutiveIncorrect >= DemoteAfterIncorrect {
			s.CurrentLevel = s.CurrentLevel.Demote()
			s.ConsecutiveIncorrect = 0
		}
	}
	s.LastUpdated = now
	return s
}

// SideEffect reports the outcome of a best-effort update. It is returned
// alongside a primary result and never turned into the caller's error.
type SideEffect struct {
	Applied bool
	Err     error
}
