package seedmodels

// SeedQuestion defines the structure for a question in the JSON seed file.
type SeedQuestion struct {
	Type          string   `json:"type"`
	Difficulty    string   `json:"difficulty"`
	Subject       string   `json:"subject"`
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
	Hint          string   `json:"hint,omitempty"`
}

// SeedUser defines a user and the question bank they own.
type SeedUser struct {
	Email     string         `json:"email"`
	Name      string         `json:"name"`
	Role      string         `json:"role"`
	Plan      string         `json:"plan"`
	Questions []SeedQuestion `json:"questions"`
}
