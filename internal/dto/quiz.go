package dto

// GenerateQuizRequest is the request body for POST /generate_quiz.
// Count, difficulty and language are optional; invalid values silently fall
// through to the service defaults rather than being rejected.
// @Description Request body for quiz generation
type GenerateQuizRequest struct {
	Text       string `json:"text"`
	Count      int    `json:"count,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Language   string `json:"language,omitempty"`
}

// QuestionResponse represents one generated question in the API response
type QuestionResponse struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

// GenerateQuizResponse wraps the generated question list
// @Description Generated quiz questions
type GenerateQuizResponse struct {
	Questions []QuestionResponse `json:"questions"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
