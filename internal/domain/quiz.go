package domain

// Difficulty selects the tone of the generation prompt. Only the exact
// value "hard" changes anything; every other value gets the balanced line.
type Difficulty string

const (
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// DefaultQuestionCount is used whenever a request carries no usable count.
const DefaultQuestionCount = 5

// Question is one multiple-choice question as produced by the model.
// The answer is the correct option's text, not an index; the client matches
// it by substring containment against the displayed option.
type Question struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

// GenerationRequest describes one quiz generation call. It is transient:
// one value per HTTP request, never stored.
type GenerationRequest struct {
	SourceText string
	Count      int
	Difficulty Difficulty
	Language   string // target natural language; empty means English
}

// Normalize applies the request defaults: a falsy count falls back to
// DefaultQuestionCount (out-of-range counts pass through untouched) and any
// difficulty other than "hard" collapses to "normal". Language is left as-is
// because the prompt wording differs between "no language" and an explicit
// language, even when that language is English. Empty source text is not
// rejected; it flows into the prompt verbatim.
func (r GenerationRequest) Normalize() GenerationRequest {
	if r.Count <= 0 {
		r.Count = DefaultQuestionCount
	}
	if r.Difficulty != DifficultyHard {
		r.Difficulty = DifficultyNormal
	}
	return r
}
