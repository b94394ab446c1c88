package coding

import "time"

// ExecuteInput is a run request in Judge0 terms.
type ExecuteInput struct {
	SourceCode string `json:"source_code"`
	LanguageID int    `json:"language_id"`
	Stdin      string `json:"stdin"`
}

// RunResult is a normalized execution outcome. Output is the rendered console text.
type RunResult struct {
	Result    map[string]any `json:"result"`
	Simulated bool           `json:"simulated"`
	Output    string         `json:"output"`
}

// EvaluateInput is a solution submitted for review.
type EvaluateInput struct {
	Code             string `json:"code"`
	Language         string `json:"language"`
	ProblemStatement string `json:"problem_statement"`
	ExpectedBehavior string `json:"expected_behavior"`
}

// Submission is a stored evaluation.
type Submission struct {
	ID               string         `json:"id"`
	UserID           string         `json:"-"`
	Language         string         `json:"language"`
	ProblemStatement string         `json:"problem"`
	Code             string         `json:"code"`
	SourceKey        string         `json:"sourceKey,omitempty"`
	Evaluation       map[string]any `json:"evaluation"`
	CreatedAt        time.Time      `json:"timestamp"`
}

// Language is a Judge0 language the editor offers.
type Language struct {
	ID        int
	Name      string
	Extension string
}

// Languages lists the supported editor languages.
var Languages = []Language{
	{ID: 71, Name: "Python", Extension: ".py"},
	{ID: 62, Name: "Java", Extension: ".java"},
	{ID: 54, Name: "C++", Extension: ".cpp"},
	{ID: 63, Name: "JavaScript", Extension: ".js"},
}

func extensionFor(language string) string {
	for _, l := range Languages {
		if l.Name == language {
			return l.Extension
		}
	}
	return ".txt"
}
