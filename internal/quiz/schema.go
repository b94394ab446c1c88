package quiz

import (
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"elevate-backend/internal/normalize"
)

const questionSchemaURL = "schema://quiz-question.json"

const questionSchema = `{
  "type": "object",
  "required": ["question", "options", "correct"],
  "properties": {
    "question": {"type": "string", "minLength": 1},
    "options": {"type": "array", "minItems": 2, "items": {"type": "string"}},
    "correct": {"type": "integer", "minimum": 0},
    "explanation": {"type": "string"}
  }
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func questionValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(questionSchema))
		if err != nil {
			compileErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(questionSchemaURL, doc); err != nil {
			compileErr = err
			return
		}
		compiledSchema, compileErr = c.Compile(questionSchemaURL)
	})
	return compiledSchema, compileErr
}

// FilterQuestions keeps the normalized items that are well-formed questions
// and reports how many were dropped.
func FilterQuestions(items []any) ([]Question, int, error) {
	sch, err := questionValidator()
	if err != nil {
		return nil, 0, err
	}
	out := make([]Question, 0, len(items))
	dropped := 0
	for _, item := range items {
		if err := sch.Validate(item); err != nil {
			dropped++
			continue
		}
		var q Question
		if err := normalize.Decode(item, &q); err != nil || q.Correct >= len(q.Options) {
			dropped++
			continue
		}
		out = append(out, q)
	}
	return out, dropped, nil
}
