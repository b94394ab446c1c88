package llm

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var promptsYAML []byte

type promptSpec struct {
	System    string `yaml:"system"`
	User      string `yaml:"user"`
	MaxTokens int    `yaml:"max_tokens"`
}

type compiledPrompt struct {
	system    *template.Template
	user      *template.Template
	maxTokens int
}

var (
	catalogOnce sync.Once
	catalog     map[string]compiledPrompt
	catalogErr  error
)

func loadCatalog() (map[string]compiledPrompt, error) {
	catalogOnce.Do(func() {
		var specs map[string]promptSpec
		if err := yaml.Unmarshal(promptsYAML, &specs); err != nil {
			catalogErr = fmt.Errorf("parse prompts.yaml: %w", err)
			return
		}
		out := make(map[string]compiledPrompt, len(specs))
		for name, spec := range specs {
			sys, err := template.New(name + ".system").Option("missingkey=error").Parse(spec.System)
			if err != nil {
				catalogErr = fmt.Errorf("prompt %s system: %w", name, err)
				return
			}
			usr, err := template.New(name + ".user").Option("missingkey=error").Parse(spec.User)
			if err != nil {
				catalogErr = fmt.Errorf("prompt %s user: %w", name, err)
				return
			}
			out[name] = compiledPrompt{system: sys, user: usr, maxTokens: spec.MaxTokens}
		}
		catalog = out
	})
	return catalog, catalogErr
}

// Prompt renders the named prompt with data into a Request.
func Prompt(name string, data any) (Request, error) {
	prompts, err := loadCatalog()
	if err != nil {
		return Request{}, err
	}
	p, ok := prompts[name]
	if !ok {
		return Request{}, fmt.Errorf("unknown prompt %q", name)
	}
	var sys, usr strings.Builder
	if err := p.system.Execute(&sys, data); err != nil {
		return Request{}, fmt.Errorf("render %s: %w", name, err)
	}
	if err := p.user.Execute(&usr, data); err != nil {
		return Request{}, fmt.Errorf("render %s: %w", name, err)
	}
	return Request{
		Operation: name,
		System:    strings.TrimSpace(sys.String()),
		User:      usr.String(),
		MaxTokens: p.maxTokens,
	}, nil
}

// PromptNames lists the catalog entries.
func PromptNames() []string {
	prompts, err := loadCatalog()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(prompts))
	for name := range prompts {
		names = append(names, name)
	}
	return names
}
