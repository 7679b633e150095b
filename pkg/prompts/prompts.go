package prompts

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

const defaultPromptsPath = "prompts.yaml"

//go:embed prompts.yaml
var defaultPrompts []byte

type Prompts struct {
	System SystemPrompts `yaml:"system"`
	Script ScriptPrompts `yaml:"script"`
	Quiz   QuizPrompts   `yaml:"quiz"`
}

type SystemPrompts struct {
	Script string `yaml:"script"`
	Quiz   string `yaml:"quiz"`
}

type ScriptPrompts struct {
	Generate string `yaml:"generate"`
}

type QuizPrompts struct {
	Generate string `yaml:"generate"`
}

type ScriptParams struct {
	Words              string
	Level              string
	RoleInstruction    string
	FormatInstructions string
}

type QuizParams struct {
	Transcript         string
	FormatInstructions string
}

// Load reads prompts.yaml from the working directory when present, otherwise
// falls back to the templates compiled into the binary.
func Load() (*Prompts, error) {
	if _, err := os.Stat(defaultPromptsPath); err == nil {
		return LoadFrom(defaultPromptsPath)
	}
	return parse(defaultPrompts)
}

func LoadFrom(path string) (*Prompts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts file: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Prompts, error) {
	var p Prompts
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse prompts file: %w", err)
	}
	return &p, nil
}

func (p *Prompts) RenderScript(params ScriptParams) (string, error) {
	return render(p.Script.Generate, params)
}

func (p *Prompts) RenderQuiz(params QuizParams) (string, error) {
	return render(p.Quiz.Generate, params)
}

func render(tmpl string, data any) (string, error) {
	t, err := template.New("prompt").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
