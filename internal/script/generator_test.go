package script

import (
	"context"
	"strings"
	"testing"
	"time"

	"sprachcast/internal/generate"
	"sprachcast/pkg/prompts"
)

type captureBackend struct {
	system   string
	user     string
	response string
}

func (c *captureBackend) CompleteJSON(ctx context.Context, system, user string) (string, error) {
	c.system = system
	c.user = user
	return c.response, nil
}

const validScriptJSON = `{
	"title": "Am Bahnhof",
	"dialogue": [
		{"speaker": "Gastgeber", "text": "Willkommen!"},
		{"speaker": "Gast", "text": "Danke."}
	]
}`

func newTestGenerator(t *testing.T, backend generate.Backend) *Generator {
	t.Helper()
	p, err := prompts.Load()
	if err != nil {
		t.Fatalf("load prompts: %v", err)
	}
	client := generate.NewClient(backend, generate.RetryConfig{MaxAttempts: 1, InitialDelay: time.Millisecond})
	return NewGenerator(client, p)
}

func TestGenerate(t *testing.T) {
	backend := &captureBackend{response: validScriptJSON}
	gen := newTestGenerator(t, backend)

	result, err := gen.Generate(context.Background(), Request{
		Vocabulary: []string{"der Bahnhof", "die Verspätung"},
		Level:      LevelB1,
		Speakers:   2,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if result.Title != "Am Bahnhof" {
		t.Errorf("title = %q, want Am Bahnhof", result.Title)
	}
	if len(result.Dialogue) != 2 {
		t.Errorf("got %d dialogue lines, want 2", len(result.Dialogue))
	}
}

func TestGeneratePromptContainsVocabularyAndLevel(t *testing.T) {
	backend := &captureBackend{response: validScriptJSON}
	gen := newTestGenerator(t, backend)

	_, err := gen.Generate(context.Background(), Request{
		Vocabulary: []string{"der Bahnhof", "die Verspätung", "umsteigen"},
		Level:      LevelA2,
		Speakers:   2,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !strings.Contains(backend.user, "der Bahnhof, die Verspätung, umsteigen") {
		t.Errorf("prompt missing vocabulary list:\n%s", backend.user)
	}
	if !strings.Contains(backend.user, "A2") {
		t.Errorf("prompt missing level:\n%s", backend.user)
	}
	if backend.system == "" {
		t.Error("system prompt is empty")
	}
}

func TestGenerateRoleInstruction(t *testing.T) {
	tests := []struct {
		name     string
		speakers int
		want     string
	}{
		{"monologue", 1, monologueInstruction},
		{"dialogue", 2, dialogueInstruction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &captureBackend{response: validScriptJSON}
			gen := newTestGenerator(t, backend)

			_, err := gen.Generate(context.Background(), Request{
				Vocabulary: []string{"das Wetter"},
				Level:      LevelB1,
				Speakers:   tt.speakers,
			})
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}

			if !strings.Contains(backend.user, tt.want) {
				t.Errorf("prompt missing %q:\n%s", tt.want, backend.user)
			}
		})
	}
}

func TestGenerateRejectsInvalidScript(t *testing.T) {
	backend := &captureBackend{response: `{"title": "", "dialogue": []}`}
	gen := newTestGenerator(t, backend)

	_, err := gen.Generate(context.Background(), Request{
		Vocabulary: []string{"das Wetter"},
		Level:      LevelB1,
		Speakers:   2,
	})
	if err == nil {
		t.Fatal("expected error for invalid script")
	}
}
