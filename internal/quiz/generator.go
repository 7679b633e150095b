package quiz

import (
	"context"
	"fmt"
	"log/slog"

	"sprachcast/internal/generate"
	"sprachcast/pkg/prompts"
)

var schema = generate.Schema{
	Fields: []generate.Field{
		{
			Name:        "questions",
			Type:        "array",
			Description: "List of exactly 5 comprehension questions",
			Items: []generate.Field{
				{Name: "question", Type: "string", Description: "The question text in German"},
				{Name: "options", Type: "array of strings", Description: "Exactly 4 possible answers in German"},
				{Name: "correct_answer", Type: "string", Description: "The correct answer, copied verbatim from the options"},
			},
		},
	},
}

type Generator struct {
	client  *generate.Client
	prompts *prompts.Prompts
}

func NewGenerator(client *generate.Client, p *prompts.Prompts) *Generator {
	return &Generator{client: client, prompts: p}
}

// Generate derives a comprehension quiz from the transcript text of a
// finished script.
func (g *Generator) Generate(ctx context.Context, transcript string) (*Quiz, error) {
	prompt, err := g.prompts.RenderQuiz(prompts.QuizParams{
		Transcript:         transcript,
		FormatInstructions: schema.Instructions(),
	})
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	slog.Info("Generating quiz questions...")
	result, err := generate.Object[Quiz](ctx, g.client, g.prompts.System.Quiz, prompt)
	if err != nil {
		return nil, err
	}
	slog.Info("Quiz generated", "questions", len(result.Questions))

	return &result, nil
}
