package script

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"sprachcast/internal/generate"
	"sprachcast/pkg/prompts"
)

const (
	monologueInstruction = "ein Monolog von einem einzigen Sprecher"
	dialogueInstruction  = "ein Dialog zwischen zwei Personen (Gastgeber und Gast)"
)

var schema = generate.Schema{
	Fields: []generate.Field{
		{Name: "title", Type: "string", Description: "A catchy title for the podcast episode in German"},
		{
			Name:        "dialogue",
			Type:        "array",
			Description: "The list of dialogue lines in order",
			Items: []generate.Field{
				{Name: "speaker", Type: "string", Description: "The name of the speaker (e.g. 'Gastgeber', 'Gast', 'Person A')"},
				{Name: "text", Type: "string", Description: "The spoken text in German"},
			},
		},
	},
}

type Request struct {
	Vocabulary []string
	Level      Level
	Speakers   int
}

type Generator struct {
	client  *generate.Client
	prompts *prompts.Prompts
}

func NewGenerator(client *generate.Client, p *prompts.Prompts) *Generator {
	return &Generator{client: client, prompts: p}
}

// Generate produces a script that uses every vocabulary term at the given
// level, as a monologue or a host/guest dialogue. Failures propagate: there
// is no fallback script.
func (g *Generator) Generate(ctx context.Context, req Request) (*Script, error) {
	roleInstruction := monologueInstruction
	if req.Speakers == 2 {
		roleInstruction = dialogueInstruction
	}

	prompt, err := g.prompts.RenderScript(prompts.ScriptParams{
		Words:              strings.Join(req.Vocabulary, ", "),
		Level:              string(req.Level),
		RoleInstruction:    roleInstruction,
		FormatInstructions: schema.Instructions(),
	})
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	slog.Info("Generating script...", "level", req.Level, "speakers", req.Speakers)
	result, err := generate.Object[Script](ctx, g.client, g.prompts.System.Script, prompt)
	if err != nil {
		return nil, err
	}
	slog.Info("Script generated", "title", result.Title, "lines", len(result.Dialogue))

	return &result, nil
}
