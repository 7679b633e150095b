package script

import (
	"fmt"
	"strings"
)

// Line is one spoken dialogue line. Order within a script is significant and
// preserved through audio assembly and transcript rendering.
type Line struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Script is a generated podcast episode script. It is immutable once
// produced by the generator.
type Script struct {
	Title    string `json:"title"`
	Dialogue []Line `json:"dialogue"`
}

func (s *Script) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("missing title")
	}
	if len(s.Dialogue) == 0 {
		return fmt.Errorf("dialogue is empty")
	}
	for i, line := range s.Dialogue {
		if strings.TrimSpace(line.Speaker) == "" {
			return fmt.Errorf("line %d: missing speaker", i+1)
		}
		if strings.TrimSpace(line.Text) == "" {
			return fmt.Errorf("line %d: missing text", i+1)
		}
	}
	return nil
}

// Transcript renders the script as speaker-prefixed lines separated by blank
// lines. Quiz generation consumes this exact form.
func (s *Script) Transcript() string {
	lines := make([]string, len(s.Dialogue))
	for i, line := range s.Dialogue {
		lines[i] = fmt.Sprintf("%s: %s", line.Speaker, line.Text)
	}
	return strings.Join(lines, "\n\n")
}

// Speakers returns distinct speaker labels in first-appearance order.
func (s *Script) Speakers() []string {
	seen := make(map[string]bool)
	speakers := make([]string, 0)

	for _, line := range s.Dialogue {
		if !seen[line.Speaker] {
			seen[line.Speaker] = true
			speakers = append(speakers, line.Speaker)
		}
	}

	return speakers
}
