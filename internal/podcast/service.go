package podcast

import (
	"context"

	"sprachcast/internal/audio"
	"sprachcast/internal/quiz"
	"sprachcast/internal/script"
	"sprachcast/internal/voice"
	"sprachcast/pkg/config"
)

// Synthesizer renders a script into one audio artifact.
type Synthesizer interface {
	Synthesize(ctx context.Context, scr *script.Script, roster *voice.Roster) (*audio.Artifact, error)
}

type Service struct {
	cfg     *config.Config
	scripts *script.Generator
	quizzes *quiz.Generator
	synth   Synthesizer
}

type ServiceOptions struct {
	Config  *config.Config
	Scripts *script.Generator
	Quizzes *quiz.Generator
	Synth   Synthesizer
}

func NewService(opts ServiceOptions) *Service {
	return &Service{
		cfg:     opts.Config,
		scripts: opts.Scripts,
		quizzes: opts.Quizzes,
		synth:   opts.Synth,
	}
}

func (s *Service) Config() *config.Config { return s.cfg }
