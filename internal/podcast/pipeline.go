package podcast

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"sprachcast/internal/audio"
	"sprachcast/internal/quiz"
	"sprachcast/internal/script"
	"sprachcast/internal/voice"
)

// FatalError marks a failure the episode cannot survive. Only the script
// stage produces it; audio and quiz failures degrade the episode instead.
type FatalError struct {
	Stage string
	Err   error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

type Pipeline struct {
	service *Service
}

type Request struct {
	Vocabulary []string
	Level      script.Level
	Speakers   int
	SkipAudio  bool

	// VoiceMap and FallbackVoices override the configured voice roster for
	// this request only. Left empty, the configured or built-in defaults apply.
	VoiceMap       map[string]string
	FallbackVoices []string
}

// Result carries the episode. Audio and Quiz are nil when their stage
// failed or was skipped; the corresponding error field says why.
type Result struct {
	Script     *script.Script
	Transcript string
	Voices     map[string]string
	Audio      *audio.Artifact
	Quiz       *quiz.Quiz
	AudioErr   error
	QuizErr    error
}

// Degraded reports whether any optional stage failed.
func (r *Result) Degraded() bool {
	return r.AudioErr != nil || r.QuizErr != nil
}

func NewPipeline(service *Service) *Pipeline {
	return &Pipeline{service: service}
}

// Generate runs the full episode pipeline: script first, then audio and
// quiz concurrently off the finished transcript. A script failure aborts
// the run; audio or quiz failures leave their fields empty.
func (pipeline *Pipeline) Generate(ctx context.Context, request Request) (*Result, error) {
	if err := validateRequest(request); err != nil {
		return nil, err
	}

	scr, err := pipeline.service.scripts.Generate(ctx, script.Request{
		Vocabulary: request.Vocabulary,
		Level:      request.Level,
		Speakers:   request.Speakers,
	})
	if err != nil {
		return nil, &FatalError{Stage: "script", Err: err}
	}

	result := &Result{
		Script:     scr,
		Transcript: scr.Transcript(),
	}

	var wg sync.WaitGroup

	if pipeline.service.synth != nil && !request.SkipAudio {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pipeline.generateAudio(ctx, request, scr, result)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		pipeline.generateQuiz(ctx, result)
	}()

	wg.Wait()

	if result.AudioErr != nil {
		slog.Warn("Audio stage failed, episode will have no audio", "error", result.AudioErr)
	}
	if result.QuizErr != nil {
		slog.Warn("Quiz stage failed, episode will have no quiz", "error", result.QuizErr)
	}

	return result, nil
}

func (pipeline *Pipeline) generateAudio(ctx context.Context, request Request, scr *script.Script, result *Result) {
	cfg := pipeline.service.cfg

	known := request.VoiceMap
	if known == nil {
		known = cfg.ElevenLabs.VoiceMap
	}
	fallback := request.FallbackVoices
	if len(fallback) == 0 {
		fallback = cfg.ElevenLabs.FallbackVoices
	}
	roster := voice.NewRoster(known, fallback)

	slog.Info("Generating audio...", "lines", len(scr.Dialogue))
	artifact, err := pipeline.service.synth.Synthesize(ctx, scr, roster)
	if err != nil {
		result.AudioErr = err
		return
	}

	result.Audio = artifact
	result.Voices = roster.Assignments()
}

func (pipeline *Pipeline) generateQuiz(ctx context.Context, result *Result) {
	q, err := pipeline.service.quizzes.Generate(ctx, result.Transcript)
	if err != nil {
		result.QuizErr = err
		return
	}
	result.Quiz = q
}

func validateRequest(request Request) error {
	if len(request.Vocabulary) == 0 {
		return fmt.Errorf("vocabulary must not be empty")
	}
	if _, err := script.ParseLevel(string(request.Level)); err != nil {
		return err
	}
	if request.Speakers < 1 || request.Speakers > 2 {
		return fmt.Errorf("speakers must be 1 or 2, got %d", request.Speakers)
	}
	return nil
}
