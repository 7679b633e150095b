package audio

import (
	"context"
	"fmt"
	"log/slog"

	"sprachcast/internal/script"
	"sprachcast/internal/speech"
	"sprachcast/internal/voice"
)

const defaultParallelism = 2

// Artifact is the finished episode audio. Duration is in seconds and
// includes the silence gaps between segments.
type Artifact struct {
	Data     []byte
	Duration float64
}

// SynthesisError reports the first dialogue line whose synthesis failed.
// The stage aborts on it: no partial audio is ever returned and no retry is
// attempted at this layer.
type SynthesisError struct {
	Line    int
	Speaker string
	Err     error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesize line %d (%s): %v", e.Line, e.Speaker, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

type stitcher interface {
	Stitch(ctx context.Context, segments []Segment) (*Artifact, error)
}

type Synthesizer struct {
	provider    speech.Provider
	stitcher    stitcher
	parallelism int
}

func NewSynthesizer(provider speech.Provider, tempDir string) *Synthesizer {
	return &Synthesizer{
		provider:    provider,
		stitcher:    NewStitcher(tempDir),
		parallelism: defaultParallelism,
	}
}

// Synthesize renders every dialogue line with its assigned voice and stitches
// the clips, in script order, into one artifact. Per-line calls fan out
// bounded by a semaphore; results are reassembled by index so completion
// order never affects segment order.
func (s *Synthesizer) Synthesize(ctx context.Context, scr *script.Script, roster *voice.Roster) (*Artifact, error) {
	lines := scr.Dialogue
	if len(lines) == 0 {
		return nil, fmt.Errorf("script has no dialogue lines")
	}

	// Resolve voices sequentially before fanning out, so first-encounter
	// order (and with it fallback cycling) stays deterministic.
	voices := make([]string, len(lines))
	for i, line := range lines {
		voices[i] = roster.Assign(line.Speaker)
	}

	type result struct {
		index   int
		segment Segment
		err     error
	}

	results := make(chan result, len(lines))
	semaphore := make(chan struct{}, s.parallelism)

	for i, line := range lines {
		go func(index int, line script.Line, voiceID string) {
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			slog.Info("Generating speech", "line", index+1, "total", len(lines), "speaker", line.Speaker)
			clip, err := s.provider.Synthesize(ctx, line.Text, voiceID)
			if err != nil {
				results <- result{index: index, err: &SynthesisError{Line: index + 1, Speaker: line.Speaker, Err: err}}
				return
			}

			results <- result{
				index:   index,
				segment: Segment{Audio: clip.Audio, Duration: clip.Duration},
			}
		}(i, line, voices[i])
	}

	segments := make([]Segment, len(lines))
	var firstErr error
	for range lines {
		r := <-results
		if r.err != nil && firstErr == nil {
			firstErr = r.err
		}
		segments[r.index] = r.segment
	}
	if firstErr != nil {
		return nil, firstErr
	}

	return s.stitcher.Stitch(ctx, segments)
}
