package speech

import "context"

// Result is one synthesized speech clip. Duration is in seconds.
type Result struct {
	Audio    []byte
	Duration float64
}

// Provider turns one line of text into speech with the given voice.
type Provider interface {
	Synthesize(ctx context.Context, text, voice string) (*Result, error)
}

// EstimateDuration approximates clip length from the encoded size, assuming
// 128 kbit/s MP3. Used when the backend returns no timing information.
func EstimateDuration(audio []byte) float64 {
	bitrate := 128000.0
	return float64(len(audio)*8) / bitrate
}
