package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// silenceGap is the pause inserted between consecutive dialogue lines,
// in seconds. No silence is added before the first or after the last line.
const silenceGap = 0.4

// Segment is one synthesized dialogue line, in script order.
type Segment struct {
	Audio    []byte
	Duration float64
}

type Stitcher struct {
	ffmpegPath string
	tempDir    string
}

func NewStitcher(tempDir string) *Stitcher {
	return &Stitcher{
		ffmpegPath: "ffmpeg",
		tempDir:    tempDir,
	}
}

// Stitch concatenates the segments into one MP3, inserting a short silence
// between each pair of neighbours via ffmpeg's concat demuxer.
func (s *Stitcher) Stitch(ctx context.Context, segments []Segment) (*Artifact, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("no segments to stitch")
	}

	if len(segments) == 1 {
		return &Artifact{
			Data:     segments[0].Audio,
			Duration: segments[0].Duration,
		}, nil
	}

	// Concurrent runs share the stitcher, so every call gets its own
	// workspace; fixed file names in a shared directory would let one run
	// clobber another's segments mid-stitch.
	workDir, err := os.MkdirTemp(s.tempDir, "stitch-")
	if err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	tempFiles, err := writeSegments(workDir, segments)
	if err != nil {
		return nil, err
	}

	silencePath, err := s.makeSilence(ctx, workDir)
	if err != nil {
		return nil, err
	}

	listContent, err := buildConcatList(tempFiles, silencePath)
	if err != nil {
		return nil, err
	}
	listPath := filepath.Join(workDir, "concat_list.txt")
	if err := os.WriteFile(listPath, []byte(listContent), 0644); err != nil {
		return nil, fmt.Errorf("failed to write concat list: %w", err)
	}

	outputPath := filepath.Join(workDir, "stitched.mp3")

	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-acodec", "libmp3lame",
		"-q:a", "2",
		outputPath,
	}

	cmd := exec.CommandContext(ctx, s.ffmpegPath, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("ffmpeg concat failed: %w, output: %s", err, string(output))
	}

	stitchedData, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read stitched audio: %w", err)
	}

	return &Artifact{
		Data:     stitchedData,
		Duration: totalDuration(segments),
	}, nil
}

func writeSegments(dir string, segments []Segment) ([]string, error) {
	files := make([]string, 0, len(segments))
	for i, seg := range segments {
		ext := detectAudioFormat(seg.Audio)
		path := filepath.Join(dir, fmt.Sprintf("seg_%d%s", i, ext))
		if err := os.WriteFile(path, seg.Audio, 0644); err != nil {
			return nil, fmt.Errorf("failed to write segment %d: %w", i, err)
		}
		files = append(files, path)
	}
	return files, nil
}

// makeSilence renders the inter-line pause once; the concat list references
// the same file between every pair of segments.
func (s *Stitcher) makeSilence(ctx context.Context, dir string) (string, error) {
	silencePath := filepath.Join(dir, "silence.mp3")

	args := []string{
		"-y",
		"-f", "lavfi",
		"-i", "anullsrc=r=44100:cl=mono",
		"-t", fmt.Sprintf("%.2f", silenceGap),
		"-acodec", "libmp3lame",
		"-q:a", "2",
		silencePath,
	}

	cmd := exec.CommandContext(ctx, s.ffmpegPath, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("ffmpeg silence failed: %w, output: %s", err, string(output))
	}

	return silencePath, nil
}

// buildConcatList emits a concat demuxer list interleaving the silence file
// between segments, never before the first or after the last.
func buildConcatList(segmentFiles []string, silencePath string) (string, error) {
	silenceAbs, err := filepath.Abs(silencePath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	var b strings.Builder
	for i, f := range segmentFiles {
		absPath, err := filepath.Abs(f)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		if i > 0 {
			fmt.Fprintf(&b, "file '%s'\n", silenceAbs)
		}
		fmt.Fprintf(&b, "file '%s'\n", absPath)
	}

	return b.String(), nil
}

func totalDuration(segments []Segment) float64 {
	var total float64
	for _, seg := range segments {
		total += seg.Duration
	}
	if len(segments) > 1 {
		total += silenceGap * float64(len(segments)-1)
	}
	return total
}

func detectAudioFormat(data []byte) string {
	if len(data) < 4 {
		return ".bin"
	}

	// WAV: starts with "RIFF"
	if data[0] == 'R' && data[1] == 'I' && data[2] == 'F' && data[3] == 'F' {
		return ".wav"
	}

	// MP3: starts with ID3 or 0xFF 0xFB
	if (data[0] == 'I' && data[1] == 'D' && data[2] == '3') ||
		(data[0] == 0xFF && (data[1]&0xE0) == 0xE0) {
		return ".mp3"
	}

	return ".bin"
}
