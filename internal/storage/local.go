package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sprachcast/internal/quiz"
	"sprachcast/internal/script"
)

type LocalStorage struct {
	outputDir string
}

func NewLocalStorage(outputDir string) *LocalStorage {
	return &LocalStorage{outputDir: outputDir}
}

// NewEpisodeDir creates a timestamped directory for one episode's files.
func (s *LocalStorage) NewEpisodeDir(now time.Time) (string, error) {
	dir := filepath.Join(s.outputDir, now.Format("2006-01-02_150405"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create episode directory: %w", err)
	}
	return dir, nil
}

func (s *LocalStorage) SaveTranscript(dir string, scr *script.Script) (string, error) {
	path := filepath.Join(dir, "transcript.txt")

	content := fmt.Sprintf("# %s\n\n", scr.Title)
	for _, line := range scr.Dialogue {
		content += fmt.Sprintf("%s: %s\n\n", line.Speaker, line.Text)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write transcript: %w", err)
	}

	return path, nil
}

func (s *LocalStorage) SaveAudio(dir string, data []byte) (string, error) {
	path := filepath.Join(dir, "podcast.mp3")

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}

	return path, nil
}

func (s *LocalStorage) SaveQuiz(dir string, q *quiz.Quiz) (string, error) {
	path := filepath.Join(dir, "quiz.json")

	data, err := json.MarshalIndent(q, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal quiz: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write quiz: %w", err)
	}

	return path, nil
}

func (s *LocalStorage) EnsureDirectories() error {
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}
