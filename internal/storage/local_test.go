package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sprachcast/internal/quiz"
	"sprachcast/internal/script"
)

func TestNewEpisodeDir(t *testing.T) {
	local := NewLocalStorage(t.TempDir())

	now := time.Date(2026, 8, 29, 14, 30, 5, 0, time.UTC)
	dir, err := local.NewEpisodeDir(now)
	if err != nil {
		t.Fatalf("NewEpisodeDir() error = %v", err)
	}

	if filepath.Base(dir) != "2026-08-29_143005" {
		t.Errorf("dir name = %q", filepath.Base(dir))
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("episode dir not created: %v", err)
	}
}

func TestSaveTranscript(t *testing.T) {
	local := NewLocalStorage(t.TempDir())
	dir, err := local.NewEpisodeDir(time.Now())
	if err != nil {
		t.Fatal(err)
	}

	scr := &script.Script{
		Title: "Am Bahnhof",
		Dialogue: []script.Line{
			{Speaker: "Gastgeber", Text: "Willkommen!"},
			{Speaker: "Gast", Text: "Danke."},
		},
	}

	path, err := local.SaveTranscript(dir, scr)
	if err != nil {
		t.Fatalf("SaveTranscript() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	content := string(data)
	if !strings.HasPrefix(content, "# Am Bahnhof\n\n") {
		t.Errorf("transcript missing title heading:\n%s", content)
	}
	if !strings.Contains(content, "Gastgeber: Willkommen!\n\n") {
		t.Errorf("transcript missing dialogue line:\n%s", content)
	}
}

func TestSaveAudio(t *testing.T) {
	local := NewLocalStorage(t.TempDir())
	dir, err := local.NewEpisodeDir(time.Now())
	if err != nil {
		t.Fatal(err)
	}

	path, err := local.SaveAudio(dir, []byte("mp3 bytes"))
	if err != nil {
		t.Fatalf("SaveAudio() error = %v", err)
	}

	if filepath.Base(path) != "podcast.mp3" {
		t.Errorf("audio file = %q, want podcast.mp3", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "mp3 bytes" {
		t.Errorf("audio content = %q", data)
	}
}

func TestSaveQuiz(t *testing.T) {
	local := NewLocalStorage(t.TempDir())
	dir, err := local.NewEpisodeDir(time.Now())
	if err != nil {
		t.Fatal(err)
	}

	q := &quiz.Quiz{Questions: []quiz.Question{
		{
			Question:      "Wo sind sie?",
			Options:       []string{"Bahnhof", "Café", "Park", "Schule"},
			CorrectAnswer: "Bahnhof",
		},
	}}

	path, err := local.SaveQuiz(dir, q)
	if err != nil {
		t.Fatalf("SaveQuiz() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var loaded quiz.Quiz
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("saved quiz is not valid JSON: %v", err)
	}
	if loaded.Questions[0].CorrectAnswer != "Bahnhof" {
		t.Errorf("loaded quiz = %+v", loaded)
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")
	local := NewLocalStorage(dir)

	if err := local.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories() error = %v", err)
	}

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("output dir not created: %v", err)
	}
}
