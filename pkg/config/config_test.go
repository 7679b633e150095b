package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	if cfg.Groq.Model != defaultGroqModel {
		t.Errorf("Groq.Model = %q, want %q", cfg.Groq.Model, defaultGroqModel)
	}
	if cfg.ElevenLabs.Model != defaultElevenLabsModel {
		t.Errorf("ElevenLabs.Model = %q, want %q", cfg.ElevenLabs.Model, defaultElevenLabsModel)
	}
	if cfg.ElevenLabs.Stability != defaultStability {
		t.Errorf("Stability = %f, want %f", cfg.ElevenLabs.Stability, defaultStability)
	}
	if cfg.Content.DefaultLevel != defaultLevel {
		t.Errorf("DefaultLevel = %q, want %q", cfg.Content.DefaultLevel, defaultLevel)
	}
	if cfg.Content.DefaultSpeakers != defaultSpeakers {
		t.Errorf("DefaultSpeakers = %d, want %d", cfg.Content.DefaultSpeakers, defaultSpeakers)
	}
	if cfg.Output.Dir != defaultOutputDir {
		t.Errorf("Output.Dir = %q, want %q", cfg.Output.Dir, defaultOutputDir)
	}
	if cfg.GCS.AudioDir != defaultGCSAudioDir {
		t.Errorf("GCS.AudioDir = %q, want %q", cfg.GCS.AudioDir, defaultGCSAudioDir)
	}
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Groq.Model = "custom-model"
	cfg.Content.DefaultLevel = "C1"
	cfg.Content.DefaultSpeakers = 1

	applyDefaults(cfg)

	if cfg.Groq.Model != "custom-model" {
		t.Errorf("Groq.Model = %q, want custom-model", cfg.Groq.Model)
	}
	if cfg.Content.DefaultLevel != "C1" {
		t.Errorf("DefaultLevel = %q, want C1", cfg.Content.DefaultLevel)
	}
	if cfg.Content.DefaultSpeakers != 1 {
		t.Errorf("DefaultSpeakers = %d, want 1", cfg.Content.DefaultSpeakers)
	}
}

func TestLoadYAMLConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
groq:
  model: test-model
elevenlabs:
  voice_map:
    Gastgeber: voice-a
    Gast: voice-b
  fallback_voices:
    - voice-a
    - voice-b
content:
  default_level: A1
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{}
	loadYAMLConfig(cfg, path)

	if cfg.Groq.Model != "test-model" {
		t.Errorf("Groq.Model = %q, want test-model", cfg.Groq.Model)
	}
	if cfg.ElevenLabs.VoiceMap["Gastgeber"] != "voice-a" {
		t.Errorf("VoiceMap = %v", cfg.ElevenLabs.VoiceMap)
	}
	if len(cfg.ElevenLabs.FallbackVoices) != 2 {
		t.Errorf("FallbackVoices = %v", cfg.ElevenLabs.FallbackVoices)
	}
	if cfg.Content.DefaultLevel != "A1" {
		t.Errorf("DefaultLevel = %q, want A1", cfg.Content.DefaultLevel)
	}
}

func TestLoadYAMLConfigMissingFile(t *testing.T) {
	cfg := &Config{}
	loadYAMLConfig(cfg, filepath.Join(t.TempDir(), "missing.yaml"))

	if cfg.Groq.Model != "" {
		t.Errorf("missing file should leave config untouched, got %+v", cfg)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "groq-test")
	t.Setenv("ELEVENLABS_API_KEY", "eleven-test")
	t.Setenv("GCS_BUCKET", "test-bucket")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.GroqAPIKey != "groq-test" {
		t.Errorf("GroqAPIKey = %q, want groq-test", cfg.GroqAPIKey)
	}
	if cfg.ElevenLabsAPIKey != "eleven-test" {
		t.Errorf("ElevenLabsAPIKey = %q, want eleven-test", cfg.ElevenLabsAPIKey)
	}
	if cfg.GCSBucket != "test-bucket" {
		t.Errorf("GCSBucket = %q, want test-bucket", cfg.GCSBucket)
	}
	if cfg.Groq.Model != defaultGroqModel {
		t.Errorf("defaults not applied, Groq.Model = %q", cfg.Groq.Model)
	}
}
