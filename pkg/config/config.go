package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath      = "config.yaml"
	defaultOutputDir       = "./output"
	defaultGroqModel       = "llama-3.3-70b-versatile"
	defaultElevenLabsModel = "eleven_multilingual_v2"
	defaultLevel           = "B1"
	defaultSpeakers        = 2
	defaultGCSAudioDir     = "podcast/audio"
	defaultStability       = 0.5
	defaultSimilarity      = 0.5
)

type Config struct {
	GroqAPIKey         string
	ElevenLabsAPIKey   string
	GCSBucket          string
	GoogleCloudProject string

	Groq       GroqConfig       `yaml:"groq"`
	ElevenLabs ElevenLabsConfig `yaml:"elevenlabs"`
	Content    ContentConfig    `yaml:"content"`
	Output     OutputConfig     `yaml:"output"`
	GCS        GCSConfig        `yaml:"gcs"`
}

type GroqConfig struct {
	Model string `yaml:"model"`
}

type ElevenLabsConfig struct {
	Model          string            `yaml:"model"`
	VoiceMap       map[string]string `yaml:"voice_map"`
	FallbackVoices []string          `yaml:"fallback_voices"`
	Stability      float64           `yaml:"stability"`
	Similarity     float64           `yaml:"similarity"`
}

type ContentConfig struct {
	DefaultLevel    string `yaml:"default_level"`
	DefaultSpeakers int    `yaml:"default_speakers"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

type GCSConfig struct {
	AudioDir string `yaml:"audio_dir"`
}

func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		GroqAPIKey:         os.Getenv("GROQ_API_KEY"),
		ElevenLabsAPIKey:   os.Getenv("ELEVENLABS_API_KEY"),
		GCSBucket:          os.Getenv("GCS_BUCKET"),
		GoogleCloudProject: os.Getenv("GOOGLE_CLOUD_PROJECT"),
	}

	loadYAMLConfig(cfg, defaultConfigPath)

	if err := fillFromSecretManager(ctx, cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	return cfg, nil
}

func loadYAMLConfig(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("No config.yaml found, using defaults")
		return
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		slog.Error("Failed to parse config.yaml", "error", err)
	}
}

// fillFromSecretManager resolves API keys missing from the environment when a
// Google Cloud project is configured. Keys already set locally win.
func fillFromSecretManager(ctx context.Context, cfg *Config) error {
	if cfg.GoogleCloudProject == "" {
		return nil
	}
	if cfg.GroqAPIKey != "" && cfg.ElevenLabsAPIKey != "" {
		return nil
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("create secret manager client: %w", err)
	}
	defer func() { _ = client.Close() }()

	if cfg.GroqAPIKey == "" {
		cfg.GroqAPIKey = accessSecret(ctx, client, cfg.GoogleCloudProject, "GROQ_API_KEY")
	}
	if cfg.ElevenLabsAPIKey == "" {
		cfg.ElevenLabsAPIKey = accessSecret(ctx, client, cfg.GoogleCloudProject, "ELEVENLABS_API_KEY")
	}

	return nil
}

func accessSecret(ctx context.Context, client *secretmanager.Client, project, name string) string {
	resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", project, name),
	})
	if err != nil {
		slog.Warn("Secret not available", "secret", name, "error", err)
		return ""
	}
	return string(resp.Payload.Data)
}

func applyDefaults(cfg *Config) {
	applyGroqDefaults(cfg)
	applyElevenLabsDefaults(cfg)
	applyContentDefaults(cfg)
	applyOutputDefaults(cfg)
	applyGCSDefaults(cfg)
}

func applyGroqDefaults(cfg *Config) {
	if cfg.Groq.Model == "" {
		cfg.Groq.Model = defaultGroqModel
	}
}

func applyElevenLabsDefaults(cfg *Config) {
	if cfg.ElevenLabs.Model == "" {
		cfg.ElevenLabs.Model = defaultElevenLabsModel
	}
	if cfg.ElevenLabs.Stability == 0 {
		cfg.ElevenLabs.Stability = defaultStability
	}
	if cfg.ElevenLabs.Similarity == 0 {
		cfg.ElevenLabs.Similarity = defaultSimilarity
	}
}

func applyContentDefaults(cfg *Config) {
	if cfg.Content.DefaultLevel == "" {
		cfg.Content.DefaultLevel = defaultLevel
	}
	if cfg.Content.DefaultSpeakers == 0 {
		cfg.Content.DefaultSpeakers = defaultSpeakers
	}
}

func applyOutputDefaults(cfg *Config) {
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = defaultOutputDir
	}
}

func applyGCSDefaults(cfg *Config) {
	if cfg.GCS.AudioDir == "" {
		cfg.GCS.AudioDir = defaultGCSAudioDir
	}
}
