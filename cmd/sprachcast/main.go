package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"sprachcast/internal/audio"
	"sprachcast/internal/generate"
	"sprachcast/internal/groq"
	"sprachcast/internal/podcast"
	"sprachcast/internal/quiz"
	"sprachcast/internal/script"
	"sprachcast/internal/speech/elevenlabs"
	"sprachcast/internal/storage"
	"sprachcast/pkg/config"
	"sprachcast/pkg/prompts"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1)
	speakerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	answerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	os.Args = append([]string{os.Args[0]}, os.Args[2:]...)

	switch cmd {
	case "generate":
		runGenerate()
	case "episodes":
		runEpisodes()
	case "setup":
		runSetup()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Usage: sprachcast <command> [options]

Commands:
  generate    Generate a podcast episode from vocabulary words
  episodes    List episodes uploaded to Cloud Storage
  setup       Interactive setup wizard

Generate options:
  -words       Comma-separated vocabulary words (required)
  -level       CEFR level: A1, A2, B1, B2, C1, C2 (default B1)
  -speakers    Number of speakers, 1 or 2 (default 2)
  -output      Output directory (default ./output)
  -skip-audio  Generate transcript and quiz only
  -upload      Upload audio to Cloud Storage after generation
  -v           Verbose logging

Examples:
  sprachcast generate -words "der Bahnhof,die Verspätung,umsteigen"
  sprachcast generate -words "das Wetter,regnen" -level A2 -speakers 1
  sprachcast generate -words "die Bewerbung,das Vorstellungsgespräch" -upload`)
}

func runGenerate() {
	words := flag.String("words", "", "Comma-separated vocabulary words")
	level := flag.String("level", "", "CEFR level (A1-C2)")
	speakers := flag.Int("speakers", 0, "Number of speakers (1 or 2)")
	output := flag.String("output", "", "Output directory")
	skipAudio := flag.Bool("skip-audio", false, "Generate transcript and quiz only")
	upload := flag.Bool("upload", false, "Upload audio to Cloud Storage")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupLogging(*verbose)

	cfg, err := config.Load(ctx)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	applyFlags(cfg, *level, *speakers, *output)

	vocabulary := splitWords(*words)
	if len(vocabulary) == 0 {
		slog.Error("Please provide vocabulary words with -words")
		os.Exit(1)
	}

	parsedLevel, err := script.ParseLevel(cfg.Content.DefaultLevel)
	if err != nil {
		slog.Error("Invalid level", "error", err)
		os.Exit(1)
	}

	service, err := buildService(cfg)
	if err != nil {
		slog.Error("Failed to build service", "error", err)
		os.Exit(1)
	}

	pipeline := podcast.NewPipeline(service)
	result, err := pipeline.Generate(ctx, podcast.Request{
		Vocabulary: vocabulary,
		Level:      parsedLevel,
		Speakers:   cfg.Content.DefaultSpeakers,
		SkipAudio:  *skipAudio,
	})
	if err != nil {
		slog.Error("Generation failed", "error", err)
		os.Exit(1)
	}

	printResult(result)

	dir, err := saveResult(cfg, result)
	if err != nil {
		slog.Error("Failed to save episode", "error", err)
		os.Exit(1)
	}
	slog.Info("Episode saved", "dir", dir)

	if *upload && result.Audio != nil {
		uploadAudio(ctx, cfg, dir, result)
	}
}

func setupLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
}

func applyFlags(cfg *config.Config, level string, speakers int, output string) {
	if level != "" {
		cfg.Content.DefaultLevel = level
	}
	if speakers != 0 {
		cfg.Content.DefaultSpeakers = speakers
	}
	if output != "" {
		cfg.Output.Dir = output
	}
}

func splitWords(words string) []string {
	var result []string
	for _, w := range strings.Split(words, ",") {
		if w = strings.TrimSpace(w); w != "" {
			result = append(result, w)
		}
	}
	return result
}

func buildService(cfg *config.Config) (*podcast.Service, error) {
	p, err := prompts.Load()
	if err != nil {
		return nil, err
	}

	backend, err := groq.NewClient(cfg.GroqAPIKey, cfg.Groq.Model)
	if err != nil {
		return nil, err
	}
	client := generate.NewClient(backend, generate.DefaultRetryConfig())

	var synth podcast.Synthesizer
	if cfg.ElevenLabsAPIKey != "" {
		tts := elevenlabs.NewClient(elevenlabs.Config{
			APIKey:     cfg.ElevenLabsAPIKey,
			Model:      cfg.ElevenLabs.Model,
			Stability:  cfg.ElevenLabs.Stability,
			Similarity: cfg.ElevenLabs.Similarity,
		})
		synth = audio.NewSynthesizer(tts, os.TempDir())
	} else {
		slog.Warn("ELEVENLABS_API_KEY not set, episodes will have no audio")
	}

	return podcast.NewService(podcast.ServiceOptions{
		Config:  cfg,
		Scripts: script.NewGenerator(client, p),
		Quizzes: quiz.NewGenerator(client, p),
		Synth:   synth,
	}), nil
}

func printResult(result *podcast.Result) {
	fmt.Println(titleStyle.Render(result.Script.Title))

	for _, line := range result.Script.Dialogue {
		fmt.Printf("%s %s\n\n", speakerStyle.Render(line.Speaker+":"), line.Text)
	}

	if len(result.Voices) > 0 {
		fmt.Println(titleStyle.Render("Voices"))
		for _, speaker := range result.Script.Speakers() {
			fmt.Printf("%s %s\n", speakerStyle.Render(speaker+":"), result.Voices[speaker])
		}
		fmt.Println()
	}

	if result.Quiz != nil {
		fmt.Println(titleStyle.Render("Quiz"))
		for i, q := range result.Quiz.Questions {
			fmt.Printf("%d. %s\n", i+1, q.Question)
			for _, opt := range q.Options {
				marker := "  -"
				if opt == q.CorrectAnswer {
					marker = answerStyle.Render("  ✓")
				}
				fmt.Printf("%s %s\n", marker, opt)
			}
			fmt.Println()
		}
	}

	if result.Degraded() {
		fmt.Println(warnStyle.Render("Some stages failed, episode is incomplete"))
	}
}

func saveResult(cfg *config.Config, result *podcast.Result) (string, error) {
	local := storage.NewLocalStorage(cfg.Output.Dir)
	if err := local.EnsureDirectories(); err != nil {
		return "", err
	}

	dir, err := local.NewEpisodeDir(time.Now())
	if err != nil {
		return "", err
	}

	if _, err := local.SaveTranscript(dir, result.Script); err != nil {
		return "", err
	}

	if result.Audio != nil {
		if _, err := local.SaveAudio(dir, result.Audio.Data); err != nil {
			return "", err
		}
	}

	if result.Quiz != nil {
		if _, err := local.SaveQuiz(dir, result.Quiz); err != nil {
			return "", err
		}
	}

	return dir, nil
}

func uploadAudio(ctx context.Context, cfg *config.Config, dir string, result *podcast.Result) {
	if cfg.GCSBucket == "" {
		slog.Error("GCS_BUCKET not configured, cannot upload")
		os.Exit(1)
	}

	gcs, err := storage.NewGCSStorage(ctx, cfg.GCSBucket, cfg.GCS.AudioDir)
	if err != nil {
		slog.Error("Failed to create GCS client", "error", err)
		os.Exit(1)
	}
	defer func() { _ = gcs.Close() }()

	name := filepath.Base(dir) + ".mp3"
	url, err := gcs.UploadAudio(ctx, name, result.Audio.Data)
	if err != nil {
		slog.Error("Upload failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Upload complete", "url", url)
}

func runEpisodes() {
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupLogging(false)

	cfg, err := config.Load(ctx)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.GCSBucket == "" {
		slog.Error("GCS_BUCKET not configured")
		os.Exit(1)
	}

	gcs, err := storage.NewGCSStorage(ctx, cfg.GCSBucket, cfg.GCS.AudioDir)
	if err != nil {
		slog.Error("Failed to create GCS client", "error", err)
		os.Exit(1)
	}
	defer func() { _ = gcs.Close() }()

	episodes, err := gcs.ListEpisodes(ctx)
	if err != nil {
		slog.Error("Failed to list episodes", "error", err)
		os.Exit(1)
	}

	if len(episodes) == 0 {
		fmt.Println("No episodes uploaded yet")
		return
	}

	for _, name := range episodes {
		fmt.Printf("gs://%s/%s\n", cfg.GCSBucket, name)
	}
}
