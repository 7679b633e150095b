package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

func runSetup() {
	fmt.Println(titleStyle.Render("🎙 Sprachcast Setup"))

	if err := configureEnv(); err != nil {
		fmt.Println(warnStyle.Render(fmt.Sprintf("Setup failed: %v", err)))
		os.Exit(1)
	}
}

func configureEnv() error {
	if _, err := os.Stat(".env"); err == nil {
		var overwrite bool
		if err := huh.NewConfirm().
			Title("Found existing .env file").
			Description("Overwrite?").
			Value(&overwrite).
			Run(); err != nil {
			return err
		}
		if !overwrite {
			fmt.Println(infoStyle.Render("Kept existing .env"))
			return nil
		}
	}

	env := make(map[string]string)

	if err := configureRequiredKeys(env); err != nil {
		return err
	}

	if err := configureGoogleCloud(env); err != nil {
		return err
	}

	return finishSetup(env)
}

func configureRequiredKeys(env map[string]string) error {
	var groqKey, elevenKey string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("GROQ API Key").
				Description("https://console.groq.com/keys").
				Value(&groqKey).
				Validate(required("GROQ API Key")),
			huh.NewInput().
				Title("ElevenLabs API Key").
				Description("https://elevenlabs.io/app/settings/api-keys").
				EchoMode(huh.EchoModePassword).
				Value(&elevenKey).
				Validate(required("ElevenLabs API Key")),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	env["GROQ_API_KEY"] = strings.TrimSpace(groqKey)
	env["ELEVENLABS_API_KEY"] = strings.TrimSpace(elevenKey)
	return nil
}

func configureGoogleCloud(env map[string]string) error {
	var setup bool
	if err := huh.NewConfirm().
		Title("Setup Google Cloud?").
		Description("For uploading episodes to Cloud Storage (optional)").
		Value(&setup).
		Run(); err != nil {
		return err
	}

	if !setup {
		return nil
	}

	var project, bucket string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Google Cloud Project ID").
				Value(&project),
			huh.NewInput().
				Title("Cloud Storage Bucket").
				Description("Bucket name without the gs:// prefix").
				Value(&bucket),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	project = strings.TrimSpace(project)
	bucket = strings.TrimSpace(bucket)

	if project != "" {
		env["GOOGLE_CLOUD_PROJECT"] = project
	}
	if bucket != "" {
		env["GCS_BUCKET"] = bucket
	}

	return nil
}

func finishSetup(env map[string]string) error {
	return runWithSpinner("Writing configuration", func() error {
		if err := os.MkdirAll("output", 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		if err := writeEnvFile(env); err != nil {
			return err
		}
		printNextSteps()
		return nil
	})
}

func writeEnvFile(env map[string]string) error {
	f, err := os.Create(".env")
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	order := []string{
		"GROQ_API_KEY",
		"ELEVENLABS_API_KEY",
		"GOOGLE_CLOUD_PROJECT",
		"GCS_BUCKET",
	}

	for _, key := range order {
		if val, ok := env[key]; ok && val != "" {
			_, _ = fmt.Fprintf(f, "%s=%s\n", key, val)
		}
	}

	return nil
}

func printNextSteps() {
	fmt.Println()
	fmt.Println(titleStyle.Render("Next steps:"))
	fmt.Println(`  1. Run: sprachcast generate -words "der Bahnhof,die Verspätung,umsteigen"`)
	fmt.Println("  2. Find your episode under: output/")
}

func required(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func runWithSpinner(title string, fn func() error) error {
	var err error
	_ = spinner.New().
		Title(title).
		Action(func() { err = fn() }).
		Run()
	if err != nil {
		return err
	}
	fmt.Println(successStyle.Render("✓ " + title))
	return nil
}
