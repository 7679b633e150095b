package elevenlabs

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"sprachcast/internal/speech"
)

const (
	baseURL = "https://api.elevenlabs.io/v1"
	timeout = 120 * time.Second
)

type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
	baseURL    string
	stability  float64
	similarity float64
}

type Config struct {
	APIKey     string
	Model      string
	Stability  float64
	Similarity float64
}

type option func(*Client)

type timestampResponse struct {
	AudioBase64 string     `json:"audio_base64"`
	Alignment   *alignment `json:"alignment"`
}

type alignment struct {
	Characters          []string  `json:"characters"`
	CharacterStartTimes []float64 `json:"character_start_times_seconds"`
	CharacterEndTimes   []float64 `json:"character_end_times_seconds"`
}

func withBaseURL(url string) option {
	return func(c *Client) {
		c.baseURL = url
	}
}

func withHTTPClient(client *http.Client) option {
	return func(c *Client) {
		c.httpClient = client
	}
}

func NewClient(cfg Config) speech.Provider {
	return newClient(cfg)
}

func newClient(cfg Config, opts ...option) *Client {
	c := &Client{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		stability:  cfg.Stability,
		similarity: cfg.Similarity,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) Synthesize(ctx context.Context, text, voice string) (*speech.Result, error) {
	req, err := c.buildRequest(ctx, text, voice)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("elevenlabs: %s - %s", resp.Status, string(body))
	}

	return parseResponse(body)
}

func (c *Client) buildRequest(ctx context.Context, text, voice string) (*http.Request, error) {
	payload := map[string]any{
		"text":     text,
		"model_id": c.model,
		"voice_settings": map[string]any{
			"stability":        c.stability,
			"similarity_boost": c.similarity,
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s/with-timestamps", c.baseURL, voice)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.apiKey)

	return req, nil
}

func parseResponse(body []byte) (*speech.Result, error) {
	var tsResp timestampResponse
	if err := json.Unmarshal(body, &tsResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	audio, err := base64.StdEncoding.DecodeString(tsResp.AudioBase64)
	if err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}

	return &speech.Result{
		Audio:    audio,
		Duration: clipDuration(audio, tsResp.Alignment),
	}, nil
}

func clipDuration(audio []byte, align *alignment) float64 {
	if align == nil || len(align.CharacterEndTimes) == 0 {
		return speech.EstimateDuration(audio)
	}
	return align.CharacterEndTimes[len(align.CharacterEndTimes)-1]
}
