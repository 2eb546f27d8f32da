// Package ollama implements pkg/simulator's Driver against Ollama's
// generate API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/papercomputeco/loom/pkg/simulator"
)

const (
	// DefaultModel is the default model used for generation.
	DefaultModel = "llama3.2"

	// DefaultBaseURL is the default Ollama API URL.
	DefaultBaseURL = "http://localhost:11434"
)

// Simulator wraps Ollama's generate API.
type Simulator struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// Config holds configuration for the Ollama simulator.
type Config struct {
	// BaseURL is the Ollama API URL (e.g., "http://localhost:11434").
	// Defaults to DefaultBaseURL if empty.
	BaseURL string

	// Model is the generation model to use (e.g., "llama3.2", "mistral").
	// Defaults to DefaultModel if empty.
	Model string
}

// generateRequest is the request body for Ollama's generate API.
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateResponse is the response from Ollama's generate API.
type generateResponse struct {
	Response string `json:"response"`
}

// New creates a new simulator using Ollama's generate API.
func New(cfg Config) (*Simulator, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Simulator{
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

// Name identifies the driver.
func (s *Simulator) Name() string {
	return "ollama/" + s.model
}

// Propose generates one continuation for the given prompt.
func (s *Simulator) Propose(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Model:  s.model,
		Prompt: prompt,
		Stream: false,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/api/generate", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if strings.TrimSpace(genResp.Response) == "" {
		return "", simulator.ErrNoProposal
	}

	return genResp.Response, nil
}

// Close releases resources held by the simulator.
func (s *Simulator) Close() error {
	// HTTP client doesn't require explicit cleanup
	return nil
}

// Ensure Simulator implements simulator.Driver
var _ simulator.Driver = (*Simulator)(nil)
