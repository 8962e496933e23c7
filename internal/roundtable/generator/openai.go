package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// OpenAIConfig configures the OpenAI responses endpoint and HTTP behavior.
type OpenAIConfig struct {
	ResponsesURL string
	APIKey       string
	Model        string
	HTTPClient   *http.Client
}

type openAIInvoker struct {
	cfg OpenAIConfig
}

// NewOpenAIInvoker builds an invoker against the OpenAI responses endpoint.
func NewOpenAIInvoker(cfg OpenAIConfig) Invoker {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if strings.TrimSpace(cfg.ResponsesURL) == "" {
		cfg.ResponsesURL = "https://api.openai.com/v1/responses"
	}
	return &openAIInvoker{cfg: cfg}
}

func (a *openAIInvoker) Invoke(ctx context.Context, req Request) (string, error) {
	apiKey := strings.TrimSpace(a.cfg.APIKey)
	model := strings.TrimSpace(a.cfg.Model)
	prompt := strings.TrimSpace(req.Prompt)
	if apiKey == "" {
		return "", fmt.Errorf("api key is required")
	}
	if model == "" {
		return "", fmt.Errorf("model is required")
	}
	if prompt == "" {
		return "", fmt.Errorf("prompt is required")
	}

	body := map[string]any{
		"model": model,
		"input": prompt,
	}
	if system := strings.TrimSpace(req.System); system != "" {
		body["instructions"] = system
	}
	requestBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal invoke request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.ResponsesURL, bytes.NewReader(requestBody))
	if err != nil {
		return "", fmt.Errorf("build invoke request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	// Credential material is sent only as an Authorization header and is never
	// echoed in errors or response payloads.
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	res, err := a.cfg.HTTPClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("invoke request failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		errBody, err := io.ReadAll(io.LimitReader(res.Body, 4096))
		if err != nil {
			return "", fmt.Errorf("read invoke error body: %w", err)
		}
		return "", fmt.Errorf("invoke request status %d: %s", res.StatusCode, strings.TrimSpace(string(errBody)))
	}

	var payload struct {
		OutputText string `json:"output_text"`
		Output     []struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode invoke response: %w", err)
	}
	outputText := strings.TrimSpace(payload.OutputText)
	if outputText == "" {
		for _, item := range payload.Output {
			for _, content := range item.Content {
				if strings.TrimSpace(content.Text) != "" {
					outputText = strings.TrimSpace(content.Text)
					break
				}
			}
			if outputText != "" {
				break
			}
		}
	}
	if outputText == "" {
		return "", ErrEmptyOutput
	}
	return outputText, nil
}
