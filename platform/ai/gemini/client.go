// Package gemini is a thin structured-output client for the Gemini API.
// Callers describe the expected JSON with a genai.Schema and receive the
// decoded response; prompt content belongs to the caller.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("gemini: empty response")

// Config configures the client.
type Config struct {
	APIKey      string
	Model       string
	Temperature float32
}

// Image is an inline image part.
type Image struct {
	MIMEType string
	Data     []byte
}

// Request is a single-turn structured generation request.
type Request struct {
	System string
	Prompt string
	Images []Image
	Schema *genai.Schema
}

// Client wraps a genai client bound to one model.
type Client struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewClient creates a client for the Gemini developer API.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gemini: api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.2
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &Client{client: client, model: cfg.Model, temperature: cfg.Temperature}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// GenerateJSON runs req and decodes the JSON answer into out.
func (c *Client) GenerateJSON(ctx context.Context, req Request, out any) error {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
		Temperature:      genai.Ptr(c.temperature),
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, []*genai.Content{buildContent(req)}, config)
	if err != nil {
		return fmt.Errorf("gemini: generate content: %w", err)
	}

	return DecodeJSON(resp.Text(), out)
}

func buildContent(req Request) *genai.Content {
	parts := make([]*genai.Part, 0, len(req.Images)+1)
	for _, img := range req.Images {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: img.MIMEType,
				Data:     img.Data,
			},
		})
	}
	parts = append(parts, genai.NewPartFromText(req.Prompt))

	return &genai.Content{
		Role:  "user",
		Parts: parts,
	}
}

// DecodeJSON decodes model text into out, tolerating a surrounding
// markdown code fence.
func DecodeJSON(text string, out any) error {
	text = stripCodeFence(text)
	if text == "" {
		return ErrEmptyResponse
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("gemini: decode response: %w", err)
	}
	return nil
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
