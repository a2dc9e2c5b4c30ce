// Package llm wraps the generative model used to write blog posts.
package llm

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"google.golang.org/genai"
)

// DefaultModel is the default Gemini model used for blog generation.
const DefaultModel = "gemini-2.5-flash"

// ErrNotConfigured indicates the generative-model credential is absent.
// Surfaced as a server-side configuration fault, never as user input error.
var ErrNotConfigured = errors.New("gemini API key is not configured")

// Client represents a client for interacting with the generative model.
type Client struct {
	apiKey      string
	modelName   string
	temperature float32
	gClient     *genai.Client
}

// NewClient creates a new LLM client.
// It supports multiple ways to get the API key (in order of preference):
// 1. Environment variable: GEMINI_API_KEY (or alternatives)
// 2. Viper configuration: gemini.api_key
func NewClient(ctx context.Context, modelName string) (*Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		if apiKey = os.Getenv("GOOGLE_GEMINI_API_KEY"); apiKey == "" {
			if apiKey = os.Getenv("GOOGLE_AI_API_KEY"); apiKey == "" {
				apiKey = viper.GetString("gemini.api_key")
			}
		}
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: set GEMINI_API_KEY or gemini.api_key in the config file", ErrNotConfigured)
	}

	if modelName == "" {
		modelName = viper.GetString("gemini.model")
		if modelName == "" {
			modelName = DefaultModel
		}
	}

	gClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	temperature := float32(viper.GetFloat64("gemini.temperature"))

	return &Client{
		apiKey:      apiKey,
		modelName:   modelName,
		temperature: temperature,
		gClient:     gClient,
	}, nil
}

// GenerateText invokes the model once with separate system instruction and
// user content. No retries are performed at this layer.
func (c *Client) GenerateText(ctx context.Context, instruction, content string) (string, error) {
	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: content}},
		Role:  "user",
	}}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: instruction}},
		},
		Temperature: genai.Ptr(c.temperature),
	}

	resp, err := c.gClient.Models.GenerateContent(ctx, c.modelName, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}

	return text, nil
}

// ModelName returns the model this client generates with.
func (c *Client) ModelName() string {
	return c.modelName
}
