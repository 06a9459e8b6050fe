package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiConfig selects the Gemini backend. APIKey uses the Gemini API;
// Project and Location use Vertex AI.
type GeminiConfig struct {
	APIKey    string
	Project   string
	Location  string
	ModelName string
}

type GeminiClient struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient creates a domain.Generator backed by Gemini.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	clientCfg := &genai.ClientConfig{}
	switch {
	case cfg.APIKey != "":
		clientCfg.APIKey = cfg.APIKey
		clientCfg.Backend = genai.BackendGeminiAPI
	case cfg.Project != "" && cfg.Location != "":
		clientCfg.Project = cfg.Project
		clientCfg.Location = cfg.Location
		clientCfg.Backend = genai.BackendVertexAI
	default:
		return nil, fmt.Errorf("gemini: either an API key or project and location must be set")
	}

	modelName := cfg.ModelName
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// Generate implements domain.Generator.
func (g *GeminiClient) Generate(ctx context.Context, userMessage, convContext string) (string, error) {
	prompt := BuildPrompt(userMessage, convContext)

	contents := []*genai.Content{
		genai.NewContentFromText(prompt.User, genai.RoleUser),
	}

	temp := float32(0.7)
	topP := float32(0.9)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.System, genai.RoleUser),
		Temperature:       &temp,
		TopP:              &topP,
		MaxOutputTokens:   int32(512),
	}

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned empty text")
	}

	return text, nil
}
