package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/yanqian/ethix-logistics/internal/domain/advisor"
)

const defaultModel = "gemini-3-flash-preview"

// Completer asks Gemini for a schema constrained JSON reply.
type Completer struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewCompleter creates the Gemini client. baseURL is optional and only used
// to point at a proxy.
func NewCompleter(ctx context.Context, apiKey, baseURL, model string, temperature float32) (*Completer, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key cannot be empty")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if strings.TrimSpace(baseURL) != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Completer{client: client, model: model, temperature: temperature}, nil
}

// Complete implements advisor.Completer.
func (c *Completer) Complete(ctx context.Context, prompt advisor.Prompt) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx,
		c.model,
		[]*genai.Content{genai.NewContentFromText(prompt.User, genai.RoleUser)},
		generationConfig(prompt.System, c.temperature),
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("gemini returned an empty reply")
	}
	return text, nil
}

func generationConfig(system string, temperature float32) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   signalSchema(),
	}
	if strings.TrimSpace(system) != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	return cfg
}

// signalSchema describes the advisor reply so the model cannot omit fields.
func signalSchema() *genai.Schema {
	number := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeNumber, Description: desc}
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"medicalUrgency":    number("0.0 to 1.0 urgency scale"),
			"timeSensitivity":   number("0.0 to 1.0 sensitivity scale"),
			"ethicalRisk":       number("0.0 to 1.0 potential for harm if delayed"),
			"businessRelevance": number("0.0 to 1.0 priority for business profit/SLA"),
			"explanation":       {Type: genai.TypeString, Description: "One sentence context explanation"},
		},
		Required: []string{"medicalUrgency", "timeSensitivity", "ethicalRisk", "businessRelevance", "explanation"},
	}
}

var _ advisor.Completer = (*Completer)(nil)
