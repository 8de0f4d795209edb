package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestSignalSchemaRequiresEveryField(t *testing.T) {
	schema := signalSchema()
	require.Equal(t, genai.TypeObject, schema.Type)
	require.ElementsMatch(t,
		[]string{"medicalUrgency", "timeSensitivity", "ethicalRisk", "businessRelevance", "explanation"},
		schema.Required,
	)
	for _, name := range schema.Required {
		require.Contains(t, schema.Properties, name)
	}
	require.Equal(t, genai.TypeString, schema.Properties["explanation"].Type)
	require.Equal(t, genai.TypeNumber, schema.Properties["ethicalRisk"].Type)
}

func TestGenerationConfig(t *testing.T) {
	cfg := generationConfig("be brief", 0.3)
	require.Equal(t, "application/json", cfg.ResponseMIMEType)
	require.NotNil(t, cfg.Temperature)
	require.InDelta(t, 0.3, *cfg.Temperature, 1e-6)
	require.NotNil(t, cfg.SystemInstruction)
	require.Equal(t, "be brief", cfg.SystemInstruction.Parts[0].Text)

	require.Nil(t, generationConfig("  ", 0).SystemInstruction)
}

func TestNewCompleterRequiresKey(t *testing.T) {
	_, err := NewCompleter(context.Background(), "", "", "", 0)
	require.Error(t, err)
}
