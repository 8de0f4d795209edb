package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
)

// Completer performs the raw model call and returns its text reply.
type Completer interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

type remoteAdvisor struct {
	cfg       Config
	completer Completer
	logger    *slog.Logger
}

// NewRemote builds an Advisor backed by a generative model. Its errors are
// meant to be absorbed by Service.
func NewRemote(cfg Config, completer Completer, logger *slog.Logger) Advisor {
	return &remoteAdvisor{
		cfg:       cfg,
		completer: completer,
		logger:    logger.With("component", "advisor.remote"),
	}
}

func (r *remoteAdvisor) Evaluate(ctx context.Context, item Item) (Result, error) {
	reply, err := r.completer.Complete(ctx, Prompt{
		System: r.systemPrompt(),
		User:   buildItemPrompt(item),
	})
	if err != nil {
		return Result{}, fmt.Errorf("advisor completion: %w", err)
	}
	r.logger.Debug("advisor reply received", "product", item.ProductID, "content", reply)

	res, err := parseResult(reply)
	if err != nil {
		return Result{}, fmt.Errorf("advisor reply malformed: %w", err)
	}
	return res, nil
}

func (r *remoteAdvisor) systemPrompt() string {
	base := strings.TrimSpace(r.cfg.Prompt)
	if base == "" {
		base = "You are a logistics ethics advisor for an Indian e-commerce fleet."
	}
	enforcer := " Respond ONLY with valid minified JSON using this shape: {\"medicalUrgency\":number,\"timeSensitivity\":number,\"ethicalRisk\":number,\"businessRelevance\":number,\"explanation\":string}. Every number is between 0.0 and 1.0; the explanation is one sentence."
	return base + enforcer
}

func buildItemPrompt(item Item) string {
	notes := "None"
	use := "Standard delivery"
	if mc := item.MedicalContext; mc != nil {
		if v := strings.TrimSpace(mc.Notes); v != "" {
			notes = v
		}
		if v := strings.TrimSpace(mc.IntendedUse); v != "" {
			use = v
		}
	}
	return fmt.Sprintf("Evaluate the logistics priority for this item:\nName: %s\nMedical: %t\nNotes: %s\nUrgency: %s\nTier: %s",
		item.Name, item.MedicalFlag, notes, use, item.Tier)
}

type resultWire struct {
	MedicalUrgency    *float64 `json:"medicalUrgency"`
	TimeSensitivity   *float64 `json:"timeSensitivity"`
	EthicalRisk       *float64 `json:"ethicalRisk"`
	BusinessRelevance *float64 `json:"businessRelevance"`
	Explanation       *string  `json:"explanation"`
}

func parseResult(raw string) (Result, error) {
	sanitized := strings.TrimSpace(raw)
	sanitized = strings.TrimPrefix(sanitized, "```json")
	sanitized = strings.TrimSuffix(sanitized, "```")
	sanitized = strings.Trim(sanitized, "`")
	sanitized = strings.TrimSpace(strings.TrimPrefix(sanitized, "json"))
	if sanitized == "" {
		return Result{}, errors.New("empty reply")
	}

	var wire resultWire
	if err := json.Unmarshal([]byte(sanitized), &wire); err != nil {
		return Result{}, err
	}

	fields := []struct {
		name  string
		value *float64
	}{
		{"medicalUrgency", wire.MedicalUrgency},
		{"timeSensitivity", wire.TimeSensitivity},
		{"ethicalRisk", wire.EthicalRisk},
		{"businessRelevance", wire.BusinessRelevance},
	}
	for _, f := range fields {
		if f.value == nil {
			return Result{}, fmt.Errorf("%s missing", f.name)
		}
		if v := *f.value; math.IsNaN(v) || v < 0 || v > 1 {
			return Result{}, fmt.Errorf("%s out of range: %v", f.name, v)
		}
	}
	if wire.Explanation == nil {
		return Result{}, errors.New("explanation missing")
	}

	res := Result{Explanation: strings.TrimSpace(*wire.Explanation)}
	res.MedicalUrgency = *wire.MedicalUrgency
	res.TimeSensitivity = *wire.TimeSensitivity
	res.EthicalRisk = *wire.EthicalRisk
	res.BusinessRelevance = *wire.BusinessRelevance
	return res, nil
}
