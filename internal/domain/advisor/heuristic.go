package advisor

import "context"

// FallbackExplanation is attached to every heuristic result.
const FallbackExplanation = "AI Fallback Active — Heuristic context generated based on product properties."

// Heuristic derives the signals from product flags alone. It is deterministic.
func Heuristic(item Item) Result {
	res := Result{
		Explanation: FallbackExplanation,
		IsFallback:  true,
	}
	res.MedicalUrgency = pick(item.MedicalFlag, 0.8, 0.1)
	res.TimeSensitivity = pick(item.TemperatureSensitive, 0.7, 0.3)
	res.EthicalRisk = pick(item.MedicalFlag, 0.6, 0.1)
	res.BusinessRelevance = tierRelevance(item.Tier)
	return res
}

func tierRelevance(tier Tier) float64 {
	switch tier {
	case TierHigh:
		return 0.9
	case TierMedium:
		return 0.5
	default:
		return 0.2
	}
}

func pick(cond bool, yes, no float64) float64 {
	if cond {
		return yes
	}
	return no
}

type heuristicAdvisor struct{}

// NewHeuristic returns the heuristic as an Advisor. It never fails.
func NewHeuristic() Advisor {
	return heuristicAdvisor{}
}

func (heuristicAdvisor) Evaluate(_ context.Context, item Item) (Result, error) {
	return Heuristic(item), nil
}
