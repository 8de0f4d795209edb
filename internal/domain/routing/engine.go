package routing

import "math"

// Engine scores shipments and assigns lanes. It holds no mutable state.
type Engine struct {
	cfg Config
}

// NewEngine builds an engine around cfg. Validation is the caller's job.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the weighting in use.
func (e *Engine) Config() Config {
	return e.cfg
}

// Distance is Haversine exposed on the engine for callers holding only an Engine.
func (e *Engine) Distance(origin, destination Coordinate) float64 {
	return Haversine(origin, destination)
}

// DelayRisk normalizes a distance against the reference distance, saturating at 1.
func (e *Engine) DelayRisk(distanceKm float64) float64 {
	return math.Min(distanceKm/e.cfg.ReferenceDistanceKm, 1.0)
}

// Branch reports which weight set PriorityScore applies to s.
func (e *Engine) Branch(s Signals) Branch {
	if s.MedicalUrgency > e.cfg.MedicalThreshold {
		return BranchMedical
	}
	return BranchStandard
}

// PriorityScore blends the signals with the delay risk. The result is not clamped.
func (e *Engine) PriorityScore(s Signals, delayRisk float64) float64 {
	if e.Branch(s) == BranchMedical {
		w := e.cfg.Weights.Medical
		return w.UrgencyTime*(s.MedicalUrgency*s.TimeSensitivity) +
			w.DelayRisk*delayRisk +
			w.EthicalRisk*s.EthicalRisk +
			w.BusinessValue*s.BusinessRelevance
	}
	w := e.cfg.Weights.Standard
	return w.BusinessValue*s.BusinessRelevance +
		w.DelayRisk*delayRisk +
		w.TimeSensitivity*s.TimeSensitivity +
		w.EthicalRisk*s.EthicalRisk
}

// ClassifyLane maps a score to its lane; lower bounds are inclusive.
func (e *Engine) ClassifyLane(score float64) Lane {
	switch {
	case score >= e.cfg.ExpressThreshold:
		return LaneEthicalExpress
	case score >= e.cfg.FastThreshold:
		return LaneFastBusiness
	default:
		return LaneStandard
	}
}

// Decide runs the whole pipeline for one shipment.
func (e *Engine) Decide(s Signals, origin, destination Coordinate) Decision {
	distance := e.Distance(origin, destination)
	risk := e.DelayRisk(distance)
	score := e.PriorityScore(s, risk)
	return Decision{
		DistanceKm:    distance,
		DelayRisk:     risk,
		PriorityScore: score,
		Lane:          e.ClassifyLane(score),
		Branch:        e.Branch(s),
	}
}
