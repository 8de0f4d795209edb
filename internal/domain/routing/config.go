package routing

import (
	"errors"
	"fmt"
	"math"
)

const weightTolerance = 1e-9

// MedicalWeights apply when the medical urgency crosses the threshold.
type MedicalWeights struct {
	UrgencyTime   float64 `yaml:"urgencyTime"`
	DelayRisk     float64 `yaml:"delayRisk"`
	EthicalRisk   float64 `yaml:"ethicalRisk"`
	BusinessValue float64 `yaml:"businessValue"`
}

// StandardWeights apply to every other shipment.
type StandardWeights struct {
	BusinessValue   float64 `yaml:"businessValue"`
	DelayRisk       float64 `yaml:"delayRisk"`
	TimeSensitivity float64 `yaml:"timeSensitivity"`
	EthicalRisk     float64 `yaml:"ethicalRisk"`
}

// Weights groups both branches.
type Weights struct {
	Medical  MedicalWeights  `yaml:"medical"`
	Standard StandardWeights `yaml:"standard"`
}

// Config carries every tunable constant of the engine.
type Config struct {
	// MedicalThreshold is compared with a strict greater-than.
	MedicalThreshold    float64 `yaml:"medicalThreshold"`
	ReferenceDistanceKm float64 `yaml:"referenceDistanceKm"`
	ExpressThreshold    float64 `yaml:"expressThreshold"`
	FastThreshold       float64 `yaml:"fastThreshold"`
	Weights             Weights `yaml:"weights"`
}

// DefaultConfig returns the production weighting.
func DefaultConfig() Config {
	return Config{
		MedicalThreshold:    0.3,
		ReferenceDistanceKm: 500,
		ExpressThreshold:    0.70,
		FastThreshold:       0.40,
		Weights: Weights{
			Medical: MedicalWeights{
				UrgencyTime:   0.40,
				DelayRisk:     0.30,
				EthicalRisk:   0.20,
				BusinessValue: 0.10,
			},
			Standard: StandardWeights{
				BusinessValue:   0.50,
				DelayRisk:       0.25,
				TimeSensitivity: 0.15,
				EthicalRisk:     0.10,
			},
		},
	}
}

// Validate keeps the score inside [0,1] for in-range inputs.
func (c Config) Validate() error {
	if c.ReferenceDistanceKm <= 0 {
		return errors.New("routing.referenceDistanceKm must be positive")
	}
	if c.FastThreshold > c.ExpressThreshold {
		return errors.New("routing.fastThreshold cannot exceed routing.expressThreshold")
	}
	m := c.Weights.Medical
	if sum := m.UrgencyTime + m.DelayRisk + m.EthicalRisk + m.BusinessValue; math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("routing.weights.medical must sum to 1, got %.4f", sum)
	}
	s := c.Weights.Standard
	if sum := s.BusinessValue + s.DelayRisk + s.TimeSensitivity + s.EthicalRisk; math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("routing.weights.standard must sum to 1, got %.4f", sum)
	}
	return nil
}
