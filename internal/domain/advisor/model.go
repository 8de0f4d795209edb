package advisor

import (
	"time"

	"github.com/yanqian/ethix-logistics/internal/domain/routing"
)

// Tier is the business value band of a product.
type Tier string

const (
	TierLow    Tier = "Low"
	TierMedium Tier = "Medium"
	TierHigh   Tier = "High"
)

// MedicalContext is collected at the cart for medical products.
type MedicalContext struct {
	IntendedUse    string `json:"intendedUse"`
	RecipientType  string `json:"recipientType"`
	Notes          string `json:"notes,omitempty"`
	PrescriptionID string `json:"prescriptionId,omitempty"`
}

// Item describes one cart line to the advisor.
type Item struct {
	ProductID            string          `json:"productId"`
	Name                 string          `json:"name"`
	MedicalFlag          bool            `json:"medicalFlag"`
	TemperatureSensitive bool            `json:"temperatureSensitive"`
	Tier                 Tier            `json:"businessValueTier"`
	MedicalContext       *MedicalContext `json:"medicalContext,omitempty"`
}

// Result is produced once per cart line and never mutated afterwards.
type Result struct {
	routing.Signals
	Explanation string `json:"explanation"`
	IsFallback  bool   `json:"isFallback"`
}

// Prompt is the provider agnostic request handed to a Completer.
type Prompt struct {
	System string
	User   string
}

// Config wires runtime knobs for the advisor domain.
type Config struct {
	Model       string
	Temperature float32
	Prompt      string
	// Timeout bounds one remote evaluation; zero disables the bound.
	Timeout time.Duration
}
