package storefront

import (
	"context"

	"github.com/yanqian/ethix-logistics/internal/domain/advisor"
	"github.com/yanqian/ethix-logistics/internal/domain/catalog"
	"github.com/yanqian/ethix-logistics/internal/domain/routing"
)

// Role separates storefront customers from fleet admins.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// User is the signed-in storefront user. There is no credential check.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
	Email string `json:"email"`
}

// CartItem is a product line in the cart.
type CartItem struct {
	catalog.Product
	Quantity       int                     `json:"quantity"`
	MedicalContext *advisor.MedicalContext `json:"medicalContext,omitempty"`
}

// CartUpdate patches a cart line; nil fields are left untouched.
type CartUpdate struct {
	Quantity       *int                    `json:"quantity,omitempty"`
	MedicalContext *advisor.MedicalContext `json:"medicalContext,omitempty"`
}

// ShipmentStatus tracks fulfilment. The engine never sets anything but Processing.
type ShipmentStatus string

const (
	StatusProcessing ShipmentStatus = "Processing"
	StatusInTransit  ShipmentStatus = "In Transit"
	StatusDelivered  ShipmentStatus = "Delivered"
)

// Valid reports whether s is a known status.
func (s ShipmentStatus) Valid() bool {
	switch s {
	case StatusProcessing, StatusInTransit, StatusDelivered:
		return true
	}
	return false
}

// Shipment is the persisted outcome of routing one cart line.
type Shipment struct {
	ID              string             `json:"id"`
	OrderID         string             `json:"orderId"`
	ProductID       string             `json:"productId"`
	ItemName        string             `json:"itemName"`
	Lane            routing.Lane       `json:"lane"`
	Status          ShipmentStatus     `json:"status"`
	PriorityScore   float64            `json:"priorityScore"`
	MedicalUrgency  float64            `json:"medicalUrgency"`
	EthicalRisk     float64            `json:"ethicalRisk"`
	BusinessValue   float64            `json:"businessValue"`
	TimeSensitivity float64            `json:"timeSensitivity"`
	DelayRisk       float64            `json:"delayRisk"`
	Coords          routing.Coordinate `json:"coords"`
	AIExplanation   string             `json:"aiExplanation,omitempty"`
	IsAIFallback    bool               `json:"isAiFallback"`
	Timestamp       string             `json:"timestamp"`
	ProfitImpact    float64            `json:"profitImpact"`
	SlackUsed       bool               `json:"slackUsed"`
}

// Order groups the shipments produced by one checkout.
type Order struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customerId"`
	Items      []CartItem `json:"items"`
	TotalPrice float64    `json:"totalPrice"`
	Timestamp  string     `json:"timestamp"`
	Shipments  []Shipment `json:"shipments"`
}

// BlobStore persists opaque snapshots by key.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}
