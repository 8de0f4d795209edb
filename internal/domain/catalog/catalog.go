package catalog

import (
	"github.com/yanqian/ethix-logistics/internal/domain/advisor"
	"github.com/yanqian/ethix-logistics/internal/domain/routing"
)

// Product is a sellable catalog entry.
type Product struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	Price                float64      `json:"price"`
	Category             string       `json:"category"`
	MedicalFlag          bool         `json:"medicalFlag"`
	PrescriptionRequired bool         `json:"prescriptionRequired"`
	TemperatureSensitive bool         `json:"temperatureSensitive"`
	Tier                 advisor.Tier `json:"businessValueTier"`
	ImageURL             string       `json:"imageUrl"`
}

// AdvisorItem describes the product to the advisor.
func (p Product) AdvisorItem(ctx *advisor.MedicalContext) advisor.Item {
	return advisor.Item{
		ProductID:            p.ID,
		Name:                 p.Name,
		MedicalFlag:          p.MedicalFlag,
		TemperatureSensitive: p.TemperatureSensitive,
		Tier:                 p.Tier,
		MedicalContext:       ctx,
	}
}

// Hub is a dispatch origin.
type Hub struct {
	ID     string             `json:"id"`
	Name   string             `json:"name"`
	Coords routing.Coordinate `json:"coords"`
}

// DefaultHubID is the origin used for every shipment unless configured otherwise.
const DefaultHubID = "h1"

var products = []Product{
	{ID: "p1", Name: "Insulin (Vial)", Price: 450, Category: "Medicines", MedicalFlag: true, PrescriptionRequired: true, TemperatureSensitive: true, Tier: advisor.TierMedium, ImageURL: "https://picsum.photos/seed/insulin/300/300"},
	{ID: "p2", Name: "MacBook Pro M3", Price: 154900, Category: "Electronics", Tier: advisor.TierHigh, ImageURL: "https://picsum.photos/seed/macbook/300/300"},
	{ID: "p3", Name: "Life-saving Antibiotics", Price: 1200, Category: "Medicines", MedicalFlag: true, PrescriptionRequired: true, Tier: advisor.TierMedium, ImageURL: "https://picsum.photos/seed/medicine/300/300"},
	{ID: "p4", Name: "Aashirvaad Atta (5kg)", Price: 380, Category: "Essentials", Tier: advisor.TierLow, ImageURL: "https://picsum.photos/seed/atta/300/300"},
	{ID: "p5", Name: "Blood Pressure Monitor", Price: 2400, Category: "Medicines", MedicalFlag: true, Tier: advisor.TierMedium, ImageURL: "https://picsum.photos/seed/bp/300/300"},
	{ID: "p6", Name: "iPhone 15 Pro", Price: 129900, Category: "Electronics", Tier: advisor.TierHigh, ImageURL: "https://picsum.photos/seed/iphone/300/300"},
}

var hubs = []Hub{
	{ID: "h1", Name: "Chennai Central Hub", Coords: routing.Coordinate{Lat: 13.0827, Lon: 80.2707}},
	{ID: "h2", Name: "Madurai Logistics Park", Coords: routing.Coordinate{Lat: 9.9252, Lon: 78.1198}},
	{ID: "h3", Name: "Coimbatore Distribution Center", Coords: routing.Coordinate{Lat: 11.0168, Lon: 76.9558}},
}

// Products returns a copy of the catalog.
func Products() []Product {
	return append([]Product(nil), products...)
}

// FindProduct looks a product up by id.
func FindProduct(id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Hubs returns a copy of the hub list.
func Hubs() []Hub {
	return append([]Hub(nil), hubs...)
}

// FindHub looks a hub up by id.
func FindHub(id string) (Hub, bool) {
	for _, h := range hubs {
		if h.ID == id {
			return h, true
		}
	}
	return Hub{}, false
}
