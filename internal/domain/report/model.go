package report

import "github.com/yanqian/ethix-logistics/internal/domain/routing"

// LaneCount is the number of shipments routed to one lane.
type LaneCount struct {
	Lane  routing.Lane `json:"lane"`
	Count int          `json:"count"`
}

// Dashboard summarizes the fleet for the admin control center.
type Dashboard struct {
	Lanes             []LaneCount `json:"lanes"`
	AveragePriority   float64     `json:"averagePriority"`
	TotalProfitImpact float64     `json:"totalProfitImpact"`
	SlackUsed         int         `json:"slackUsed"`
	FallbackRate      float64     `json:"fallbackRate"`
	TotalShipments    int         `json:"totalShipments"`
}

// Scenario is one column of the counterfactual comparison.
type Scenario struct {
	PriorityDeliveries int    `json:"priorityDeliveries"`
	AvgCriticalDelay   string `json:"avgCriticalDelay"`
	HarmExposure       string `json:"harmExposure"`
	SLABreachRisk      string `json:"slaBreachRisk"`
}

// Counterfactual contrasts the ethical routing with a profit only model.
type Counterfactual struct {
	WithEthics Scenario `json:"withEthics"`
	PureProfit Scenario `json:"pureProfit"`
}
