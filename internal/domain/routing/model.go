package routing

// Coordinate is a WGS84 position in decimal degrees. Values are not validated.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Signals are the four normalized advisor inputs, each nominally within [0,1].
type Signals struct {
	MedicalUrgency    float64 `json:"medicalUrgency"`
	TimeSensitivity   float64 `json:"timeSensitivity"`
	EthicalRisk       float64 `json:"ethicalRisk"`
	BusinessRelevance float64 `json:"businessRelevance"`
}

// Lane is the delivery tier assigned to a shipment.
type Lane string

const (
	LaneEthicalExpress Lane = "Ethical Express"
	LaneFastBusiness   Lane = "Fast Business"
	LaneStandard       Lane = "Standard"
)

// Lanes lists every lane from highest to lowest priority.
func Lanes() []Lane {
	return []Lane{LaneEthicalExpress, LaneFastBusiness, LaneStandard}
}

// Branch names the weight set used to score a shipment.
type Branch string

const (
	BranchMedical  Branch = "medical"
	BranchStandard Branch = "standard"
)

// Decision is everything the engine derives for one shipment.
type Decision struct {
	DistanceKm    float64 `json:"distanceKm"`
	DelayRisk     float64 `json:"delayRisk"`
	PriorityScore float64 `json:"priorityScore"`
	Lane          Lane    `json:"lane"`
	Branch        Branch  `json:"branch"`
}
