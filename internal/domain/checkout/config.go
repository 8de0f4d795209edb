package checkout

import (
	"math/rand/v2"

	"github.com/yanqian/ethix-logistics/internal/domain/routing"
)

// Config wires runtime knobs for checkout.
type Config struct {
	HubID               string  `yaml:"hubId"`
	ExpressProfitImpact float64 `yaml:"expressProfitImpact"`
	AdvisorConcurrency  int     `yaml:"advisorConcurrency"`
	Region              Region  `yaml:"region"`
}

// Region is the box destinations are drawn from.
type Region struct {
	MinLat  float64 `yaml:"minLat"`
	LatSpan float64 `yaml:"latSpan"`
	MinLon  float64 `yaml:"minLon"`
	LonSpan float64 `yaml:"lonSpan"`
}

// TamilNadu roughly bounds the delivery area of the demo storefront.
var TamilNadu = Region{MinLat: 8.5, LatSpan: 5.5, MinLon: 76.5, LonSpan: 3.5}

// DefaultConfig mirrors the storefront's historical behaviour.
func DefaultConfig() Config {
	return Config{
		HubID:               "h1",
		ExpressProfitImpact: 200,
		AdvisorConcurrency:  4,
		Region:              TamilNadu,
	}
}

// DestinationSampler picks the delivery point of one shipment.
type DestinationSampler func() routing.Coordinate

// UniformSampler draws points uniformly from r using the package level source.
func UniformSampler(r Region) DestinationSampler {
	return func() routing.Coordinate {
		return routing.Coordinate{
			Lat: r.MinLat + rand.Float64()*r.LatSpan,
			Lon: r.MinLon + rand.Float64()*r.LonSpan,
		}
	}
}
