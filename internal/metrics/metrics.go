// Package metrics reduces an operation sequence and its dependency blankets
// into the summary figures shown next to the scene.
package metrics

import (
	"math"

	"github.com/talgya/ghost-cookies/internal/graph"
	"github.com/talgya/ghost-cookies/internal/shop"
)

// Fraud probability rescaling: meanCost 0.3 → 0, 1.0 → 1.
const (
	fraudFloor = 0.3
	fraudSpan  = 0.7
)

// Fractal dimension heuristic: 1.5 + samples/40000 · 0.5.
const (
	dimensionBase      = 1.5
	dimensionSamples   = 40000.0
	dimensionPerSample = 0.5
)

// Metrics is the derived summary of one generation cycle.
type Metrics struct {
	// NoData is set when there are no operations; every figure is then zero.
	NoData bool `json:"no_data"`

	Operations       int     `json:"operations"`
	MeanEfficiency   float64 `json:"mean_efficiency"`
	MeanCost         float64 `json:"mean_cost"`
	MaxStackedCost   float64 `json:"max_stacked_cost"`
	FractalDimension float64 `json:"fractal_dimension"`
	FraudProbability float64 `json:"fraud_probability"`
	FraudLevel       Level   `json:"fraud_level"`
}

// Compute reduces ops and blankets. samples is the fractal point count, zero
// for the non-fractal archetypes.
func Compute(ops []shop.Operation, blankets []graph.Blanket, samples int) Metrics {
	if len(ops) == 0 {
		return Metrics{NoData: true, FraudLevel: LevelLow}
	}

	meanEff, meanCost := Means(ops)
	fraud := FraudProbability(meanCost)

	return Metrics{
		Operations:       len(ops),
		MeanEfficiency:   meanEff,
		MeanCost:         meanCost,
		MaxStackedCost:   graph.MaxStackedCost(blankets),
		FractalDimension: FractalDimension(samples),
		FraudProbability: fraud,
		FraudLevel:       FraudLevel(fraud),
	}
}

// Means returns the arithmetic mean efficiency and cost, or zeros for no operations.
func Means(ops []shop.Operation) (efficiency, cost float64) {
	if len(ops) == 0 {
		return 0, 0
	}
	for _, op := range ops {
		efficiency += op.Efficiency
		cost += op.Cost
	}
	n := float64(len(ops))
	return efficiency / n, cost / n
}

// FraudProbability linearly rescales mean cost into [0, 1].
func FraudProbability(meanCost float64) float64 {
	if math.IsNaN(meanCost) {
		return 0
	}
	return math.Max(0, math.Min(1, (meanCost-fraudFloor)/fraudSpan))
}

// FractalDimension is a coarse size-based heuristic, 0 when there are no samples.
func FractalDimension(samples int) float64 {
	if samples <= 0 {
		return 0
	}
	return dimensionBase + float64(samples)/dimensionSamples*dimensionPerSample
}
