// Package graph builds the windowed dependency structure over an operation
// sequence. Each operation gets a blanket of earlier (parent) and later (spouse)
// neighbours, and its cost is compounded once per recorded parent.
package graph

import (
	"math"

	"github.com/talgya/ghost-cookies/internal/shop"
)

// stackStep is the per-depth penalty: the d-th parent multiplies cost by 1 + stackStep·d.
const stackStep = 0.2

// Blanket wraps one operation with its dependency neighbours.
type Blanket struct {
	Operation    int     `json:"operation"`
	Parents      []int   `json:"parents"`       // max(0, i-d) for d = 1..D, not deduplicated
	Spouses      []int   `json:"spouses"`       // i+d for d = 1..D while inside the sequence
	BaseCost     float64 `json:"base_cost"`
	StackedCost  float64 `json:"stacked_cost"`
	Inefficiency float64 `json:"inefficiency"` // clamp(StackedCost - BaseCost, 0, 1)
}

// Build returns one Blanket per operation, in operation order.
// Negative depth is treated as zero.
func Build(ops []shop.Operation, depth int) []Blanket {
	if depth < 0 {
		depth = 0
	}
	n := len(ops)
	blankets := make([]Blanket, n)

	for i, op := range ops {
		b := Blanket{
			Operation: i,
			Parents:   make([]int, 0, depth),
			Spouses:   make([]int, 0, depth),
			BaseCost:  op.Cost,
		}
		for d := 1; d <= depth; d++ {
			b.Parents = append(b.Parents, max(0, i-d))
			if spouse := i + d; spouse < n {
				b.Spouses = append(b.Spouses, spouse)
			}
		}

		b.StackedCost = StackCost(op.Cost, len(b.Parents))
		b.Inefficiency = clamp01(b.StackedCost - op.Cost)
		blankets[i] = b
	}
	return blankets
}

// StackCost compounds base through parents dependency levels:
// base · Π_{d=1..parents} (1 + 0.2·d).
func StackCost(base float64, parents int) float64 {
	cost := base
	for d := 1; d <= parents; d++ {
		cost *= 1 + stackStep*float64(d)
	}
	return cost
}

// MaxStackedCost returns the largest StackedCost, or 0 for no blankets.
func MaxStackedCost(blankets []Blanket) float64 {
	if len(blankets) == 0 {
		return 0
	}
	best := math.Inf(-1)
	for _, b := range blankets {
		best = math.Max(best, b.StackedCost)
	}
	return best
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
