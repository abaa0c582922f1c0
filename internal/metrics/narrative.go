package metrics

import (
	"fmt"

	"github.com/talgya/ghost-cookies/internal/shop"
)

// Branch thresholds for the second-order narrative.
const (
	optimalEfficiency = 0.8 // efficient: mean efficiency above this
	wasteCost         = 0.7 // inefficient: an operation counts as high-cost above this
	wasteShare        = 0.3 // inefficient: high-cost share that triggers the waste branch
	complexCost       = 0.6 // fractal: cost above this ...
	complexEfficiency = 0.5 // ... while efficiency stays above this
)

const (
	efficientGeneric   = "Efficient Operations: Standard optimization patterns maintain high performance with minimal resource overhead."
	inefficientGeneric = "Inefficient Operations: Suboptimal resource allocation detected. No significant second-order benefits identified - optimization recommended."
	fractalGeneric     = "Complex Patterns Detected: Mandelbrot shop operations show fractal-based inefficiencies that may provide hidden monitoring benefits."
	pendingNarrative   = "Second-order benefits: Analysis pending."
)

// Narrative returns the second-order information text for an archetype.
func Narrative(arch shop.Archetype, ops []shop.Operation) string {
	switch arch {
	case shop.ArchEfficient:
		meanEff, _ := Means(ops)
		if meanEff > optimalEfficiency {
			return fmt.Sprintf("Optimal Resource Allocation: High efficiency (%.1f%%) enables maximum throughput with minimal waste. "+
				"Second-order benefit: Reduced operational overhead and improved scalability for future expansion.", meanEff*100)
		}
		return efficientGeneric

	case shop.ArchInefficient:
		_, meanCost := Means(ops)
		high := count(ops, func(op shop.Operation) bool { return op.Cost > wasteCost })
		if float64(high) > float64(len(ops))*wasteShare {
			return fmt.Sprintf("Resource Waste Detected: %d operations show high cost patterns (avg: %.1f%%). "+
				"Second-order analysis: While inefficient, these patterns may indicate buffer capacity for peak demand handling "+
				"or redundancy for system resilience.", high, meanCost*100)
		}
		return inefficientGeneric

	case shop.ArchFractal:
		hidden := count(ops, func(op shop.Operation) bool {
			return op.Cost > complexCost && op.Efficiency > complexEfficiency
		})
		if hidden > 0 {
			return fmt.Sprintf("Hidden Resource Monitoring: %d operations show apparent inefficiency but provide superior long-term "+
				"resource allocation insights. These complex fractal patterns enable predictive optimization unavailable to simple models. "+
				"Second-order benefit: Advanced pattern recognition enables proactive fraud detection and dynamic resource reallocation.", hidden)
		}
		return fractalGeneric
	}
	return pendingNarrative
}

func count(ops []shop.Operation, pred func(shop.Operation) bool) int {
	n := 0
	for _, op := range ops {
		if pred(op) {
			n++
		}
	}
	return n
}
