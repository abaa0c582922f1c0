// Package fractal provides the escape-time field behind the fractal shop archetype.
// The same iteration serves as a scalar signal (one value per operation) and as a
// dense grid scan (the point cloud drawn over the scene).
package fractal

import "math"

// Iteration bounds for the two call sites.
const (
	SignalMaxIter = 100 // scalar signal along the parametrized curve
	GridMaxIter   = 50  // dense grid scan
	EscapeRadius  = 2.0
)

// Escape returns the iteration count at which the orbit z ← z² + c (z₀ = 0)
// first reaches |z| ≥ radius, or maxIter if it never does.
func Escape(cx, cy float64, maxIter int, radius float64) int {
	r2 := radius * radius
	x, y := 0.0, 0.0
	iter := 0
	for x*x+y*y < r2 && iter < maxIter {
		x, y = x*x-y*y+cx, 2*x*y+cy
		iter++
	}
	return iter
}

// CurvePoint maps progress t onto the closed curve the scalar signal samples.
// The curve has period 1 in t.
func CurvePoint(t float64) (cx, cy float64) {
	// Reduce to the fractional part so t and t+1 hit the same angle.
	t -= math.Floor(t)
	angle := 2 * math.Pi * t
	return -0.75 + 0.5*math.Sin(angle), 0.5 * math.Cos(angle)
}

// Signal returns the normalized escape count in [0, 1] for progress t.
func Signal(t float64) float64 {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0
	}
	cx, cy := CurvePoint(t)
	v := float64(Escape(cx, cy, SignalMaxIter, EscapeRadius)) / SignalMaxIter
	return math.Min(1, v)
}
