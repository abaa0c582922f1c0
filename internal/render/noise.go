package render

import opensimplex "github.com/ojrac/opensimplex-go"

// Fractal point wobble: two octaves of simplex noise scaled to ±wobbleDepth.
const (
	wobbleDepth       = 10.0
	wobbleOctaves     = 2
	wobblePersistence = 0.5
	wobbleSpread      = 0.5  // noise-space distance between neighbouring points
	wobbleRate        = 0.02 // noise-space distance per frame
)

// octaveNoise layers octaves of noise, each at double the frequency and
// persistence times the amplitude of the last, normalized to [-1, 1].
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	if maxVal == 0 {
		return 0
	}
	return total / maxVal
}

// wobble is the depth offset of fractal point i at time t.
func (r *Renderer) wobble(i int, t float64) float64 {
	return octaveNoise(r.noise, float64(i)*wobbleSpread, t*wobbleRate, wobbleOctaves, 1, wobblePersistence) * wobbleDepth
}
