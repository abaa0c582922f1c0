package fractal

// Sample is one escaping grid cell of the field.
type Sample struct {
	X       float64 `json:"x"`       // plane coordinate (real axis)
	Y       float64 `json:"y"`       // plane coordinate (imaginary axis)
	Density float64 `json:"density"` // Iter / MaxIter, always < 1
	Iter    int     `json:"iter"`
}

// Grid describes the plane window and resolution of a scan.
type Grid struct {
	Width   int // cells along the real axis
	Height  int // cells along the imaginary axis
	MaxIter int
	MinX    float64
	MaxX    float64
	MinY    float64
	MaxY    float64
}

// DefaultGrid returns the 200×200 scan over [-2,1]×[-1,1].
func DefaultGrid() Grid {
	return Grid{
		Width:   200,
		Height:  200,
		MaxIter: GridMaxIter,
		MinX:    -2,
		MaxX:    1,
		MinY:    -1,
		MaxY:    1,
	}
}

// Cells returns the total number of cells in the grid.
func (g Grid) Cells() int {
	if g.Width <= 0 || g.Height <= 0 {
		return 0
	}
	return g.Width * g.Height
}

// Scan sweeps the grid column by column and returns one Sample per cell that
// escapes before MaxIter. Cells that never escape are dropped.
func Scan(g Grid) []Sample {
	if g.Cells() == 0 || g.MaxIter <= 0 {
		return nil
	}

	spanX := g.MaxX - g.MinX
	spanY := g.MaxY - g.MinY
	samples := make([]Sample, 0, g.Cells()/2)

	for px := 0; px < g.Width; px++ {
		for py := 0; py < g.Height; py++ {
			cx := float64(px)/float64(g.Width)*spanX + g.MinX
			cy := float64(py)/float64(g.Height)*spanY + g.MinY

			iter := Escape(cx, cy, g.MaxIter, EscapeRadius)
			if iter >= g.MaxIter {
				continue
			}
			samples = append(samples, Sample{
				X:       cx,
				Y:       cy,
				Density: float64(iter) / float64(g.MaxIter),
				Iter:    iter,
			})
		}
	}
	return samples
}
