package gas

// Arena is the outer rectangular boundary. Bodies are confined to the inner
// rectangle left after subtracting Margin from every side.
type Arena struct {
	Width  float64
	Height float64
	Margin float64
}

// Bounds returns the inner rectangle as (left, top, right, bottom).
func (a Arena) Bounds() (left, top, right, bottom float64) {
	return a.Margin, a.Margin, a.Width - a.Margin, a.Height - a.Margin
}
