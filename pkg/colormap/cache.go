package colormap

// Fallback is returned for keys outside the cache.
var Fallback = Black

// Cache maps iteration counts 0..max to precomputed colors.
// It is immutable once built and safe to share between goroutines.
type Cache struct {
	colors []Color
	inSet  Color
}

// NewCache fills one entry per integer iteration in [0, maxIter].
func NewCache(p Palette, maxIter int, inSet Color) *Cache {
	if maxIter < 0 {
		maxIter = 0
	}
	colors := make([]Color, maxIter+1)
	for i := range colors {
		colors[i] = p.At(float64(i), maxIter)
	}
	return &Cache{colors: colors, inSet: inSet}
}

// Lookup never fails: keys outside [0, MaxIterations] give Fallback.
func (c *Cache) Lookup(iter int) Color {
	if iter < 0 || iter >= len(c.colors) {
		return Fallback
	}
	return c.colors[iter]
}

// InSet is the color for points that never escaped.
func (c *Cache) InSet() Color {
	return c.inSet
}

func (c *Cache) MaxIterations() int {
	return len(c.colors) - 1
}
