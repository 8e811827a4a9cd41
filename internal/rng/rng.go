package rng

import (
	"math/rand"
)

// Context is the single source of randomness for a generation run.
// Every decision a generator makes is drawn from it, and the draw order is
// fixed: two runs with the same seed replay the same sequence of values.
type Context struct {
	r *rand.Rand
}

func New(seed int64) *Context {
	return &Context{r: rand.New(rand.NewSource(seed))}
}

// Uniform returns a float in [lo, hi).
func (c *Context) Uniform(lo, hi float64) float64 {
	return lo + c.r.Float64()*(hi-lo)
}

// IntBetween returns an int in [lo, hi], both ends inclusive.
func (c *Context) IntBetween(lo, hi int) int {
	return lo + c.r.Intn(hi-lo+1)
}

// Bool is a Bernoulli draw: true with probability p.
// Callers validate p in [0,1] at configuration time.
func (c *Context) Bool(p float64) bool {
	return c.r.Float64() < p
}

// Choice returns a uniformly drawn element of opts.
func (c *Context) Choice(opts []string) string {
	return opts[c.r.Intn(len(opts))]
}

// WeightedChoice returns an element of opts with probability proportional
// to its weight. Weights need not sum to 1.
func (c *Context) WeightedChoice(opts []string, weights []float64) string {
	var total float64
	for _, w := range weights {
		total += w
	}
	draw := c.r.Float64() * total
	for i, w := range weights {
		draw -= w
		if draw < 0 {
			return opts[i]
		}
	}
	return opts[len(opts)-1]
}

// Read exposes the context as an io.Reader so identifier generation
// (UUIDs) stays on the same deterministic stream. Never returns an error.
func (c *Context) Read(p []byte) (int, error) {
	return c.r.Read(p)
}
