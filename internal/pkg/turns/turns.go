// Package turns tracks world time as a monotonic turn counter.
//
// The counter advances once per world turn, combat turns included. Engines
// poll it for "has the interval elapsed" questions such as merchant
// restocking; nothing is pushed.
package turns

//go:generate mockgen -destination=mock/mock.go -package=turnsmock github.com/oakhaven/emberquest/internal/pkg/turns Source

// Source answers how many world turns have elapsed
type Source interface {
	Elapsed() int
}

// Counter is the canonical Source owned by the game session.
type Counter struct {
	elapsed int
}

// NewCounter creates a counter starting at the given turn, so a restored
// session resumes its schedule instead of resetting it.
func NewCounter(start int) *Counter {
	if start < 0 {
		start = 0
	}
	return &Counter{elapsed: start}
}

// Elapsed returns the number of turns taken so far
func (c *Counter) Elapsed() int {
	return c.elapsed
}

// Advance moves the counter forward one turn
func (c *Counter) Advance() {
	c.elapsed++
}

// Every reports whether the current turn is a multiple of n. A zero or
// negative interval never fires.
func (c *Counter) Every(n int) bool {
	if n <= 0 {
		return false
	}
	return c.elapsed > 0 && c.elapsed%n == 0
}
