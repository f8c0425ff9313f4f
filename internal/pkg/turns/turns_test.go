package turns_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oakhaven/emberquest/internal/pkg/turns"
)

func TestCounterAdvance(t *testing.T) {
	c := turns.NewCounter(0)
	assert.Equal(t, 0, c.Elapsed())

	for i := 1; i <= 5; i++ {
		c.Advance()
		assert.Equal(t, i, c.Elapsed())
	}
}

func TestCounterResume(t *testing.T) {
	c := turns.NewCounter(42)
	assert.Equal(t, 42, c.Elapsed())

	c = turns.NewCounter(-3)
	assert.Equal(t, 0, c.Elapsed())
}

func TestCounterEvery(t *testing.T) {
	c := turns.NewCounter(0)
	assert.False(t, c.Every(3), "turn zero never fires")

	fired := 0
	for i := 0; i < 9; i++ {
		c.Advance()
		if c.Every(3) {
			fired++
		}
	}
	assert.Equal(t, 3, fired)
	assert.False(t, c.Every(0))
	assert.False(t, c.Every(-1))
}
