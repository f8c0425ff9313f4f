package testutils

import "fmt"

// ScriptedRoller returns a fixed sequence of rolls, then fails. Tests use
// it to force crits, flees, and drops deterministically.
type ScriptedRoller struct {
	Rolls []int
	next  int
}

// Roll returns the next scripted value.
func (r *ScriptedRoller) Roll(_ int) (int, error) {
	if r.next >= len(r.Rolls) {
		return 0, fmt.Errorf("scripted roller exhausted after %d rolls", len(r.Rolls))
	}
	v := r.Rolls[r.next]
	r.next++
	return v, nil
}

// RollN returns the next count scripted values.
func (r *ScriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// FixedRoller always rolls the same value.
type FixedRoller struct {
	Value int
}

// Roll returns the fixed value.
func (r *FixedRoller) Roll(_ int) (int, error) {
	return r.Value, nil
}

// RollN returns count copies of the fixed value.
func (r *FixedRoller) RollN(count, _ int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i] = r.Value
	}
	return out, nil
}
