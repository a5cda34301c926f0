package param

import (
	"math"
	"sync/atomic"
)

// Cell is a single-slot float register shared between a control thread
// (UI or host automation) and the audio thread.
//
// Set and Get are single atomic operations on the float's bit pattern, so
// readers never block, never allocate and never observe a torn value. Only
// the latest store matters; there is no history and no ordering beyond
// last-write-wins.
type Cell struct {
	bits atomic.Uint64
}

// NewCell creates a cell holding v.
func NewCell(v float64) *Cell {
	c := &Cell{}
	c.Set(v)
	return c
}

// Set stores v, replacing any previous value.
func (c *Cell) Set(v float64) {
	c.bits.Store(math.Float64bits(v))
}

// Get returns the most recent value visible to the caller.
func (c *Cell) Get() float64 {
	return math.Float64frombits(c.bits.Load())
}

// Get32 is Get narrowed to float32 for audio kernels.
func (c *Cell) Get32() float32 {
	return float32(c.Get())
}
