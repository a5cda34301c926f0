// Package process provides the audio processing context handed to a
// processor once per block.
package process

import (
	"github.com/justyntemme/gainplug/pkg/framework/param"
)

// MaxParameterChanges is the number of automation points a context can
// hold per block. Further points in the same block are dropped.
const MaxParameterChanges = 128

// ParameterChange is one host automation point: a normalized value for a
// parameter, effective from SampleOffset within the block.
type ParameterChange struct {
	ID           param.ID
	Value        float64
	SampleOffset int
}

// Context carries one block from the host adapter to the processor. It is
// allocated once at Initialize and reused for every block.
type Context struct {
	Input      [][]float32
	Output     [][]float32
	SampleRate float64

	maxBlockSize int

	// Automation points for the current block, ordered by offset
	changes []ParameterChange

	// Parameter access
	params *param.Registry
}

// NewContext creates a context for blocks of up to maxBlockSize frames.
func NewContext(maxBlockSize int, params *param.Registry) *Context {
	return &Context{
		maxBlockSize: maxBlockSize,
		changes:      make([]ParameterChange, 0, MaxParameterChanges),
		params:       params,
	}
}

// MaxBlockSize returns the largest block the context was sized for.
func (c *Context) MaxBlockSize() int {
	return c.maxBlockSize
}

// ParamPlain returns the current plain value of a parameter, or 0 for
// unknown IDs.
func (c *Context) ParamPlain(id param.ID) float64 {
	if c.params == nil {
		return 0
	}
	if p := c.params.Get(id); p != nil {
		return p.GetPlainValue()
	}
	return 0
}

// NumSamples returns the block length in frames.
func (c *Context) NumSamples() int {
	if len(c.Input) > 0 && len(c.Input[0]) > 0 {
		return len(c.Input[0])
	}
	if len(c.Output) > 0 && len(c.Output[0]) > 0 {
		return len(c.Output[0])
	}
	return 0
}

// PassThrough copies input to output over the channels both have.
func (c *Context) PassThrough() {
	for ch := range min(len(c.Input), len(c.Output)) {
		copy(c.Output[ch], c.Input[ch])
	}
}

// Clear silences the output.
func (c *Context) Clear() {
	for ch := range c.Output {
		clear(c.Output[ch])
	}
}

// AddParameterChange queues an automation point for the current block,
// keeping the queue ordered by sample offset. Points at equal offsets keep
// their arrival order. It reports false when the queue is full.
func (c *Context) AddParameterChange(id param.ID, value float64, sampleOffset int) bool {
	if len(c.changes) == cap(c.changes) {
		return false
	}
	if sampleOffset < 0 {
		sampleOffset = 0
	}

	c.changes = append(c.changes, ParameterChange{ID: id, Value: value, SampleOffset: sampleOffset})
	for i := len(c.changes) - 1; i > 0 && c.changes[i-1].SampleOffset > sampleOffset; i-- {
		c.changes[i], c.changes[i-1] = c.changes[i-1], c.changes[i]
	}
	return true
}

// ParameterChanges returns the queued automation points. The slice is only
// valid until ResetChanges.
func (c *Context) ParameterChanges() []ParameterChange {
	return c.changes
}

// ResetChanges empties the automation queue without releasing its storage.
func (c *Context) ResetChanges() {
	c.changes = c.changes[:0]
}
