package plugin

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/justyntemme/gainplug/pkg/framework/bus"
	"github.com/justyntemme/gainplug/pkg/framework/debug"
	"github.com/justyntemme/gainplug/pkg/framework/editor"
	"github.com/justyntemme/gainplug/pkg/framework/param"
	"github.com/justyntemme/gainplug/pkg/framework/plugin"
	"github.com/justyntemme/gainplug/pkg/framework/process"
	"github.com/justyntemme/gainplug/pkg/framework/state"
)

var (
	// ErrNotInitialized is returned for calls that need Initialize first.
	ErrNotInitialized = errors.New("component not initialized")
	// ErrNotActive is returned by Process while processing is off.
	ErrNotActive = errors.New("component not active")
	// ErrTerminated is returned for any call after Terminate.
	ErrTerminated = errors.New("component terminated")
	// ErrBlockTooLarge is returned for blocks above the initialized maximum.
	ErrBlockTooLarge = errors.New("block exceeds maximum block size")
	// ErrProcessPanic is returned when the processor panicked. The output
	// of that block is silenced.
	ErrProcessPanic = errors.New("processor panicked")
	// ErrUnsupportedSampleSize is returned for 64-bit processing on a
	// processor without a 64-bit path.
	ErrUnsupportedSampleSize = errors.New("sample size not supported")
	// ErrUnknownParameter is returned for parameter IDs the plugin does not
	// declare.
	ErrUnknownParameter = errors.New("unknown parameter")
	// ErrNoEditor is returned by OpenEditor for plugins without a UI.
	ErrNoEditor = errors.New("plugin has no editor")
)

// Component is one plugin instance as seen by a host. Process may be called
// from the audio thread concurrently with the parameter, state and editor
// methods, which belong to the host's UI thread. Lifecycle calls
// (Initialize, SetActive, Terminate) must not overlap a Process call: the
// host stops its audio callback before deactivating.
type Component struct {
	id        uintptr
	info      plugin.Info
	processor Processor
	params    *param.Registry
	state     *state.Manager
	editor    editor.Editor
	logger    *debug.Logger

	// Owned by the audio thread once active
	ctx          *process.Context
	maxBlockSize int

	mu          sync.Mutex // lifecycle transitions
	initialized bool
	terminated  bool
	active      atomic.Bool
	panics      atomic.Uint64

	// Parameters moved by automation since the last Idle, by registry index
	automated []atomic.Bool
}

func newComponent(info plugin.Info, processor Processor, logger *debug.Logger) *Component {
	c := &Component{
		info:      info,
		processor: processor,
		params:    processor.GetParameters(),
		logger:    logger,
	}
	c.state = state.NewManager(c.params)
	c.automated = make([]atomic.Bool, c.params.Count())
	if p, ok := processor.(EditorProvider); ok {
		c.editor = p.Editor()
	}
	return c
}

// NewComponent wraps a processor outside of the plugin registry, for
// standalone hosts and tests.
func NewComponent(info plugin.Info, processor Processor) *Component {
	return newComponent(info, processor, debug.Default())
}

// ID returns the instance id assigned by CreateInstance, or 0.
func (c *Component) ID() uintptr {
	return c.id
}

// Info returns the plugin metadata.
func (c *Component) Info() plugin.Info {
	return c.info
}

// Processor returns the wrapped processor.
func (c *Component) Processor() Processor {
	return c.processor
}

// Initialize prepares the processor for a stream format.
func (c *Component) Initialize(sampleRate float64, maxBlockSize int32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.terminated {
		return ErrTerminated
	}
	if sampleRate <= 0 || maxBlockSize <= 0 {
		return fmt.Errorf("initialize %s: invalid setup %.0f Hz, %d frames", c.info.Name, sampleRate, maxBlockSize)
	}
	if c.active.Load() {
		return fmt.Errorf("initialize %s: component is active", c.info.Name)
	}

	if err := c.processor.Initialize(sampleRate, maxBlockSize); err != nil {
		return fmt.Errorf("initialize %s: %w", c.info.Name, err)
	}

	c.ctx = process.NewContext(int(maxBlockSize), c.params)
	c.ctx.SampleRate = sampleRate
	c.maxBlockSize = int(maxBlockSize)
	c.initialized = true

	c.logger.Info("%s initialized at %.0f Hz, max block %d", c.info.Name, sampleRate, maxBlockSize)
	return nil
}

// SetActive starts or stops processing.
func (c *Component) SetActive(active bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.terminated {
		return ErrTerminated
	}
	if !c.initialized {
		return ErrNotInitialized
	}
	if c.active.Load() == active {
		return nil
	}

	if !active {
		// Later Process calls return ErrNotActive. A block already running
		// is the host's to finish first; processors defer their reset to
		// the next block anyway.
		c.active.Store(false)
	}
	if err := c.processor.SetActive(active); err != nil {
		return fmt.Errorf("set active %v: %w", active, err)
	}
	c.active.Store(active)
	return nil
}

// IsActive reports whether Process will run the processor.
func (c *Component) IsActive() bool {
	return c.active.Load()
}

// Process runs one block. input and output are borrowed for the call and
// must hold one slice per bus channel with at least as many frames as the
// first input channel. changes are automation points for this block.
//
// Process does not allocate on success. A panicking processor is recovered,
// its output silenced and ErrProcessPanic returned.
func (c *Component) Process(input, output [][]float32, changes []process.ParameterChange) (err error) {
	if !c.active.Load() {
		return ErrNotActive
	}

	ctx := c.ctx
	ctx.Input = input
	ctx.Output = output
	if ctx.NumSamples() > c.maxBlockSize {
		return ErrBlockTooLarge
	}

	ctx.ResetChanges()
	for _, ch := range changes {
		ctx.AddParameterChange(ch.ID, ch.Value, ch.SampleOffset)
	}

	defer func() {
		if r := recover(); r != nil {
			c.panics.Add(1)
			ctx.Clear()
			c.logger.LogPanic(r)
			err = ErrProcessPanic
		}
	}()

	c.processor.ProcessAudio(ctx)

	// The registry follows the last automation point of each parameter.
	for _, ch := range ctx.ParameterChanges() {
		if i, ok := c.params.IndexOf(ch.ID); ok {
			c.params.GetByIndex(int32(i)).SetValue(ch.Value)
			c.automated[i].Store(true)
		}
	}
	return nil
}

// Idle passes parameter values moved by automation to the open editor. The
// host calls it from its UI thread, typically on a timer; it returns how
// many parameters were delivered.
func (c *Component) Idle() int {
	n := 0
	for i := range c.automated {
		if !c.automated[i].Swap(false) {
			continue
		}
		n++
		if c.editor != nil {
			p := c.params.GetByIndex(int32(i))
			c.editor.ParamNotify(p.ID, p.GetPlainValue())
		}
	}
	return n
}

// Process64 runs one 64-bit block without automation.
func (c *Component) Process64(input, output [][]float64, frames int) (err error) {
	p64, ok := c.processor.(Processor64)
	if !ok {
		return ErrUnsupportedSampleSize
	}
	if !c.active.Load() {
		return ErrNotActive
	}
	if frames > c.maxBlockSize {
		return ErrBlockTooLarge
	}

	defer func() {
		if r := recover(); r != nil {
			c.panics.Add(1)
			for ch := range output {
				clear(output[ch])
			}
			c.logger.LogPanic(r)
			err = ErrProcessPanic
		}
	}()

	p64.ProcessAudio64(input, output, frames)
	return nil
}

// CanProcessSampleSize reports whether the processor handles size.
func (c *Component) CanProcessSampleSize(size SampleSize) bool {
	switch size {
	case Sample32:
		return true
	case Sample64:
		_, ok := c.processor.(Processor64)
		return ok
	}
	return false
}

// Panics returns how many processor panics were recovered.
func (c *Component) Panics() uint64 {
	return c.panics.Load()
}

// GetBusCount returns the number of buses for a given type and direction.
func (c *Component) GetBusCount(mediaType bus.MediaType, direction bus.Direction) int32 {
	return c.processor.GetBuses().GetBusCount(mediaType, direction)
}

// GetBusInfo returns a bus description, or nil when it does not exist.
func (c *Component) GetBusInfo(mediaType bus.MediaType, direction bus.Direction, index int32) *bus.Info {
	return c.processor.GetBuses().GetBusInfo(mediaType, direction, index)
}

// GetLatencySamples returns the processor latency.
func (c *Component) GetLatencySamples() int32 {
	return c.processor.GetLatencySamples()
}

// GetTailSamples returns the processor tail length.
func (c *Component) GetTailSamples() int32 {
	return c.processor.GetTailSamples()
}

// GetParameterCount returns the number of parameters.
func (c *Component) GetParameterCount() int32 {
	return c.params.Count()
}

// GetParameterInfo describes the parameter at index.
func (c *Component) GetParameterInfo(index int32) (ParameterInfo, error) {
	p := c.params.GetByIndex(index)
	if p == nil {
		return ParameterInfo{}, fmt.Errorf("parameter index %d: %w", index, ErrUnknownParameter)
	}
	return parameterInfo(p), nil
}

// GetParamNormalized returns the current normalized value, or 0 for
// unknown IDs.
func (c *Component) GetParamNormalized(id param.ID) float64 {
	if p := c.params.Get(id); p != nil {
		return p.GetValue()
	}
	return 0
}

// SetParamNormalized applies a host edit: the parameter is updated, the
// processor mirrors it and an open editor is notified with the plain value.
func (c *Component) SetParamNormalized(id param.ID, value float64) error {
	p := c.params.Get(id)
	if p == nil {
		return fmt.Errorf("parameter %d: %w", id, ErrUnknownParameter)
	}

	p.SetValue(value)
	c.parameterChanged(p)
	return nil
}

func (c *Component) parameterChanged(p *param.Parameter) {
	normalized := p.GetValue()
	if l, ok := c.processor.(ParameterListener); ok {
		l.ParameterChanged(p.ID, normalized)
	}
	if c.editor != nil {
		c.editor.ParamNotify(p.ID, p.Denormalize(normalized))
	}
}

// NormalizedParamToPlain converts through the parameter's gradient.
// Unknown IDs pass the value through.
func (c *Component) NormalizedParamToPlain(id param.ID, normalized float64) float64 {
	if p := c.params.Get(id); p != nil {
		return p.Denormalize(normalized)
	}
	return normalized
}

// PlainParamToNormalized converts through the parameter's gradient.
// Unknown IDs pass the value through.
func (c *Component) PlainParamToNormalized(id param.ID, plain float64) float64 {
	if p := c.params.Get(id); p != nil {
		return p.Normalize(plain)
	}
	return plain
}

// GetParamStringByValue formats a normalized value for display.
func (c *Component) GetParamStringByValue(id param.ID, normalized float64) (string, error) {
	p := c.params.Get(id)
	if p == nil {
		return "", fmt.Errorf("parameter %d: %w", id, ErrUnknownParameter)
	}
	return p.FormatValue(normalized), nil
}

// GetParamValueByString parses display text to a normalized value.
func (c *Component) GetParamValueByString(id param.ID, text string) (float64, error) {
	p := c.params.Get(id)
	if p == nil {
		return 0, fmt.Errorf("parameter %d: %w", id, ErrUnknownParameter)
	}
	return p.ParseValue(text)
}

// GetState serializes all parameters.
func (c *Component) GetState() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.state.Save(&buf); err != nil {
		return nil, fmt.Errorf("save state: %w", err)
	}
	return buf.Bytes(), nil
}

// SetState restores parameters saved by GetState and propagates them to
// the processor and editor.
func (c *Component) SetState(data []byte) error {
	if err := c.state.Load(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	for _, p := range c.params.All() {
		c.parameterChanged(p)
	}
	return nil
}

// HasEditor reports whether the plugin provides a user interface.
func (c *Component) HasEditor() bool {
	return c.editor != nil
}

// EditorSize returns the requested editor size.
func (c *Component) EditorSize() (editor.Size, bool) {
	if c.editor == nil {
		return editor.Size{}, false
	}
	return c.editor.Size(), true
}

// OpenEditor opens the editor inside parent using toolkit. Failures wrap
// editor.ErrWindowOpen; audio processing is unaffected either way.
func (c *Component) OpenEditor(parent editor.WindowHandle, toolkit editor.Toolkit) error {
	if c.editor == nil {
		return ErrNoEditor
	}
	if err := c.editor.Open(parent, toolkit); err != nil {
		c.logger.Error("%s: %v", c.info.Name, err)
		return err
	}
	return nil
}

// CloseEditor closes the editor window synchronously.
func (c *Component) CloseEditor() error {
	if c.editor == nil {
		return nil
	}
	return c.editor.Close()
}

// Terminate closes the editor, stops processing and releases the instance.
// The host must not call Process after Terminate.
func (c *Component) Terminate() error {
	c.mu.Lock()
	if c.terminated {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	var errs []error
	if err := c.CloseEditor(); err != nil {
		errs = append(errs, err)
	}
	if c.initialized {
		if err := c.SetActive(false); err != nil {
			errs = append(errs, err)
		}
	}

	c.mu.Lock()
	c.terminated = true
	c.mu.Unlock()

	if c.id != 0 {
		unregisterComponent(c.id)
	}
	c.logger.Info("%s terminated", c.info.Name)
	return errors.Join(errs...)
}
