// Package plugin provides plugin metadata and the base processor that
// concrete plugins embed.
package plugin

import (
	"sync/atomic"

	"github.com/justyntemme/gainplug/pkg/framework/bus"
	"github.com/justyntemme/gainplug/pkg/framework/param"
	"github.com/justyntemme/gainplug/pkg/framework/process"
)

// Setup is the stream format fixed by Initialize.
type Setup struct {
	SampleRate   float64
	MaxBlockSize int32
}

// hooks are the lifecycle callbacks a concrete processor registers.
type hooks struct {
	initialize func(sampleRate float64, maxBlockSize int32) error
	setActive  func(active bool) error
	reset      func()
}

// BaseProcessor implements the lifecycle part of a processor so plugins
// only write ProcessAudio. Lifecycle calls come from the host's control
// thread, never concurrently with each other.
type BaseProcessor struct {
	params *param.Registry
	buses  *bus.Configuration
	setup  Setup
	active atomic.Bool
	hooks  hooks
}

// NewBaseProcessor creates a base processor sharing params. Nil arguments
// default to an empty registry and a stereo layout.
func NewBaseProcessor(params *param.Registry, buses *bus.Configuration) *BaseProcessor {
	if params == nil {
		params = param.NewRegistry()
	}
	if buses == nil {
		buses = bus.NewStereoConfiguration()
	}
	return &BaseProcessor{params: params, buses: buses}
}

// Initialize records the stream format and runs the OnInitialize hook,
// where buffers sized by maxBlockSize belong.
func (b *BaseProcessor) Initialize(sampleRate float64, maxBlockSize int32) error {
	b.setup = Setup{SampleRate: sampleRate, MaxBlockSize: maxBlockSize}
	if b.hooks.initialize == nil {
		return nil
	}
	return b.hooks.initialize(sampleRate, maxBlockSize)
}

// SetActive toggles processing. Deactivating runs the OnReset hook first.
func (b *BaseProcessor) SetActive(active bool) error {
	if !active && b.hooks.reset != nil {
		b.hooks.reset()
	}
	b.active.Store(active)
	if b.hooks.setActive == nil {
		return nil
	}
	return b.hooks.setActive(active)
}

func (b *BaseProcessor) IsActive() bool {
	return b.active.Load()
}

func (b *BaseProcessor) GetParameters() *param.Registry {
	return b.params
}

func (b *BaseProcessor) GetBuses() *bus.Configuration {
	return b.buses
}

// GetLatencySamples and GetTailSamples report zero; override for
// lookahead or reverb-style processors.
func (b *BaseProcessor) GetLatencySamples() int32 { return 0 }
func (b *BaseProcessor) GetTailSamples() int32    { return 0 }

func (b *BaseProcessor) Setup() Setup        { return b.setup }
func (b *BaseProcessor) SampleRate() float64 { return b.setup.SampleRate }
func (b *BaseProcessor) MaxBlockSize() int32 { return b.setup.MaxBlockSize }

func (b *BaseProcessor) OnInitialize(fn func(sampleRate float64, maxBlockSize int32) error) {
	b.hooks.initialize = fn
}

func (b *BaseProcessor) OnSetActive(fn func(active bool) error) {
	b.hooks.setActive = fn
}

// OnReset registers the hook that clears processing state, such as
// smoothers, when the host stops the stream.
func (b *BaseProcessor) OnReset(fn func()) {
	b.hooks.reset = fn
}

// AudioProcessor is implemented by processors embedding BaseProcessor.
// ProcessAudio must not allocate, lock or block.
type AudioProcessor interface {
	ProcessAudio(ctx *process.Context)
}
