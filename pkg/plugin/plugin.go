// Package plugin adapts a Processor to the calls a plugin host makes:
// lifecycle, block processing, parameter edits, state and editor windows.
package plugin

import (
	"github.com/justyntemme/gainplug/pkg/framework/bus"
	"github.com/justyntemme/gainplug/pkg/framework/editor"
	"github.com/justyntemme/gainplug/pkg/framework/param"
	"github.com/justyntemme/gainplug/pkg/framework/plugin"
	"github.com/justyntemme/gainplug/pkg/framework/process"
)

// Plugin is the main interface that users implement
type Plugin interface {
	// GetInfo returns plugin metadata
	GetInfo() plugin.Info

	// CreateProcessor creates a new instance of the audio processor
	CreateProcessor() Processor
}

// Processor handles the actual audio processing
type Processor interface {
	// Initialize is called when the plugin is created
	Initialize(sampleRate float64, maxBlockSize int32) error

	// ProcessAudio processes audio - ZERO ALLOCATIONS!
	ProcessAudio(ctx *process.Context)

	// GetParameters returns the parameter registry
	GetParameters() *param.Registry

	// GetBuses returns the bus configuration
	GetBuses() *bus.Configuration

	// SetActive is called when processing starts/stops
	SetActive(active bool) error

	// GetLatencySamples returns the plugin's latency in samples
	GetLatencySamples() int32

	// GetTailSamples returns the tail length in samples
	GetTailSamples() int32
}

// Processor64 is implemented by processors that accept 64-bit buffers.
type Processor64 interface {
	ProcessAudio64(input, output [][]float64, frames int)
}

// ParameterListener is implemented by processors that mirror parameter
// values into their own state. It is called off the audio thread whenever
// the host sets a value directly or restores state.
type ParameterListener interface {
	ParameterChanged(id param.ID, normalized float64)
}

// EditorProvider is implemented by processors with a user interface.
type EditorProvider interface {
	Editor() editor.Editor
}

// SampleSize is the sample format of host buffers.
type SampleSize int32

const (
	Sample32 SampleSize = iota
	Sample64
)
