package gainplug

import (
	"sync/atomic"
	"time"

	"github.com/justyntemme/gainplug/pkg/dsp/gain"
	"github.com/justyntemme/gainplug/pkg/framework/editor"
	"github.com/justyntemme/gainplug/pkg/framework/param"
	"github.com/justyntemme/gainplug/pkg/framework/plugin"
	"github.com/justyntemme/gainplug/pkg/framework/process"
)

// Processor applies the gain held in its coefficient cell. Everything except
// ProcessAudio and ProcessAudio64 runs off the audio thread.
type Processor struct {
	*plugin.BaseProcessor

	params *param.Registry
	gain   *param.Parameter

	// Linear coefficient, written by the editor and host, read once per block
	coeff *param.Cell

	smoothing time.Duration
	smoother  *param.Smoother
	// Set on deactivation; the next block resets the smoother itself.
	resetPending atomic.Bool
	coeffs    []float32
	coeffs64  []float64

	ui     *UIParameters
	editor *Editor
}

// NewProcessor creates a processor at unity gain.
func NewProcessor(smoothing time.Duration) *Processor {
	registry := param.NewRegistry()
	gainParam := NewGainParameter()
	registry.Add(gainParam)

	p := &Processor{
		BaseProcessor: plugin.NewBaseProcessor(registry, nil),
		params:        registry,
		gain:          gainParam,
		coeff:         param.NewCell(CoefficientFor(DefaultDB)),
		smoothing:     smoothing,
		smoother:      param.NewSmoother(param.ExponentialSmoothing, 0),
	}
	p.smoother.Reset(p.coeff.Get())

	p.ui = NewUIParameters(p.coeff, gainParam)
	p.editor = NewEditor(p.ui, registry)

	p.OnInitialize(p.initialize)
	p.OnReset(func() { p.resetPending.Store(true) })
	return p
}

func (p *Processor) initialize(sampleRate float64, maxBlockSize int32) error {
	p.coeffs = make([]float32, maxBlockSize)
	p.coeffs64 = make([]float64, maxBlockSize)
	if p.smoothing > 0 {
		p.smoother.SetTime(sampleRate, p.smoothing)
	} else {
		// A zero pole lands on the target in one sample.
		p.smoother.SetRate(0)
	}
	p.reset()
	return nil
}

// reset jumps the smoother to the current coefficient. It only runs while
// no block is being processed.
func (p *Processor) reset() {
	p.resetPending.Store(false)
	p.smoother.Reset(p.coeff.Get())
}

func (p *Processor) applyPendingReset() {
	if p.resetPending.Swap(false) {
		p.smoother.Reset(p.coeff.Get())
	}
}

// Coefficient returns the cell shared with the editor.
func (p *Processor) Coefficient() *param.Cell {
	return p.coeff
}

// UI returns the editor-side parameter handle.
func (p *Processor) UI() *UIParameters {
	return p.ui
}

// Editor returns the slider editor.
func (p *Processor) Editor() editor.Editor {
	return p.editor
}

// ProcessAudio applies automation points at their sample offsets and
// multiplies both channels by the smoothed coefficient.
func (p *Processor) ProcessAudio(ctx *process.Context) {
	frames := ctx.NumSamples()
	coeffs := p.coeffs[:frames]

	p.applyPendingReset()
	p.smoother.SetTarget(p.coeff.Get())

	pos := 0
	for _, change := range ctx.ParameterChanges() {
		if change.ID != ParamGain {
			continue
		}
		offset := min(change.SampleOffset, frames)
		p.smoother.Fill(coeffs[pos:offset])
		pos = offset

		target := CoefficientFor(p.gain.Denormalize(change.Value))
		p.coeff.Set(target)
		p.smoother.SetTarget(target)
	}
	p.smoother.Fill(coeffs[pos:])

	gain.Process(ctx.Input, ctx.Output, frames, coeffs)
}

// ProcessAudio64 is ProcessAudio for 64-bit hosts, without automation.
func (p *Processor) ProcessAudio64(input, output [][]float64, frames int) {
	coeffs := p.coeffs64[:frames]

	p.applyPendingReset()
	p.smoother.SetTarget(p.coeff.Get())
	for i := range coeffs {
		coeffs[i] = p.smoother.Next()
	}

	gain.Process64(input, output, frames, coeffs)
}

// ParameterChanged mirrors a host edit into the coefficient cell.
func (p *Processor) ParameterChanged(id param.ID, normalized float64) {
	if id != ParamGain {
		return
	}
	p.coeff.Set(CoefficientFor(p.gain.Denormalize(normalized)))
}
