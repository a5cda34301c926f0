// Package gainplug is a stereo gain plugin with a slider editor. The gain is
// shared between the editor and the audio thread through a single lock-free
// cell holding the linear coefficient.
package gainplug

import (
	"time"

	"github.com/justyntemme/gainplug/pkg/dsp/gain"
	"github.com/justyntemme/gainplug/pkg/framework/param"
	"github.com/justyntemme/gainplug/pkg/framework/plugin"
	pluginapi "github.com/justyntemme/gainplug/pkg/plugin"
)

// ParamGain is the only parameter.
const ParamGain param.ID = 0

const (
	// GainName is the parameter name hosts and editors match on.
	GainName = "gain"
	// GainUnit is shown next to the value.
	GainUnit = "Decibels"

	MinDB     = -90.0
	MaxDB     = 3.0
	DefaultDB = 0.0

	// GradientExponent shapes the host's normalized range so most of the
	// knob travel covers the useful top of the dB range.
	GradientExponent = 0.15
)

// DefaultSmoothing is the coefficient transition time for gain changes.
const DefaultSmoothing = 5 * time.Millisecond

// Info describes the plugin to hosts.
var Info = plugin.Info{
	ID:       "com.dgriffin.imgui-baseplug-gain",
	Name:     "imgui-baseplug gain",
	Product:  "imgui-baseplug gain",
	Version:  "0.1.0",
	Vendor:   "DGriffin",
	Category: "Fx",
	FourCC:   "tRbE",
}

// Plugin creates gain processors.
type Plugin struct {
	// Smoothing is the transition time for coefficient changes. Zero
	// applies changes at the next sample.
	Smoothing time.Duration
}

// New returns the plugin with default smoothing.
func New() *Plugin {
	return &Plugin{Smoothing: DefaultSmoothing}
}

// GetInfo returns plugin metadata
func (p *Plugin) GetInfo() plugin.Info {
	return Info
}

// CreateProcessor creates a processor with its own parameter cell.
func (p *Plugin) CreateProcessor() pluginapi.Processor {
	return NewProcessor(p.Smoothing)
}

// NewGainParameter builds the host-facing gain parameter.
func NewGainParameter() *param.Parameter {
	return param.New(ParamGain, GainName).
		ShortName("Gain").
		Range(MinDB, MaxDB).
		Default(DefaultDB).
		Unit(GainUnit).
		Gradient(param.Power(GradientExponent)).
		Formatter(param.DecibelFormatter, param.DecibelParser).
		Build()
}

// CoefficientFor converts a dB value to the linear coefficient stored in the
// bridge. Values outside [MinDB, MaxDB] are clamped.
func CoefficientFor(db float64) float64 {
	return gain.DbToLinear(param.Clamp(db, MinDB, MaxDB))
}

// Register makes the plugin, with default smoothing, the factory's class.
func Register() {
	RegisterPlugin(New())
}

// RegisterPlugin makes p the factory's class.
func RegisterPlugin(p *Plugin) {
	pluginapi.SetFactoryInfo(pluginapi.FactoryInfo{Vendor: Info.Vendor})
	pluginapi.Register(p)
}
