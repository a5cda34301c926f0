package gainplug

import (
	"github.com/justyntemme/gainplug/pkg/framework/editor"
	"github.com/justyntemme/gainplug/pkg/framework/param"
)

const (
	WindowTitle  = "imgui-baseview demo window"
	WindowWidth  = 1024
	WindowHeight = 512
	SliderLabel  = "Gain"
)

// UIParameters is the editor's view of the gain. Gain holds the slider value
// in dB; edits also store the linear coefficient into the cell the processor
// reads, so the audio thread sees them at its next block.
type UIParameters struct {
	Gain *param.Cell

	coeff *param.Cell
	host  *param.Parameter
}

// NewUIParameters binds a slider cell to the processor's coefficient cell.
// host may be nil; when set, slider edits also update the host parameter.
func NewUIParameters(coeff *param.Cell, host *param.Parameter) *UIParameters {
	return &UIParameters{
		Gain:  param.NewCell(DefaultDB),
		coeff: coeff,
		host:  host,
	}
}

// GainDB returns the slider value.
func (u *UIParameters) GainDB() float64 {
	return u.Gain.Get()
}

// SetGainDB is the slider edit: the value is clamped to [MinDB, MaxDB] and
// published to the audio thread.
func (u *UIParameters) SetGainDB(db float64) {
	db = param.Clamp(db, MinDB, MaxDB)
	u.Gain.Set(db)
	u.coeff.Set(CoefficientFor(db))
	if u.host != nil {
		u.host.SetPlainValue(db)
	}
}

// syncGainDB follows a change made outside the editor. The coefficient has
// already been published by whoever made it.
func (u *UIParameters) syncGainDB(db float64) {
	u.Gain.Set(param.Clamp(db, MinDB, MaxDB))
}

// Editor is the single slider window.
type Editor struct {
	editor.WindowState

	ui       *UIParameters
	registry *param.Registry
	dispatch *param.Dispatcher
}

// NewEditor creates an editor over ui. Notifications for parameters in
// registry are routed by ID.
func NewEditor(ui *UIParameters, registry *param.Registry) *Editor {
	e := &Editor{
		ui:       ui,
		registry: registry,
		dispatch: param.NewDispatcher(),
	}
	e.dispatch.Handle(ParamGain, ui.syncGainDB)
	return e
}

// Size returns the requested window size.
func (e *Editor) Size() editor.Size {
	return editor.Size{Width: WindowWidth, Height: WindowHeight}
}

// Options describes the window and its controls.
func (e *Editor) Options() editor.Options {
	return editor.Options{
		Title: WindowTitle,
		Size:  e.Size(),
		Controls: []editor.Slider{{
			Label: SliderLabel,
			Min:   MinDB,
			Max:   MaxDB,
			Get:   e.ui.GainDB,
			Set:   e.ui.SetGainDB,
		}},
	}
}

// Open opens the window in parent.
func (e *Editor) Open(parent editor.WindowHandle, toolkit editor.Toolkit) error {
	return e.WindowState.Open(parent, toolkit, e.Options())
}

// ParamNotify updates the slider from a plain dB value set by the host.
// Other parameters are ignored.
func (e *Editor) ParamNotify(id param.ID, value float64) {
	e.dispatch.Notify(id, value)
}

// ParamNotifyName is ParamNotify keyed by parameter name. It reports
// whether the name was handled.
func (e *Editor) ParamNotifyName(name string, value float64) bool {
	return e.dispatch.NotifyName(e.registry, name, value)
}
