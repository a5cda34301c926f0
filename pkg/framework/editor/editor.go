// Package editor defines the contract between a plugin's editor and the
// toolkit that renders it into a host supplied parent window.
package editor

import (
	"errors"
	"fmt"
	"sync"

	"github.com/justyntemme/gainplug/pkg/framework/param"
)

// ErrWindowOpen wraps every failure to present an editor window.
var ErrWindowOpen = errors.New("editor window open failed")

// Size is a window size in logical pixels.
type Size struct {
	Width  int
	Height int
}

// Slider binds a ranged control to a getter and setter. Set receives
// values already clamped to [Min, Max].
type Slider struct {
	Label string
	Min   float64
	Max   float64
	Get   func() float64
	Set   func(float64)
}

// Clamp limits v to the slider range.
func (s Slider) Clamp(v float64) float64 {
	return param.Clamp(v, s.Min, s.Max)
}

// Options describe the window a toolkit should open.
type Options struct {
	Title    string
	Size     Size
	Scale    float64 // 0 uses the system scale factor
	Controls []Slider
}

// Window is an open toolkit window.
type Window interface {
	Close() error
}

// Toolkit renders editor windows into a parent handle.
type Toolkit interface {
	Open(parent WindowHandle, opts Options) (Window, error)
}

// Editor is implemented by plugins with a user interface.
type Editor interface {
	Size() Size
	Open(parent WindowHandle, toolkit Toolkit) error
	// ParamNotify tells the editor a parameter changed outside of it. It
	// may be called whether or not a window is open.
	ParamNotify(id param.ID, value float64)
	Close() error
}

// WindowState tracks at most one open toolkit window. Editors embed it to get
// Open and Close with the error contract of this package.
type WindowState struct {
	mu     sync.Mutex
	window Window
}

// Open asks the toolkit for a window unless one is already open.
func (w *WindowState) Open(parent WindowHandle, toolkit Toolkit, opts Options) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.window != nil {
		return nil
	}
	if parent == nil {
		return fmt.Errorf("%w: %w", ErrWindowOpen, ErrInvalidHandle)
	}
	if toolkit == nil {
		return fmt.Errorf("%w: no toolkit", ErrWindowOpen)
	}

	win, err := toolkit.Open(parent, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWindowOpen, err)
	}
	if win == nil {
		return fmt.Errorf("%w: toolkit returned no window", ErrWindowOpen)
	}
	w.window = win
	return nil
}

// IsOpen reports whether a window is open.
func (w *WindowState) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.window != nil
}

// Close closes the window synchronously. Closing a closed editor is a
// no-op.
func (w *WindowState) Close() error {
	w.mu.Lock()
	win := w.window
	w.window = nil
	w.mu.Unlock()

	if win == nil {
		return nil
	}
	if err := win.Close(); err != nil {
		return fmt.Errorf("close editor window: %w", err)
	}
	return nil
}
