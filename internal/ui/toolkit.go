package ui

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/justyntemme/gainplug/pkg/framework/editor"
)

// Toolkit opens editor windows on a terminal. It accepts only
// editor.TerminalHandle parents.
type Toolkit struct {
	// Input and Output default to the parent terminal and stdout.
	Input  io.Reader
	Output io.Writer

	// Status is shown under the sliders.
	Status func() string

	// OnExit runs when a window's program ends, whether the user quit or
	// the host closed it.
	OnExit func(error)
}

// Open starts a Bubbletea program for opts on the parent terminal.
func (tk *Toolkit) Open(parent editor.WindowHandle, opts editor.Options) (editor.Window, error) {
	h, ok := parent.(editor.TerminalHandle)
	if !ok {
		return nil, fmt.Errorf("%w: %s", editor.ErrUnsupportedPlatform, parent.Platform())
	}

	model := NewModel(opts, tk.Status)
	progOpts := []tea.ProgramOption{}
	var tty *os.File

	input := tk.Input
	if input == nil {
		fd := int(h.FD)
		if !term.IsTerminal(fd) {
			return nil, fmt.Errorf("fd %d is not a terminal", fd)
		}
		if w, _, err := term.GetSize(fd); err == nil {
			model.Width = w
		}
		tty = terminalFile(h.FD)
		input = tty
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	output := tk.Output
	if output == nil {
		output = os.Stdout
	}
	progOpts = append(progOpts, tea.WithInput(input), tea.WithOutput(output))

	w := &window{
		program: tea.NewProgram(model, progOpts...),
		tty:     tty,
		done:    make(chan struct{}),
	}
	go func() {
		_, err := w.program.Run()
		w.err = err
		close(w.done)
		if tk.OnExit != nil {
			tk.OnExit(err)
		}
	}()
	return w, nil
}

// window is a running terminal editor.
type window struct {
	program *tea.Program
	tty     *os.File // kept reachable so its finalizer cannot close the fd
	done    chan struct{}
	err     error
	once    sync.Once
}

// Close quits the program and waits for the terminal to be restored.
func (w *window) Close() error {
	w.once.Do(w.program.Quit)
	<-w.done
	runtime.KeepAlive(w.tty)
	return w.err
}

// terminalFile returns the *os.File for fd. The standard streams map to the
// os package's own files; wrapping them again would attach a second closing
// finalizer to descriptors the process still uses.
func terminalFile(fd uintptr) *os.File {
	for _, f := range []*os.File{os.Stdin, os.Stdout, os.Stderr} {
		if f.Fd() == fd {
			return f
		}
	}
	return os.NewFile(fd, "tty")
}
