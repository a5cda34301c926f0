package editor

import (
	"errors"
	"fmt"
	"math"
	"runtime"
)

// ErrUnsupportedPlatform is returned for platforms without a native
// window handle representation.
var ErrUnsupportedPlatform = errors.New("unsupported window platform")

// ErrInvalidHandle is returned for null or out of range parent handles.
var ErrInvalidHandle = errors.New("invalid window handle")

// Platform identifies the windowing system a handle belongs to.
type Platform int

const (
	PlatformMacOS Platform = iota
	PlatformWindows
	PlatformXcb
	PlatformTerminal
)

func (p Platform) String() string {
	switch p {
	case PlatformMacOS:
		return "macos"
	case PlatformWindows:
		return "windows"
	case PlatformXcb:
		return "xcb"
	case PlatformTerminal:
		return "terminal"
	default:
		return fmt.Sprintf("platform(%d)", int(p))
	}
}

// WindowHandle is a parent window provided by the host.
type WindowHandle interface {
	Platform() Platform
	// NativeHandle returns the raw handle value for the toolkit.
	NativeHandle() uintptr
}

// MacOSHandle wraps an NSView pointer.
type MacOSHandle struct {
	NSView uintptr
}

func (h MacOSHandle) Platform() Platform    { return PlatformMacOS }
func (h MacOSHandle) NativeHandle() uintptr { return h.NSView }

// WindowsHandle wraps an HWND.
type WindowsHandle struct {
	HWND uintptr
}

func (h WindowsHandle) Platform() Platform    { return PlatformWindows }
func (h WindowsHandle) NativeHandle() uintptr { return h.HWND }

// XcbHandle wraps an X11 window id.
type XcbHandle struct {
	Window uint32
}

func (h XcbHandle) Platform() Platform    { return PlatformXcb }
func (h XcbHandle) NativeHandle() uintptr { return uintptr(h.Window) }

// TerminalHandle wraps the file descriptor of a terminal the editor draws
// into. Used by the development host.
type TerminalHandle struct {
	FD uintptr
}

func (h TerminalHandle) Platform() Platform    { return PlatformTerminal }
func (h TerminalHandle) NativeHandle() uintptr { return h.FD }

// HandleFor wraps the parent pointer a host passes for the given GOOS.
func HandleFor(goos string, ptr uintptr) (WindowHandle, error) {
	if ptr == 0 {
		return nil, fmt.Errorf("%w: null parent on %s", ErrInvalidHandle, goos)
	}

	switch goos {
	case "darwin", "ios":
		return MacOSHandle{NSView: ptr}, nil
	case "windows":
		return WindowsHandle{HWND: ptr}, nil
	case "linux", "freebsd", "netbsd", "openbsd", "dragonfly":
		if uint64(ptr) > math.MaxUint32 {
			return nil, fmt.Errorf("%w: xcb window id %#x overflows 32 bits", ErrInvalidHandle, ptr)
		}
		return XcbHandle{Window: uint32(ptr)}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}

// NativeParent is HandleFor on the running platform.
func NativeParent(ptr uintptr) (WindowHandle, error) {
	return HandleFor(runtime.GOOS, ptr)
}
