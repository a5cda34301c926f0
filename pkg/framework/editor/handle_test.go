package editor

import (
	"errors"
	"runtime"
	"testing"
)

func TestHandleFor(t *testing.T) {
	tests := []struct {
		goos     string
		ptr      uintptr
		platform Platform
	}{
		{"darwin", 0x7f00, PlatformMacOS},
		{"windows", 0x1234, PlatformWindows},
		{"linux", 0x3a00007, PlatformXcb},
		{"freebsd", 42, PlatformXcb},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			h, err := HandleFor(tt.goos, tt.ptr)
			if err != nil {
				t.Fatalf("HandleFor() error = %v", err)
			}
			if h.Platform() != tt.platform {
				t.Errorf("Platform() = %v, want %v", h.Platform(), tt.platform)
			}
			if h.NativeHandle() != tt.ptr {
				t.Errorf("NativeHandle() = %#x, want %#x", h.NativeHandle(), tt.ptr)
			}
		})
	}
}

func TestHandleForErrors(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		ptr     uintptr
		wantErr error
	}{
		{"Null parent", "linux", 0, ErrInvalidHandle},
		{"Unknown platform", "plan9", 1, ErrUnsupportedPlatform},
		{"Wasm", "js", 1, ErrUnsupportedPlatform},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := HandleFor(tt.goos, tt.ptr); !errors.Is(err, tt.wantErr) {
				t.Errorf("HandleFor() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHandleForXcbOverflow(t *testing.T) {
	if ^uintptr(0) <= 0xFFFFFFFF {
		t.Skip("32-bit uintptr cannot overflow an xcb window id")
	}
	shift := 40
	big := uintptr(1) << shift
	if _, err := HandleFor("linux", big); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("HandleFor() error = %v, want ErrInvalidHandle", err)
	}
}

func TestNativeParent(t *testing.T) {
	h, err := NativeParent(1)
	switch runtime.GOOS {
	case "darwin", "ios", "windows", "linux", "freebsd", "netbsd", "openbsd", "dragonfly":
		if err != nil || h == nil {
			t.Errorf("NativeParent() = %v, %v", h, err)
		}
	default:
		if !errors.Is(err, ErrUnsupportedPlatform) {
			t.Errorf("NativeParent() error = %v", err)
		}
	}
}

func TestPlatformString(t *testing.T) {
	if PlatformXcb.String() != "xcb" || Platform(9).String() != "platform(9)" {
		t.Error("unexpected platform names")
	}
}
