// Package state saves and restores plugin parameters for the host.
package state

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/justyntemme/gainplug/pkg/framework/param"
)

// Magic opens every saved state.
const Magic = "GAINPL"

// Version is the newest state version this package writes and reads.
const Version uint32 = 1

// maxExtraParams is how many parameters a state may carry beyond the ones
// registered, for states saved by newer builds.
const maxExtraParams = 256

// ErrInvalidFormat is returned for data that is not a saved state.
var ErrInvalidFormat = errors.New("invalid state format")

// Manager handles plugin state saving and loading
type Manager struct {
	version    uint32
	registry   *param.Registry
	customSave CustomSaveFunc
	customLoad CustomLoadFunc
}

// CustomSaveFunc allows plugins to save additional state beyond parameters
type CustomSaveFunc func(w io.Writer) error

// CustomLoadFunc reads what the matching CustomSaveFunc wrote.
type CustomLoadFunc func(r io.Reader) error

// NewManager creates a new state manager
func NewManager(registry *param.Registry) *Manager {
	return &Manager{
		version:  Version,
		registry: registry,
	}
}

// SetCustomState sets functions for saving and loading custom state
func (m *Manager) SetCustomState(save CustomSaveFunc, load CustomLoadFunc) {
	m.customSave = save
	m.customLoad = load
}

// Save writes the plugin state to a writer
func (m *Manager) Save(w io.Writer) error {
	if _, err := io.WriteString(w, Magic); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if err := binary.Write(w, binary.LittleEndian, m.version); err != nil {
		return fmt.Errorf("write version: %w", err)
	}

	if err := binary.Write(w, binary.LittleEndian, m.registry.Count()); err != nil {
		return fmt.Errorf("write parameter count: %w", err)
	}

	for _, p := range m.registry.All() {
		if err := binary.Write(w, binary.LittleEndian, uint32(p.ID)); err != nil {
			return fmt.Errorf("write parameter %d: %w", p.ID, err)
		}
		if err := binary.Write(w, binary.LittleEndian, p.GetValue()); err != nil {
			return fmt.Errorf("write parameter %d: %w", p.ID, err)
		}
	}

	if m.customSave == nil {
		return binary.Write(w, binary.LittleEndian, uint32(0))
	}

	// Mark that custom data follows
	if err := binary.Write(w, binary.LittleEndian, uint32(1)); err != nil {
		return err
	}
	if err := m.customSave(w); err != nil {
		return fmt.Errorf("write custom state: %w", err)
	}
	return nil
}

// Load reads the plugin state from a reader. Unknown parameter IDs are
// skipped. Values are only applied once the whole parameter table has been
// read, so a truncated state leaves the registry untouched.
func (m *Manager) Load(r io.Reader) error {
	header := make([]byte, len(Magic))
	if _, err := io.ReadFull(r, header); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if string(header) != Magic {
		return fmt.Errorf("%w: bad magic %q", ErrInvalidFormat, header)
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return fmt.Errorf("%w: read version: %v", ErrInvalidFormat, err)
	}
	if version > m.version {
		return fmt.Errorf("state version %d is newer than supported version %d", version, m.version)
	}

	var paramCount int32
	if err := binary.Read(r, binary.LittleEndian, &paramCount); err != nil {
		return fmt.Errorf("%w: read parameter count: %v", ErrInvalidFormat, err)
	}
	if paramCount < 0 {
		return fmt.Errorf("%w: negative parameter count %d", ErrInvalidFormat, paramCount)
	}

	if paramCount > m.registry.Count()+maxExtraParams {
		return fmt.Errorf("%w: parameter count %d exceeds %d", ErrInvalidFormat,
			paramCount, m.registry.Count()+maxExtraParams)
	}

	type entry struct {
		ID    uint32
		Value float64
	}
	entries := make([]entry, 0, min(paramCount, m.registry.Count()))
	for i := int32(0); i < paramCount; i++ {
		var e entry
		if err := binary.Read(r, binary.LittleEndian, &e); err != nil {
			return fmt.Errorf("%w: read parameter %d: %v", ErrInvalidFormat, i, err)
		}
		if m.registry.Get(param.ID(e.ID)) != nil {
			entries = append(entries, e)
		}
	}

	for _, e := range entries {
		if p := m.registry.Get(param.ID(e.ID)); p != nil {
			p.SetValue(e.Value)
		}
	}

	var hasCustom uint32
	if err := binary.Read(r, binary.LittleEndian, &hasCustom); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: read custom flag: %v", ErrInvalidFormat, err)
	}

	if hasCustom != 0 && m.customLoad != nil {
		if err := m.customLoad(r); err != nil {
			return fmt.Errorf("read custom state: %w", err)
		}
	}

	return nil
}
