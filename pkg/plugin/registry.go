package plugin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/justyntemme/gainplug/pkg/framework/debug"
)

var (
	// ErrNoPlugin is returned when no plugin has been registered.
	ErrNoPlugin = errors.New("no plugin registered")
	// ErrUnknownClass is returned for class IDs the factory does not make.
	ErrUnknownClass = errors.New("unknown class id")
)

// FactoryInfo describes the vendor behind the plugin factory.
type FactoryInfo struct {
	Vendor string
	URL    string
	Email  string
}

// ClassInfo describes one class the factory can instantiate.
type ClassInfo struct {
	CID      [16]byte
	Category string
	Name     string
}

const audioModuleClass = "Audio Module Class"

var (
	// Live instances indexed by ID
	components   = make(map[uintptr]*Component)
	componentsMu sync.RWMutex
	nextID       uintptr = 1

	registryMu        sync.RWMutex
	globalPlugin      Plugin
	globalFactoryInfo = FactoryInfo{
		Vendor: "DGriffin",
	}
	globalLogger = debug.Default()
)

// Register sets the plugin the factory instantiates.
func Register(p Plugin) {
	registryMu.Lock()
	defer registryMu.Unlock()
	globalPlugin = p
}

// Registered returns the registered plugin, or nil.
func Registered() Plugin {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return globalPlugin
}

// SetFactoryInfo sets the factory information
func SetFactoryInfo(info FactoryInfo) {
	registryMu.Lock()
	defer registryMu.Unlock()
	globalFactoryInfo = info
}

// GetFactoryInfo returns the factory information.
func GetFactoryInfo() FactoryInfo {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return globalFactoryInfo
}

// SetLogger sets the logger used by instances created afterwards. nil
// restores the default logger.
func SetLogger(l *debug.Logger) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if l == nil {
		l = debug.Default()
	}
	globalLogger = l
}

// CountClasses returns how many classes the factory exposes.
func CountClasses() int32 {
	if Registered() == nil {
		return 0
	}
	return 1
}

// GetClassInfo describes the class at index.
func GetClassInfo(index int32) (ClassInfo, error) {
	p := Registered()
	if p == nil {
		return ClassInfo{}, ErrNoPlugin
	}
	if index != 0 {
		return ClassInfo{}, fmt.Errorf("class index %d: %w", index, ErrUnknownClass)
	}

	info := p.GetInfo()
	return ClassInfo{
		CID:      info.UID(),
		Category: audioModuleClass,
		Name:     info.Name,
	}, nil
}

// CreateInstance creates a component for the class cid. The instance stays
// registered until Terminate.
func CreateInstance(cid [16]byte) (*Component, error) {
	registryMu.RLock()
	p := globalPlugin
	logger := globalLogger
	registryMu.RUnlock()

	if p == nil {
		return nil, ErrNoPlugin
	}

	info := p.GetInfo()
	if err := info.ValidateUID(); err != nil {
		return nil, err
	}
	if cid != info.UID() {
		return nil, ErrUnknownClass
	}

	processor := p.CreateProcessor()
	if processor == nil {
		return nil, fmt.Errorf("%s: no processor", info.Name)
	}

	c := newComponent(info, processor, logger)
	registerComponent(c)
	return c, nil
}

// Lookup returns the live instance with the given ID, or nil.
func Lookup(id uintptr) *Component {
	componentsMu.RLock()
	defer componentsMu.RUnlock()

	if id == 0 {
		return nil
	}
	return components[id]
}

// Instances returns the number of live instances.
func Instances() int {
	componentsMu.RLock()
	defer componentsMu.RUnlock()
	return len(components)
}

// registerComponent registers a component and assigns its ID
func registerComponent(c *Component) uintptr {
	componentsMu.Lock()
	defer componentsMu.Unlock()
	id := nextID
	nextID++
	c.id = id
	components[id] = c
	return id
}

// unregisterComponent removes a component by ID
func unregisterComponent(id uintptr) {
	componentsMu.Lock()
	defer componentsMu.Unlock()
	delete(components, id)
}
