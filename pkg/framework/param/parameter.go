package param

import (
	"fmt"
	"strconv"
)

// ID identifies a parameter. Plugins declare their IDs as typed constants
// instead of matching on names.
type ID uint32

// Parameter represents a plugin parameter
type Parameter struct {
	ID           ID
	Name         string
	ShortName    string
	Unit         string
	Min          float64
	Max          float64
	DefaultValue float64 // normalized
	StepCount    int32
	Flags        uint32
	Gradient     Gradient

	// Normalized value, shared lock-free with the audio thread
	value Cell

	formatFunc func(float64) string
	parseFunc  func(string) (float64, error)
}

// Flags for parameters
const (
	CanAutomate uint32 = 1 << 0
	IsReadOnly  uint32 = 1 << 1
	IsHidden    uint32 = 1 << 4
	IsBypass    uint32 = 1 << 16
)

// GetValue returns the current normalized value (0-1)
func (p *Parameter) GetValue() float64 {
	return p.value.Get()
}

// SetValue sets the normalized value (0-1)
func (p *Parameter) SetValue(value float64) {
	p.value.Set(clamp01(value))
}

// GetPlainValue converts normalized to plain value
func (p *Parameter) GetPlainValue() float64 {
	return p.Denormalize(p.GetValue())
}

// SetPlainValue converts plain to normalized value
func (p *Parameter) SetPlainValue(plain float64) {
	p.SetValue(p.Normalize(plain))
}

// DefaultPlain returns the default in the plain range.
func (p *Parameter) DefaultPlain() float64 {
	return p.Denormalize(p.DefaultValue)
}

// Reset restores the default value.
func (p *Parameter) Reset() {
	p.SetValue(p.DefaultValue)
}

// ClampPlain limits a plain value to [Min, Max].
func (p *Parameter) ClampPlain(plain float64) float64 {
	return Clamp(plain, p.Min, p.Max)
}

// FormatValue returns formatted parameter value
func (p *Parameter) FormatValue(normalized float64) string {
	plain := p.Denormalize(normalized)

	if p.formatFunc != nil {
		return p.formatFunc(plain)
	}

	if p.StepCount > 0 {
		return fmt.Sprintf("%.0f", plain)
	}
	return fmt.Sprintf("%.2f", plain)
}

// ParseValue parses string to normalized value
func (p *Parameter) ParseValue(str string) (float64, error) {
	parse := p.parseFunc
	if parse == nil {
		parse = func(s string) (float64, error) { return strconv.ParseFloat(s, 64) }
	}
	plain, err := parse(str)
	if err != nil {
		return 0, fmt.Errorf("parse %s value %q: %w", p.Name, str, err)
	}
	return p.Normalize(plain), nil
}

// Normalize converts plain value to normalized (0-1)
func (p *Parameter) Normalize(plain float64) float64 {
	return p.Gradient.Normalize(plain, p.Min, p.Max)
}

// Denormalize converts normalized (0-1) to plain value
func (p *Parameter) Denormalize(normalized float64) float64 {
	return p.Gradient.Unnormalize(normalized, p.Min, p.Max)
}
