package plugin

import (
	"github.com/justyntemme/gainplug/pkg/framework/param"
)

// ParameterInfo describes a parameter the way hosts list it.
type ParameterInfo struct {
	ID           param.ID
	Title        string
	ShortTitle   string
	Units        string
	StepCount    int32
	DefaultValue float64 // normalized
	Flags        uint32
}

func parameterInfo(p *param.Parameter) ParameterInfo {
	return ParameterInfo{
		ID:           p.ID,
		Title:        p.Name,
		ShortTitle:   p.ShortName,
		Units:        p.Unit,
		StepCount:    p.StepCount,
		DefaultValue: p.DefaultValue,
		Flags:        p.Flags,
	}
}
