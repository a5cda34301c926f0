package main

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/google/uuid"

	"github.com/justyntemme/gainplug/internal/cli"
	"github.com/justyntemme/gainplug/pkg/gainplug"
	"github.com/justyntemme/gainplug/pkg/plugin"
)

// InfoCmd lists what a host would see when scanning the plugin.
type InfoCmd struct{}

func (c *InfoCmd) Run(g *Globals) error {
	comp, err := g.open(g.SampleRate)
	if err != nil {
		return err
	}
	defer comp.Terminate()

	info := comp.Info()
	cli.PrintTitle(info.Name)
	cli.PrintKV("ID", info.ID)
	cli.PrintKV("Class ID", uuid.UUID(info.UID()).String())
	if id, err := info.UniqueID(); err == nil {
		cli.PrintKV("Unique ID", fmt.Sprintf("%08x (%s)", id, info.FourCC))
	}
	cli.PrintKV("Vendor", plugin.GetFactoryInfo().Vendor)
	cli.PrintKV("Version", info.Version)
	cli.PrintKV("Category", info.Category)
	cli.PrintKV("Latency", fmt.Sprintf("%d samples", comp.GetLatencySamples()))
	cli.PrintKV("Editor", editorSize(comp))

	fmt.Fprintln(cli.Out)
	cli.PrintTitle("Parameters")
	for i := int32(0); i < comp.GetParameterCount(); i++ {
		p, err := comp.GetParameterInfo(i)
		if err != nil {
			return err
		}
		def, err := comp.GetParamStringByValue(p.ID, p.DefaultValue)
		if err != nil {
			return err
		}
		cur, err := comp.GetParamStringByValue(p.ID, comp.GetParamNormalized(p.ID))
		if err != nil {
			return err
		}
		cli.PrintKV(p.Title, fmt.Sprintf("%s (default %s, range %.0f..%.0f)",
			cur, def,
			comp.NormalizedParamToPlain(p.ID, 0), comp.NormalizedParamToPlain(p.ID, 1)))
	}

	fmt.Fprintln(cli.Out)
	cli.PrintTitle("CPU")
	features := cpu.DetectFeatures()
	cli.PrintKV("Architecture", features.Architecture)
	cli.PrintKV("SIMD", bestSIMD(features))
	return nil
}

func editorSize(comp *plugin.Component) string {
	size, ok := comp.EditorSize()
	if !ok {
		return "none"
	}
	return fmt.Sprintf("%q %dx%d", gainplug.WindowTitle, size.Width, size.Height)
}

// bestSIMD names the widest vector level the 64-bit kernels can use.
func bestSIMD(f cpu.Features) cpu.SIMDLevel {
	for _, level := range []cpu.SIMDLevel{cpu.SIMDAVX512, cpu.SIMDAVX2, cpu.SIMDAVX, cpu.SIMDSSE2, cpu.SIMDNEON} {
		if cpu.Supports(f, level) {
			return level
		}
	}
	return cpu.SIMDNone
}
