package main

import (
	"fmt"
	"math"

	"github.com/justyntemme/gainplug/internal/audio"
	"github.com/justyntemme/gainplug/internal/cli"
	"github.com/justyntemme/gainplug/pkg/dsp/gain"
	"github.com/justyntemme/gainplug/pkg/framework/debug"
	"github.com/justyntemme/gainplug/pkg/gainplug"
)

// MeasureCmd renders a sine and compares the spectral gain with the
// requested one.
type MeasureCmd struct {
	Frequency float64 `help:"Test tone frequency in Hz" default:"1000"`
	Frames    int     `help:"Test signal length" default:"16384"`
	Tolerance float64 `help:"Allowed error in dB" default:"0.1"`
}

func (c *MeasureCmd) Run(g *Globals) error {
	comp, err := g.open(g.SampleRate)
	if err != nil {
		return err
	}
	defer comp.Terminate()

	in := audio.Sine(g.SampleRate, c.Frames, c.Frequency, 0.5)
	out, err := audio.Render(comp, in, g.BlockSize, nil)
	if err != nil {
		return err
	}

	want := gain.LinearToDb(gainplug.CoefficientFor(g.GainDB))
	cli.PrintTitle("Measure")
	cli.PrintKV("Requested", fmt.Sprintf("%.2f dB", g.GainDB))
	cli.PrintKV("Expected", fmt.Sprintf("%.2f dB", want))

	failed := 0
	for ch, name := range []string{"Left", "Right"} {
		m, err := debug.MeasureGain(in.Channels[ch], out.Channels[ch], float64(g.SampleRate))
		if err != nil {
			return err
		}
		diff := math.Abs(m.GainDB() - want)
		ok := diff <= c.Tolerance
		if !ok {
			failed++
		}
		debug.Info("%s: %.3f dB at %.1f Hz (error %.3f dB)", name, m.GainDB(), m.Frequency, diff)
		cli.PrintResult(ok, fmt.Sprintf("%s %.3f dB at %.1f Hz", name, m.GainDB(), m.Frequency))
	}
	if failed > 0 {
		return fmt.Errorf("measured gain off by more than %.2f dB on %d channels", c.Tolerance, failed)
	}
	return nil
}
