package main

import (
	"fmt"

	"github.com/justyntemme/gainplug/internal/audio"
	"github.com/justyntemme/gainplug/internal/cli"
	"github.com/justyntemme/gainplug/pkg/framework/debug"
)

// RenderCmd processes a WAV file offline.
type RenderCmd struct {
	Input  string `arg:"" type:"existingfile" help:"WAV file to process"`
	Output string `arg:"" type:"path" help:"Where to write the 16-bit stereo result"`
}

func (c *RenderCmd) Run(g *Globals) error {
	clip, err := audio.ReadFile(c.Input)
	if err != nil {
		return err
	}

	// The file's own rate wins over --sample-rate.
	comp, err := g.open(clip.SampleRate)
	if err != nil {
		return err
	}
	defer comp.Terminate()

	meter := debug.NewLoadMeter(float64(clip.SampleRate))
	out, err := audio.Render(comp, clip, g.BlockSize, meter)
	if err != nil {
		return err
	}
	if err := audio.WriteFile(c.Output, out); err != nil {
		return err
	}

	debug.Info("rendered %s to %s: %s", c.Input, c.Output, meter)
	cli.PrintTitle("Render")
	cli.PrintKV("Input", c.Input)
	cli.PrintKV("Output", c.Output)
	cli.PrintKV("Gain", fmt.Sprintf("%.2f dB", g.GainDB))
	cli.PrintKV("Frames", out.Frames())
	cli.PrintKV("Processing", meter.String())
	for ch, name := range []string{"Left", "Right"} {
		debug.LogBufferStats(out.Channels[ch], name)
		r := debug.AnalyzeBuffer(out.Channels[ch])
		cli.PrintKV(name, fmt.Sprintf("peak %.1f dBFS, rms %.1f dBFS", r.PeakDB(), r.RMSDB()))
		if r.Clipping {
			cli.PrintResult(false, fmt.Sprintf("%s clipped on %d samples", name, r.ClippedSamples))
		}
	}
	return nil
}
