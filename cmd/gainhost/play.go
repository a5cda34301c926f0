package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/justyntemme/gainplug/internal/audio"
	"github.com/justyntemme/gainplug/internal/cli"
	"github.com/justyntemme/gainplug/internal/ui"
	"github.com/justyntemme/gainplug/pkg/dsp/buffer"
	"github.com/justyntemme/gainplug/pkg/framework/debug"
	"github.com/justyntemme/gainplug/pkg/framework/editor"
	"github.com/justyntemme/gainplug/pkg/plugin"
)

const idleInterval = 30 * time.Millisecond

// PlayCmd loops a clip through the plugin to the default audio device.
type PlayCmd struct {
	File     string        `arg:"" optional:"" type:"existingfile" help:"WAV file to loop; a 440 Hz sine when omitted"`
	Latency  time.Duration `help:"Audio device buffer size" default:"40ms"`
	Duration time.Duration `help:"Stop after this long; 0 plays until interrupted" default:"0s"`
	Headless bool          `help:"Play without the editor"`
}

func (c *PlayCmd) Run(g *Globals) error {
	src, err := c.source(g.SampleRate)
	if err != nil {
		return err
	}
	looper, err := audio.NewLooper(src)
	if err != nil {
		return err
	}

	comp, err := g.open(src.SampleRate)
	if err != nil {
		return err
	}
	defer comp.Terminate()

	rate := float64(src.SampleRate)
	ring := buffer.NewRing(rate, 2, 4*c.Latency)
	meter := debug.NewLoadMeter(rate)
	streamer := audio.NewStreamer(comp, looper, ring, rate, g.BlockSize, meter)

	player, err := audio.NewPlayer(src.SampleRate, ring, c.Latency)
	if err != nil {
		return err
	}
	defer player.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if c.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Duration)
		defer cancel()
	}

	streamed := make(chan error, 1)
	go func() { streamed <- streamer.Run(ctx) }()
	player.Start()

	if c.Headless || !term.IsTerminal(int(os.Stdin.Fd())) {
		debug.Info("playing headless")
		cli.PrintKV("Playing", c.describe(src))
		cli.PrintKV("Stop", "ctrl+c")
	} else {
		toolkit := &ui.Toolkit{
			Status: meter.String,
			OnExit: func(error) { stop() },
		}
		if err := comp.OpenEditor(editor.TerminalHandle{FD: os.Stdin.Fd()}, toolkit); err != nil {
			// Audio keeps running without a window.
			cli.PrintResult(false, fmt.Sprintf("editor unavailable: %v", err))
		} else {
			go idle(ctx, comp)
		}
	}

	<-ctx.Done()
	if err := comp.CloseEditor(); err != nil {
		debug.Warn("close editor: %v", err)
	}
	if err := <-streamed; err != nil {
		return err
	}

	debug.Info("playback stopped: %s", meter)
	cli.PrintKV("Processing", meter.String())
	if n := streamer.Failures(); n > 0 {
		cli.PrintResult(false, fmt.Sprintf("%d blocks failed and were replaced with silence", n))
	}
	return nil
}

// idle drives the component's UI-thread work while the editor is open.
func idle(ctx context.Context, comp *plugin.Component) {
	ticker := time.NewTicker(idleInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			comp.Idle()
		}
	}
}

func (c *PlayCmd) source(sampleRate int) (*audio.Clip, error) {
	if c.File != "" {
		return audio.ReadFile(c.File)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	return audio.Sine(sampleRate, sampleRate, 440, 0.25), nil
}

func (c *PlayCmd) describe(src *audio.Clip) string {
	name := "440 Hz sine"
	if c.File != "" {
		name = c.File
	}
	return fmt.Sprintf("%s, %d Hz, %.2fs loop", name, src.SampleRate,
		float64(src.Frames())/float64(src.SampleRate))
}
