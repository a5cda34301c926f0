package main

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/cwbudde/algo-vecmath/cpu"

	"github.com/justyntemme/gainplug/internal/audio"
	"github.com/justyntemme/gainplug/internal/cli"
	"github.com/justyntemme/gainplug/pkg/dsp/gain"
	"github.com/justyntemme/gainplug/pkg/framework/debug"
	"github.com/justyntemme/gainplug/pkg/plugin"
)

func discardOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := cli.Out
	cli.Out = &buf
	t.Cleanup(func() { cli.Out = prev })
	return &buf
}

func TestOpenAppliesGainBeforeFirstBlock(t *testing.T) {
	g := &Globals{SampleRate: 48000, BlockSize: 64, Smoothing: 5 * time.Millisecond, GainDB: -6}
	comp, err := g.open(g.SampleRate)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer comp.Terminate()

	if !comp.IsActive() {
		t.Fatal("component should be active")
	}

	clip := audio.NewClip(48000, 64)
	for ch := range clip.Channels {
		for i := range clip.Channels[ch] {
			clip.Channels[ch][i] = 1
		}
	}
	out, err := audio.Render(comp, clip, 64, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := gain.DbToLinear(-6)
	for ch := range out.Channels {
		if got := float64(out.Channels[ch][0]); math.Abs(got-want) > 1e-5 {
			t.Errorf("channel %d first sample = %f, want %f", ch, got, want)
		}
	}
}

func TestOpenRejectsInvalidSetup(t *testing.T) {
	tests := []struct {
		name       string
		g          Globals
		sampleRate int
	}{
		{"Zero block size", Globals{BlockSize: 0}, 48000},
		{"Zero sample rate", Globals{BlockSize: 64}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if comp, err := tt.g.open(tt.sampleRate); err == nil {
				comp.Terminate()
				t.Error("expected an error")
			}
		})
	}
}

func TestMeasure(t *testing.T) {
	discardOutput(t)

	for _, db := range []float64{0, -6, -40, -90, 3} {
		g := &Globals{SampleRate: 48000, BlockSize: 512, GainDB: db}
		cmd := &MeasureCmd{Frequency: 1000, Frames: 16384, Tolerance: 0.1}
		if err := cmd.Run(g); err != nil {
			t.Errorf("measure at %.0f dB: %v", db, err)
		}
	}

	t.Run("ClampedRequest", func(t *testing.T) {
		g := &Globals{SampleRate: 48000, BlockSize: 256, GainDB: 12}
		cmd := &MeasureCmd{Frequency: 1000, Frames: 8192, Tolerance: 0.1}
		if err := cmd.Run(g); err != nil {
			t.Errorf("measure: %v", err)
		}
	})

	t.Run("ImpossibleTolerance", func(t *testing.T) {
		g := &Globals{SampleRate: 48000, BlockSize: 512, GainDB: -6}
		cmd := &MeasureCmd{Frequency: 1000, Frames: 8192, Tolerance: -1}
		if err := cmd.Run(g); err == nil {
			t.Error("expected a tolerance error")
		}
	})
}

func TestRenderCommand(t *testing.T) {
	discardOutput(t)
	dir := t.TempDir()
	in := dir + "/in.wav"
	out := dir + "/out.wav"

	if err := audio.WriteFile(in, audio.Sine(44100, 4410, 440, 0.5)); err != nil {
		t.Fatalf("write input: %v", err)
	}

	g := &Globals{SampleRate: 48000, BlockSize: 128, GainDB: -90}
	if err := (&RenderCmd{Input: in, Output: out}).Run(g); err != nil {
		t.Fatalf("render: %v", err)
	}

	clip, err := audio.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if clip.SampleRate != 44100 {
		t.Errorf("sample rate = %d, want the input's 44100", clip.SampleRate)
	}
	if clip.Frames() != 4410 {
		t.Errorf("frames = %d, want 4410", clip.Frames())
	}
	for ch := range clip.Channels {
		for i, v := range clip.Channels[ch] {
			// -90 dB of a half-scale sine is below one 16-bit step.
			if math.Abs(float64(v)) > 2.0/32768 {
				t.Fatalf("channel %d sample %d = %f, want silence", ch, i, v)
			}
		}
	}
}

func TestInfoCommand(t *testing.T) {
	buf := discardOutput(t)
	g := &Globals{SampleRate: 48000, BlockSize: 512}
	if err := (&InfoCmd{}).Run(g); err != nil {
		t.Fatalf("info: %v", err)
	}
	text := buf.String()
	for _, want := range []string{"imgui-baseplug gain", "com.dgriffin.imgui-baseplug-gain", "74526245", "0.0 dB (default 0.0 dB, range -90..3)"} {
		if !strings.Contains(text, want) {
			t.Errorf("info output missing %q", want)
		}
	}
	if strings.Contains(text, "dB Decibels") {
		t.Error("info output repeats the unit after the formatted value")
	}
}

func TestBestSIMD(t *testing.T) {
	tests := []struct {
		name     string
		features cpu.Features
		want     cpu.SIMDLevel
	}{
		{"Forced generic", cpu.Features{HasAVX2: true, ForceGeneric: true}, cpu.SIMDNone},
		{"Nothing", cpu.Features{}, cpu.SIMDNone},
		{"AVX2", cpu.Features{HasSSE2: true, HasAVX: true, HasAVX2: true}, cpu.SIMDAVX2},
		{"NEON", cpu.Features{HasNEON: true}, cpu.SIMDNEON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bestSIMD(tt.features); got != tt.want {
				t.Errorf("bestSIMD = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSetupLogging(t *testing.T) {
	t.Cleanup(func() {
		debug.SetLevel(debug.LogLevelInfo)
		plugin.SetLogger(nil)
	})

	path := t.TempDir() + "/gainhost.log"
	g := &Globals{LogFile: path, LogLevel: "warn"}
	restore, err := g.setupLogging()
	if err != nil {
		t.Fatalf("setupLogging: %v", err)
	}
	if err := restore(); err != nil {
		t.Errorf("restore: %v", err)
	}

	if _, err := (&Globals{LogFile: "-", LogLevel: "loud"}).setupLogging(); err == nil {
		t.Error("expected an error for an unknown level")
	}
}
