package audio

import (
	"context"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/justyntemme/gainplug/pkg/dsp/buffer"
	"github.com/justyntemme/gainplug/pkg/framework/debug"
	"github.com/justyntemme/gainplug/pkg/framework/process"
)

// scaler multiplies by a constant and records block sizes.
type scaler struct {
	gain   float32
	blocks []int
	fail   bool
}

func (s *scaler) Process(input, output [][]float32, _ []process.ParameterChange) error {
	s.blocks = append(s.blocks, len(input[0]))
	if s.fail {
		return errors.New("rejected")
	}
	for ch := range output {
		for i := range output[ch] {
			output[ch][i] = input[ch][i] * s.gain
		}
	}
	return nil
}

func ramp(frames int) *Clip {
	c := NewClip(48000, frames)
	for i := 0; i < frames; i++ {
		c.Channels[0][i] = float32(i)
		c.Channels[1][i] = -float32(i)
	}
	return c
}

func TestLooper(t *testing.T) {
	l, err := NewLooper(ramp(5))
	if err != nil {
		t.Fatal(err)
	}
	block := [][]float32{make([]float32, 7), make([]float32, 7)}
	l.Fill(block)
	want := []float32{0, 1, 2, 3, 4, 0, 1}
	for i := range want {
		if block[0][i] != want[i] || block[1][i] != -want[i] {
			t.Fatalf("block = %v, want %v", block, want)
		}
	}
	l.Fill(block)
	if block[0][0] != 2 {
		t.Errorf("second block starts at %f, want 2", block[0][0])
	}

	if _, err := NewLooper(NewClip(48000, 0)); !errors.Is(err, ErrEmptyClip) {
		t.Errorf("NewLooper(empty) = %v", err)
	}
}

func TestSine(t *testing.T) {
	c := Sine(48000, 480, 1000, 0.5)
	if c.Frames() != 480 || c.SampleRate != 48000 {
		t.Fatalf("clip = %d frames at %d Hz", c.Frames(), c.SampleRate)
	}
	r := debug.NewAudioAnalyzer().Analyze(c.Channels[0])
	if math.Abs(float64(r.Peak)-0.5) > 1e-3 {
		t.Errorf("peak = %f, want 0.5", r.Peak)
	}
	if c.Channels[0][12] != c.Channels[1][12] {
		t.Error("channels differ")
	}
}

func TestWAVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	src := Sine(44100, 1000, 441, 0.5)
	src.Channels[1][3] = 2 // clipped on write

	if err := WriteFile(path, src); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got.SampleRate != 44100 || got.Frames() != 1000 {
		t.Fatalf("read %d frames at %d Hz", got.Frames(), got.SampleRate)
	}

	diff, idx := debug.CompareBuffers(src.Channels[0], got.Channels[0])
	if diff > 1.0/16384 {
		t.Errorf("left differs by %g at %d", diff, idx)
	}
	if math.Abs(float64(got.Channels[1][3])-1) > 1e-3 {
		t.Errorf("clipped sample = %f, want ~1", got.Channels[1][3])
	}
}

func writeMonoWAV(t *testing.T, depth int, data []int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mono.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	enc := wav.NewEncoder(f, 22050, depth, 1, 1)
	buf := &goaudio.IntBuffer{
		Data:   data,
		Format: &goaudio.Format{SampleRate: 22050, NumChannels: 1},
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDecodeMono(t *testing.T) {
	path := writeMonoWAV(t, 16, []int{0, 16384, -16384, 32767})

	clip, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	want := []float32{0, 0.5, -0.5, 1}
	for i, w := range want {
		for ch := 0; ch < 2; ch++ {
			if math.Abs(float64(clip.Channels[ch][i]-w)) > 1e-4 {
				t.Errorf("ch%d[%d] = %f, want %f", ch, i, clip.Channels[ch][i], w)
			}
		}
	}
}

func TestDecode8Bit(t *testing.T) {
	path := writeMonoWAV(t, 8, []int{128, 192, 64, 0, 255})

	clip, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	want := []float32{0, 0.5, -0.5, -1, 127.0 / 128}
	for i, w := range want {
		if got := clip.Channels[0][i]; got != w {
			t.Errorf("sample %d = %f, want %f", i, got, w)
		}
	}
}

func TestPCMScale(t *testing.T) {
	for _, depth := range []int{8, 16, 24, 32} {
		if _, scale, err := pcmScale(depth); err != nil || scale <= 0 || math.IsInf(float64(scale), 0) {
			t.Errorf("pcmScale(%d) = %f, %v", depth, scale, err)
		}
	}
	for _, depth := range []int{0, 4, 12, 64} {
		if _, _, err := pcmScale(depth); !errors.Is(err, ErrInvalidWAV) {
			t.Errorf("pcmScale(%d) error = %v, want ErrInvalidWAV", depth, err)
		}
	}
}

func TestReadFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	if err := os.WriteFile(path, []byte("definitely not riff data"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(path); err == nil {
		t.Error("ReadFile accepted garbage")
	}
	if err := WriteFile(filepath.Join(t.TempDir(), "empty.wav"), NewClip(48000, 0)); !errors.Is(err, ErrEmptyClip) {
		t.Errorf("WriteFile(empty) = %v", err)
	}
}

func TestRender(t *testing.T) {
	proc := &scaler{gain: 0.5}
	meter := debug.NewLoadMeter(48000)
	out, err := Render(proc, ramp(10), 4, meter)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(proc.blocks) != 3 || proc.blocks[2] != 2 {
		t.Errorf("blocks = %v, want [4 4 2]", proc.blocks)
	}
	if out.Channels[0][9] != 4.5 || out.Channels[1][9] != -4.5 {
		t.Errorf("last frame = %f, %f", out.Channels[0][9], out.Channels[1][9])
	}
	if meter.Blocks() != 3 {
		t.Errorf("meter saw %d blocks", meter.Blocks())
	}

	if _, err := Render(&scaler{fail: true}, ramp(10), 4, nil); err == nil {
		t.Error("Render ignored a processor error")
	}
	if _, err := Render(proc, ramp(10), 0, nil); err == nil {
		t.Error("Render accepted a zero block size")
	}
}

func TestStreamer(t *testing.T) {
	t.Run("RenderBlockInterleaves", func(t *testing.T) {
		ring := buffer.NewRing(48000, 2, 0)
		src, _ := NewLooper(ramp(8))
		s := NewStreamer(&scaler{gain: 2}, src, ring, 48000, 4, nil)

		s.RenderBlock()
		got := make([]float32, 8)
		if n := ring.Read(got); n != 8 {
			t.Fatalf("ring held %d samples, want 8", n)
		}
		want := []float32{0, 0, 2, -2, 4, -4, 6, -6}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("ring = %v, want %v", got, want)
			}
		}
	})

	t.Run("FailedBlockIsSilent", func(t *testing.T) {
		ring := buffer.NewRing(48000, 2, 0)
		src, _ := NewLooper(ramp(8))
		s := NewStreamer(&scaler{fail: true}, src, ring, 48000, 4, nil)
		s.RenderBlock()
		got := make([]float32, 8)
		ring.Read(got)
		for i, v := range got {
			if v != 0 {
				t.Fatalf("sample %d = %f, want silence", i, v)
			}
		}
		if s.Failures() != 1 {
			t.Errorf("Failures() = %d", s.Failures())
		}
	})

	t.Run("RunFillsRingUntilCancelled", func(t *testing.T) {
		ring := buffer.NewRing(48000, 2, 10*time.Millisecond)
		src, _ := NewLooper(Sine(48000, 480, 100, 0.5))
		s := NewStreamer(&scaler{gain: 1}, src, ring, 48000, 64, nil)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- s.Run(ctx) }()

		deadline := time.Now().Add(2 * time.Second)
		for ring.Free() >= 128 && time.Now().Before(deadline) {
			time.Sleep(time.Millisecond)
		}
		cancel()
		if err := <-done; err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if ring.Free() >= 128 {
			t.Errorf("ring not filled: %d free", ring.Free())
		}
	})
}

func TestRingReader(t *testing.T) {
	ring := buffer.NewRing(48000, 2, 0)
	if err := ring.Write([]float32{0.25, -1}); err != nil {
		t.Fatal(err)
	}
	r := newRingReader(ring, 2)

	p := make([]byte, 16)
	n, err := r.Read(p)
	if err != nil || n != 16 {
		t.Fatalf("Read() = %d, %v", n, err)
	}
	want := []float32{0.25, -1, 0, 0}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(p[4*i:]))
		if got != w {
			t.Errorf("sample %d = %f, want %f", i, got, w)
		}
	}
	if ring.Stats().Underruns != 1 {
		t.Errorf("underruns = %d, want 1", ring.Stats().Underruns)
	}
}
