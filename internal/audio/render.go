package audio

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/justyntemme/gainplug/pkg/dsp/buffer"
	"github.com/justyntemme/gainplug/pkg/framework/debug"
	"github.com/justyntemme/gainplug/pkg/framework/process"
)

// BlockProcessor processes one stereo block, as plugin.Component does.
type BlockProcessor interface {
	Process(input, output [][]float32, changes []process.ParameterChange) error
}

// Render runs clip through proc in blocks of at most blockSize frames.
// meter may be nil.
func Render(proc BlockProcessor, clip *Clip, blockSize int, meter *debug.LoadMeter) (*Clip, error) {
	if clip.Frames() == 0 {
		return nil, ErrEmptyClip
	}
	if blockSize <= 0 {
		return nil, fmt.Errorf("render: invalid block size %d", blockSize)
	}

	out := NewClip(clip.SampleRate, clip.Frames())
	in := make([][]float32, 2)
	dst := make([][]float32, 2)

	for pos := 0; pos < clip.Frames(); pos += blockSize {
		end := min(pos+blockSize, clip.Frames())
		for ch := range in {
			in[ch] = clip.Channels[ch][pos:end]
			dst[ch] = out.Channels[ch][pos:end]
		}

		start := time.Now()
		err := proc.Process(in, dst, nil)
		if meter != nil {
			meter.Record(end-pos, time.Since(start))
		}
		if err != nil {
			return nil, fmt.Errorf("render block at frame %d: %w", pos, err)
		}
	}
	return out, nil
}

// Streamer renders a looping source through a processor into a ring that
// an audio device drains. Run is the only writer of the ring.
type Streamer struct {
	proc  BlockProcessor
	src   *Looper
	ring  *buffer.Ring
	meter *debug.LoadMeter

	in, out     [][]float32
	interleaved []float32
	blockTime   time.Duration

	failures atomic.Uint64
}

// NewStreamer prepares buffers for blocks of blockSize frames. meter may be
// nil.
func NewStreamer(proc BlockProcessor, src *Looper, ring *buffer.Ring, sampleRate float64, blockSize int, meter *debug.LoadMeter) *Streamer {
	return &Streamer{
		proc:        proc,
		src:         src,
		ring:        ring,
		meter:       meter,
		in:          [][]float32{make([]float32, blockSize), make([]float32, blockSize)},
		out:         [][]float32{make([]float32, blockSize), make([]float32, blockSize)},
		interleaved: make([]float32, 2*blockSize),
		blockTime:   time.Duration(float64(blockSize) / sampleRate * float64(time.Second)),
	}
}

// Failures returns how many blocks the processor rejected.
func (s *Streamer) Failures() uint64 {
	return s.failures.Load()
}

// Run keeps the ring filled until ctx is done.
func (s *Streamer) Run(ctx context.Context) error {
	wait := max(s.blockTime/2, time.Millisecond)
	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		for s.ring.Free() >= len(s.interleaved) {
			if err := ctx.Err(); err != nil {
				return nil
			}
			s.RenderBlock()
		}

		timer.Reset(wait)
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
	}
}

// RenderBlock renders one block into the ring. A rejected block is queued
// as silence.
func (s *Streamer) RenderBlock() {
	s.src.Fill(s.in)

	start := time.Now()
	if err := s.proc.Process(s.in, s.out, nil); err != nil {
		s.failures.Add(1)
		for ch := range s.out {
			clear(s.out[ch])
		}
	}
	if s.meter != nil {
		s.meter.Record(len(s.in[0]), time.Since(start))
	}

	left, right := s.out[0], s.out[1]
	for i := range left {
		s.interleaved[2*i] = left[i]
		s.interleaved[2*i+1] = right[i]
	}
	// Run only calls this with room for a whole block.
	_ = s.ring.Write(s.interleaved)
}
