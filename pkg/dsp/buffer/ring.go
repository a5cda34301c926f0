// Package buffer provides a lock-free ring for moving interleaved audio
// from a render goroutine to an audio device callback.
package buffer

import (
	"errors"
	"math"
	"sync/atomic"
	"time"
)

// ErrOverrun is returned by Write when the ring cannot take the whole
// block.
var ErrOverrun = errors.New("buffer overrun: not enough space available")

// Ring is a single-producer single-consumer circular buffer of interleaved
// samples. It starts with a configurable amount of silence queued so the
// reader has headroom to absorb scheduling and GC pauses of the writer.
type Ring struct {
	data     []float32
	readPos  atomic.Uint64
	writePos atomic.Uint64
	size     uint64
	mask     uint64

	preroll    uint64
	sampleRate float64
	channels   int

	underruns atomic.Uint64
	overruns  atomic.Uint64
}

// Stats reports ring health for monitoring.
type Stats struct {
	Underruns      uint64
	Overruns       uint64
	FillPercentage float32
	CurrentLatency time.Duration
}

// NewRing creates a ring for the given stream format holding latency worth
// of silence up front. Capacity is four times the latency, rounded up to a
// power of two.
func NewRing(sampleRate float64, channels int, latency time.Duration) *Ring {
	if channels < 1 {
		channels = 1
	}
	frames := uint64(math.Round(latency.Seconds() * sampleRate))
	preroll := frames * uint64(channels)
	size := nextPowerOf2(max(preroll*4, uint64(channels)*64))

	r := &Ring{
		data:       make([]float32, size),
		size:       size,
		mask:       size - 1,
		preroll:    preroll,
		sampleRate: sampleRate,
		channels:   channels,
	}
	r.writePos.Store(preroll)
	return r
}

// Channels returns the interleaving width.
func (r *Ring) Channels() int {
	return r.channels
}

// Free returns how many samples Write can currently accept.
func (r *Ring) Free() int {
	return int(r.size - r.buffered())
}

// Buffered returns how many samples Read can currently return.
func (r *Ring) Buffered() int {
	return int(r.buffered())
}

// Write queues samples. It either takes the whole slice or, when there is
// not enough room, nothing and returns ErrOverrun. Only one goroutine may
// write.
func (r *Ring) Write(samples []float32) error {
	if len(samples) == 0 {
		return nil
	}

	writePos := r.writePos.Load()
	if r.size-(writePos-r.readPos.Load()) < uint64(len(samples)) {
		r.overruns.Add(1)
		return ErrOverrun
	}

	for len(samples) > 0 {
		idx := writePos & r.mask
		n := copy(r.data[idx:], samples)
		samples = samples[n:]
		writePos += uint64(n)
	}

	r.writePos.Store(writePos)
	return nil
}

// Read fills output with queued samples and zeros the rest, counting an
// underrun when the ring ran dry. It returns the number of real samples.
// Only one goroutine may read.
func (r *Ring) Read(output []float32) int {
	if len(output) == 0 {
		return 0
	}

	readPos := r.readPos.Load()
	available := r.writePos.Load() - readPos

	toRead := uint64(len(output))
	if available < toRead {
		toRead = available
		r.underruns.Add(1)
	}

	dst := output[:toRead]
	for len(dst) > 0 {
		idx := readPos & r.mask
		end := min(idx+uint64(len(dst)), r.size)
		n := copy(dst, r.data[idx:end])
		dst = dst[n:]
		readPos += uint64(n)
	}
	r.readPos.Store(readPos)

	clear(output[toRead:])
	return int(toRead)
}

// Stats returns current ring statistics.
func (r *Ring) Stats() Stats {
	buffered := r.buffered()
	frames := float64(buffered) / float64(r.channels)

	return Stats{
		Underruns:      r.underruns.Load(),
		Overruns:       r.overruns.Load(),
		FillPercentage: float32(buffered) / float32(r.size) * 100,
		CurrentLatency: time.Duration(frames / r.sampleRate * float64(time.Second)),
	}
}

// Reset drops queued audio and restores the initial silence. It must not
// run concurrently with Read or Write.
func (r *Ring) Reset() {
	clear(r.data)
	r.readPos.Store(0)
	r.writePos.Store(r.preroll)
	r.underruns.Store(0)
	r.overruns.Store(0)
}

func (r *Ring) buffered() uint64 {
	return r.writePos.Load() - r.readPos.Load()
}

// nextPowerOf2 rounds up to the next power of 2
func nextPowerOf2(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	n++
	return n
}
