package debug

import (
	"fmt"
	"sync/atomic"
	"time"
)

// LoadMeter tracks how much of each block's real-time budget processing
// used. Record is lock-free and may be called from the audio callback;
// readers on other goroutines see the latest totals.
type LoadMeter struct {
	sampleRate float64

	blocks  atomic.Uint64
	frames  atomic.Uint64
	busy    atomic.Int64 // nanoseconds
	worst   atomic.Int64 // nanoseconds per frame, scaled by 1e3
	overrun atomic.Uint64
}

// NewLoadMeter creates a meter for the given stream sample rate.
func NewLoadMeter(sampleRate float64) *LoadMeter {
	return &LoadMeter{sampleRate: sampleRate}
}

// Record adds one processed block of frames that took elapsed.
func (m *LoadMeter) Record(frames int, elapsed time.Duration) {
	if frames <= 0 {
		return
	}
	m.blocks.Add(1)
	m.frames.Add(uint64(frames))
	m.busy.Add(int64(elapsed))

	perFrame := int64(elapsed) * 1000 / int64(frames)
	for {
		cur := m.worst.Load()
		if perFrame <= cur || m.worst.CompareAndSwap(cur, perFrame) {
			break
		}
	}

	if elapsed > m.budget(frames) {
		m.overrun.Add(1)
	}
}

// Load returns the average share of the real-time budget used, where 1.0
// means processing took exactly as long as the audio it produced.
func (m *LoadMeter) Load() float64 {
	frames := m.frames.Load()
	if frames == 0 {
		return 0
	}
	return float64(m.busy.Load()) / float64(m.budget(int(frames)))
}

// PeakLoad returns the worst per-block load seen.
func (m *LoadMeter) PeakLoad() float64 {
	if m.sampleRate <= 0 {
		return 0
	}
	perFrame := float64(m.worst.Load()) / 1000
	return perFrame * m.sampleRate / float64(time.Second)
}

// Blocks returns the number of recorded blocks.
func (m *LoadMeter) Blocks() uint64 {
	return m.blocks.Load()
}

// Overruns returns the number of blocks that exceeded their budget.
func (m *LoadMeter) Overruns() uint64 {
	return m.overrun.Load()
}

// Reset clears all totals.
func (m *LoadMeter) Reset() {
	m.blocks.Store(0)
	m.frames.Store(0)
	m.busy.Store(0)
	m.worst.Store(0)
	m.overrun.Store(0)
}

// String summarizes the meter for status lines and logs.
func (m *LoadMeter) String() string {
	return fmt.Sprintf("load %.2f%% (peak %.2f%%), %d blocks, %d overruns",
		m.Load()*100, m.PeakLoad()*100, m.Blocks(), m.Overruns())
}

func (m *LoadMeter) budget(frames int) time.Duration {
	if m.sampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(frames) / m.sampleRate * float64(time.Second))
}
