// Package audio moves sound between files, the plugin and the audio device
// for the development host.
package audio

import (
	"errors"
	"math"
)

// ErrEmptyClip is returned for clips without frames.
var ErrEmptyClip = errors.New("clip has no frames")

// Clip is planar stereo audio held in memory.
type Clip struct {
	SampleRate int
	Channels   [2][]float32
}

// NewClip allocates a silent clip.
func NewClip(sampleRate, frames int) *Clip {
	return &Clip{
		SampleRate: sampleRate,
		Channels:   [2][]float32{make([]float32, frames), make([]float32, frames)},
	}
}

// Frames returns the clip length in frames.
func (c *Clip) Frames() int {
	return len(c.Channels[0])
}

// Sine generates a stereo sine at amplitude amp.
func Sine(sampleRate, frames int, freq, amp float64) *Clip {
	c := NewClip(sampleRate, frames)
	step := 2 * math.Pi * freq / float64(sampleRate)
	for i := 0; i < frames; i++ {
		v := float32(amp * math.Sin(step*float64(i)))
		c.Channels[0][i] = v
		c.Channels[1][i] = v
	}
	return c
}

// Looper reads a clip block by block, wrapping at the end.
type Looper struct {
	clip *Clip
	pos  int
}

// NewLooper starts at the beginning of clip.
func NewLooper(clip *Clip) (*Looper, error) {
	if clip.Frames() == 0 {
		return nil, ErrEmptyClip
	}
	return &Looper{clip: clip}, nil
}

// Fill copies the next len(block[0]) frames into both channels of block.
func (l *Looper) Fill(block [][]float32) {
	frames := len(block[0])
	for done := 0; done < frames; {
		n := min(frames-done, l.clip.Frames()-l.pos)
		for ch := range block {
			copy(block[ch][done:done+n], l.clip.Channels[ch][l.pos:l.pos+n])
		}
		done += n
		l.pos += n
		if l.pos == l.clip.Frames() {
			l.pos = 0
		}
	}
}
