package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ErrInvalidWAV is returned for inputs the decoder does not recognize.
var ErrInvalidWAV = errors.New("invalid wav file")

// OutputBitDepth is the PCM depth Encode writes.
const OutputBitDepth = 16

const wavFormatPCM = 1

// Decode reads a PCM WAV stream. Mono is duplicated to both channels;
// channels beyond the second are dropped.
func Decode(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidWAV
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode pcm: %w", err)
	}

	numChans := buf.Format.NumChannels
	if numChans < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidWAV, numChans)
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: audio format %d is not PCM", ErrInvalidWAV, dec.WavAudioFormat)
	}
	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = int(dec.BitDepth)
	}
	center, scale, err := pcmScale(depth)
	if err != nil {
		return nil, err
	}

	frames := len(buf.Data) / numChans
	clip := NewClip(buf.Format.SampleRate, frames)
	for i := 0; i < frames; i++ {
		frame := buf.Data[i*numChans : (i+1)*numChans]
		left := float32(frame[0]-center) * scale
		right := left
		if numChans > 1 {
			right = float32(frame[1]-center) * scale
		}
		clip.Channels[0][i] = left
		clip.Channels[1][i] = right
	}
	return clip, nil
}

// pcmScale returns the zero level and the factor mapping PCM integers of the
// given depth to [-1, 1]. 8-bit WAV samples are unsigned around 128.
func pcmScale(depth int) (center int, scale float32, err error) {
	switch depth {
	case 8:
		return 128, 1.0 / 128, nil
	case 16, 24, 32:
		return 0, 1 / float32(goaudio.IntMaxSignedValue(depth)), nil
	}
	return 0, 0, fmt.Errorf("%w: unsupported bit depth %d", ErrInvalidWAV, depth)
}

// Encode writes clip as 16-bit stereo PCM. Samples are clipped to [-1, 1].
func Encode(w io.WriteSeeker, clip *Clip) error {
	if clip.Frames() == 0 {
		return ErrEmptyClip
	}

	enc := wav.NewEncoder(w, clip.SampleRate, OutputBitDepth, 2, wavFormatPCM)
	peak := float32(goaudio.IntMaxSignedValue(OutputBitDepth))

	buf := &goaudio.IntBuffer{
		Data:           make([]int, clip.Frames()*2),
		Format:         &goaudio.Format{SampleRate: clip.SampleRate, NumChannels: 2},
		SourceBitDepth: OutputBitDepth,
	}
	for i := 0; i < clip.Frames(); i++ {
		buf.Data[2*i] = toPCM(clip.Channels[0][i], peak)
		buf.Data[2*i+1] = toPCM(clip.Channels[1][i], peak)
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("write pcm: %w", err)
	}
	return enc.Close()
}

func toPCM(v, peak float32) int {
	switch {
	case math.IsNaN(float64(v)):
		return 0
	case v > 1:
		v = 1
	case v < -1:
		v = -1
	}
	return int(v * peak)
}

// ReadFile decodes the WAV file at path.
func ReadFile(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	clip, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return clip, nil
}

// WriteFile encodes clip to path, replacing any existing file.
func WriteFile(path string, clip *Clip) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, clip); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
