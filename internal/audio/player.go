package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/justyntemme/gainplug/pkg/dsp/buffer"
)

// ringReader serves float32 little-endian bytes from a ring. It is the
// device callback side: it never blocks and plays silence on underrun.
type ringReader struct {
	ring    *buffer.Ring
	samples []float32
}

func newRingReader(ring *buffer.Ring, capacity int) *ringReader {
	return &ringReader{ring: ring, samples: make([]float32, capacity)}
}

func (r *ringReader) Read(p []byte) (int, error) {
	n := len(p) / 4
	if len(r.samples) < n {
		// Only when the device asks for more than it announced.
		r.samples = make([]float32, n)
	}
	samples := r.samples[:n]
	r.ring.Read(samples)

	for i, v := range samples {
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(v))
	}
	return 4 * n, nil
}

// Player plays a stereo ring on the default audio device.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	reader *ringReader

	mu      sync.Mutex
	started bool
}

// NewPlayer opens the audio device. latency is the device buffer size.
func NewPlayer(sampleRate int, ring *buffer.Ring, latency time.Duration) (*Player, error) {
	if ring.Channels() != 2 {
		return nil, fmt.Errorf("player: need a stereo ring, got %d channels", ring.Channels())
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   latency,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	frames := int(latency.Seconds()*float64(sampleRate)) + 1
	reader := newRingReader(ring, 4*2*frames)
	return &Player{
		ctx:    ctx,
		player: ctx.NewPlayer(reader),
		reader: reader,
	}, nil
}

// Start begins playback.
func (p *Player) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		p.player.Play()
		p.started = true
	}
}

// Close stops playback and releases the player.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.started = false
	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	return err
}
