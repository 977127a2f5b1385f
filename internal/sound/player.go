package sound

import (
	"io"
	"sync"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

// Player renders sounds on demand and plays them through oto. A Player
// whose audio device failed to open stays silent.
type Player struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64

	mu    sync.Mutex
	cache map[string][]byte
}

// NewPlayer opens the audio device. volume scales every sound.
func NewPlayer(volume float64) (*Player, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, err
	}
	return &Player{
		ctx:    ctx,
		ready:  ready,
		volume: clampF(volume, 0, 1),
		cache:  make(map[string][]byte),
	}, nil
}

// Play starts a sound asynchronously. Unknown names are ignored.
func (p *Player) Play(name string, gain float64) {
	if p == nil || p.ctx == nil || gain <= 0 {
		return
	}
	select {
	case <-p.ready:
	default:
		return
	}
	samples := p.samples(name)
	if len(samples) == 0 {
		return
	}
	go func() {
		reader := &soundReader{data: samples}
		player := p.ctx.NewPlayer(reader)
		player.SetVolume(p.volume * clampF(gain, 0, 1))
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

func (p *Player) samples(name string) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	if buf, ok := p.cache[name]; ok {
		return buf
	}
	s, err := Parse(name)
	if err != nil {
		return nil
	}
	buf := Render(s)
	p.cache[name] = buf
	return buf
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(b []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(b, r.data[r.pos:])
	r.pos += n
	return n, nil
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
