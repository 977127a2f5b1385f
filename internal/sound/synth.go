package sound

import (
	"encoding/binary"
	"math"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// voice describes the FM timbre of one instrument.
type voice struct {
	dur      float64 // seconds
	modRatio float64
	modIdx   float64
	env      envelope
	gain     float64
	harmonic float64 // level of the added second harmonic
}

var voices = map[Instrument]voice{
	Piano:           {dur: 0.9, modRatio: 1.0, modIdx: 1.6, env: envelope{0.005, 0.45, 0.25, 0.3}, gain: 0.42, harmonic: 0.10},
	LongPiano:       {dur: 2.2, modRatio: 1.0, modIdx: 1.6, env: envelope{0.003, 0.35, 0.35, 0.4}, gain: 0.40, harmonic: 0.10},
	Harpsichord:     {dur: 0.7, modRatio: 3.0, modIdx: 2.4, env: envelope{0.002, 0.30, 0.15, 0.3}, gain: 0.34, harmonic: 0.14},
	LongHarpsichord: {dur: 1.8, modRatio: 3.0, modIdx: 2.4, env: envelope{0.002, 0.25, 0.25, 0.4}, gain: 0.32, harmonic: 0.14},
	Xylophone:       {dur: 0.5, modRatio: 3.5, modIdx: 5.0, env: envelope{0.003, 0.60, 0.04, 0.3}, gain: 0.30, harmonic: 0.07},
}

// Render synthesizes a sound as interleaved float32 LE stereo PCM.
func Render(s Sound) []byte {
	if s.Instrument == Effect {
		switch s.Effect {
		case FxClick:
			return genClick()
		case FxBang:
			return genBang()
		case FxBloop:
			return genBloop()
		case FxPowerup:
			return genPowerup()
		}
		return nil
	}
	v, ok := voices[s.Instrument]
	if !ok {
		return nil
	}
	return genNote(s.Frequency(), v)
}

func genNote(freq float64, v voice) pcm {
	n := int(v.dur * SampleRate)
	buf := newPCM(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := v.env.at(p)
		s := fmSample(t, freq, v.modRatio, v.modIdx*env) * env * v.gain
		s += math.Sin(2*math.Pi*freq*2*t) * env * v.harmonic
		buf.set(i, s)
	}
	return buf
}

// genClick: crisp click + brief high tone.
func genClick() []byte {
	n := SampleRate * 45 / 1000
	buf := newPCM(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := envelope{0.004, 0.55, 0.0, 0.1}.at(p)
		freq := 1400 - 700*p
		s := fmSample(t, freq, 1.0, 0.6) * env * 0.38
		buf.set(i, s)
	}
	return buf
}

// genBang: short low thump with a noise crack.
func genBang() []byte {
	n := int(0.22 * SampleRate)
	buf := newPCM(n)
	seed := noise(0xBA46)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		lp = lp*0.8 + seed.next()*0.2
		thump := fmSample(t, 90-40*p, 0.5, 1.2) * math.Exp(-p*9)
		crack := 0.0
		if p < 0.05 {
			crack = seed.next() * (1 - p/0.05) * 0.6
		}
		s := (thump*0.6 + lp*0.35*math.Exp(-p*6) + crack) * 0.8
		buf.set(i, s)
	}
	return buf
}

// genBloop: rising sine sweep with a soft tail.
func genBloop() []byte {
	n := int(0.18 * SampleRate)
	buf := newPCM(n)
	phase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		freq := 300 + 500*p*p
		phase += 2 * math.Pi * freq / SampleRate
		env := envelope{0.02, 0.4, 0.3, 0.3}.at(p)
		buf.set(i, math.Sin(phase)*env*0.45)
	}
	return buf
}

// genPowerup: ascending FM bell staircase, each note ringing over the next.
func genPowerup() []byte {
	notes := []float64{440, 554.37, 659.25, 880, 1108.73}
	noteStep := int(0.09 * SampleRate)
	total := len(notes)*noteStep + int(0.25*SampleRate)
	mix := make([]float64, total)

	for fi, freq := range notes {
		start := fi * noteStep
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := envelope{0.003, 0.65, 0.04, 0.28}.at(np)
			s := fmSample(t, freq, 3.5, 5.5*env) * env * 0.28
			s += math.Sin(2*math.Pi*freq*2*t) * env * 0.07
			mix[start+j] += s
		}
	}
	buf := newPCM(total)
	for i, s := range mix {
		buf.set(i, s)
	}
	return buf
}

const frameBytes = 8

// pcm is interleaved float32 LE stereo.
type pcm []byte

func newPCM(frames int) pcm { return make(pcm, frames*frameBytes) }

// set writes sample to both channels of frame i after saturating it.
func (b pcm) set(i int, sample float64) {
	v := math.Float32bits(float32(saturate(sample)))
	binary.LittleEndian.PutUint32(b[i*frameBytes:], v)
	binary.LittleEndian.PutUint32(b[i*frameBytes+4:], v)
}

// saturate bends samples past ±1 back toward the rail instead of clipping.
func saturate(x float64) float64 {
	switch {
	case x > 1:
		return 1 - 0.5/x
	case x < -1:
		return -1 - 0.5/x
	}
	return x - x*x*x/3
}

// envelope stages are fractions of the note length.
type envelope struct {
	attack, decay, sustain, release float64
}

func (e envelope) at(p float64) float64 {
	if p < e.attack {
		return p / e.attack
	}
	if p -= e.attack; p < e.decay {
		return 1 - p/e.decay*(1-e.sustain)
	}
	tail := 1 - e.attack - e.decay - e.release
	if p -= e.decay; p < tail {
		return e.sustain
	}
	return e.sustain * (1 - (p-tail)/e.release)
}

func fmSample(t, carrier, ratio, depth float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * ratio * t)
	return math.Sin(2*math.Pi*carrier*t + depth*mod)
}

// noise is an LCG white-noise source in [-1,1].
type noise uint64

func (n *noise) next() float64 {
	*n = *n*6364136223846793005 + 1442695040888963407
	return float64(int64(*n>>33)-int64(1<<30)) / float64(1<<30)
}
