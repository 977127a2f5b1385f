// Package sound turns host sound names ("piano_a4", "xylo_db5",
// "fx_click") into procedurally synthesized PCM and plays them.
package sound

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrUnknownSound = errors.New("unknown sound")

type Instrument int

const (
	Piano Instrument = iota
	LongPiano
	Harpsichord
	LongHarpsichord
	Xylophone
	Effect
)

var instrumentNames = map[string]Instrument{
	"piano":    Piano,
	"l_piano":  LongPiano,
	"hchord":   Harpsichord,
	"l_hchord": LongHarpsichord,
	"xylo":     Xylophone,
}

type EffectKind int

const (
	FxClick EffectKind = iota
	FxBang
	FxBloop
	FxPowerup
)

var effectNames = map[string]EffectKind{
	"fx_click":    FxClick,
	"fx_bang":     FxBang,
	"fx_bloop":    FxBloop,
	"fx_powerup1": FxPowerup,
}

// Sound is a parsed sound name.
type Sound struct {
	Name       string
	Instrument Instrument
	Effect     EffectKind
	Midi       int // MIDI note number; unused for effects
}

var semitones = map[byte]int{'c': 0, 'd': 2, 'e': 4, 'f': 5, 'g': 7, 'a': 9, 'b': 11}

// Parse recognizes "<instrument>_<note>[b]<octave>" and the fx_ effect names.
func Parse(name string) (Sound, error) {
	if fx, ok := effectNames[name]; ok {
		return Sound{Name: name, Instrument: Effect, Effect: fx}, nil
	}
	idx := strings.LastIndexByte(name, '_')
	if idx <= 0 {
		return Sound{}, fmt.Errorf("%q: %w", name, ErrUnknownSound)
	}
	inst, ok := instrumentNames[name[:idx]]
	if !ok {
		return Sound{}, fmt.Errorf("%q: %w", name, ErrUnknownSound)
	}
	midi, err := parseNote(name[idx+1:])
	if err != nil {
		return Sound{}, fmt.Errorf("%q: %w", name, err)
	}
	return Sound{Name: name, Instrument: inst, Midi: midi}, nil
}

// Validate reports whether name is a playable sound.
func Validate(name string) error {
	_, err := Parse(name)
	return err
}

// parseNote converts "a4", "db5", "bb1" into a MIDI note number.
func parseNote(s string) (int, error) {
	if len(s) < 2 || len(s) > 3 {
		return 0, ErrUnknownSound
	}
	semi, ok := semitones[s[0]]
	if !ok {
		return 0, ErrUnknownSound
	}
	if len(s) == 3 {
		if s[1] != 'b' {
			return 0, ErrUnknownSound
		}
		semi--
	}
	oct := s[len(s)-1]
	if oct < '0' || oct > '8' {
		return 0, ErrUnknownSound
	}
	return (int(oct-'0')+1)*12 + semi, nil
}

// Frequency returns the equal-tempered pitch in Hz (A4 = 440).
func (s Sound) Frequency() float64 {
	if s.Instrument == Effect {
		return 0
	}
	return 440 * math.Pow(2, float64(s.Midi-69)/12)
}
