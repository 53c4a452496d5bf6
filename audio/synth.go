package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/pkg/errors"

	"github.com/lixenwraith/mandelterm/parameter"
)

// WaveType selects the generator for a partial
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

// partial is one tone of a cue
type partial struct {
	wave    WaveType
	freq    float64
	gain    float64
	release time.Duration
}

// patch is the recipe of a cue: shared length and attack, mixed partials
type patch struct {
	length   time.Duration
	attack   time.Duration
	gain     float64
	partials []partial
}

var patches = map[Cue]patch{
	// Harsh low buzz
	CueError: {
		length: parameter.ErrorCueDuration,
		attack: parameter.ErrorCueAttack,
		gain:   1,
		partials: []partial{
			{WaveSaw, parameter.ErrorCueFreq, 1, parameter.ErrorCueRelease},
		},
	},
	CueTickUp: {
		length: parameter.TickCueDuration,
		attack: parameter.TickCueAttack,
		gain:   0.5,
		partials: []partial{
			{WaveSquare, parameter.TickCueFreqUp, 1, parameter.TickCueRelease},
		},
	},
	CueTickDown: {
		length: parameter.TickCueDuration,
		attack: parameter.TickCueAttack,
		gain:   0.5,
		partials: []partial{
			{WaveSquare, parameter.TickCueFreqDown, 1, parameter.TickCueRelease},
		},
	},
	// Fundamental with its octave, the overtone fading first
	CueBell: {
		length: parameter.BellCueDuration,
		attack: parameter.BellCueAttack,
		gain:   1,
		partials: []partial{
			{WaveSine, parameter.BellCueFreq, 0.7, parameter.BellCueFundamentalRelease},
			{WaveSine, 2 * parameter.BellCueFreq, 0.3, parameter.BellCueOvertoneRelease},
		},
	},
}

// Synthesize builds the streamer for a cue at the configured volume
func Synthesize(c Cue, cfg Config) (beep.Streamer, error) {
	p, ok := patches[c]
	if !ok {
		return nil, errors.Errorf("unknown cue %d", c)
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = parameter.AudioSampleRate
	}
	rate := beep.SampleRate(cfg.SampleRate)

	voices := make([]beep.Streamer, 0, len(p.partials))
	for _, pt := range p.partials {
		src, err := tone(pt.wave, pt.freq, rate)
		if err != nil {
			return nil, errors.Wrapf(err, "cue %s", c)
		}
		shaped := newShape(src, p.length, p.attack, pt.release, rate)
		voices = append(voices, gain(shaped, pt.gain))
	}
	return gain(beep.Mix(voices...), p.gain*cfg.Volume), nil
}

// tone returns an endless generator
func tone(wave WaveType, freq float64, rate beep.SampleRate) (beep.Streamer, error) {
	switch wave {
	case WaveSquare:
		return generators.SquareTone(rate, freq)
	case WaveSaw:
		return generators.SawtoothTone(rate, freq)
	default:
		return generators.SineTone(rate, freq)
	}
}

// gain scales linearly; effects.Volume works in log2 so zero is silenced
func gain(s beep.Streamer, g float64) beep.Streamer {
	if g <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(g)}
}

// shape cuts a source to length samples with a linear attack and release
type shape struct {
	src     beep.Streamer
	pos     int
	length  int
	attack  int
	release int
}

func newShape(src beep.Streamer, length, attack, release time.Duration, rate beep.SampleRate) *shape {
	n := rate.N(length)
	return &shape{
		src:     beep.Take(n, src),
		length:  n,
		attack:  rate.N(attack),
		release: rate.N(release),
	}
}

// level is the envelope at sample pos
func (sh *shape) level(pos int) float64 {
	l := 1.0
	if sh.attack > 0 && pos < sh.attack {
		l = float64(pos) / float64(sh.attack)
	}
	if left := sh.length - pos; sh.release > 0 && left < sh.release {
		l = min(l, float64(left)/float64(sh.release))
	}
	return l
}

func (sh *shape) Stream(samples [][2]float64) (int, bool) {
	n, ok := sh.src.Stream(samples)
	for i := range samples[:n] {
		l := sh.level(sh.pos)
		samples[i][0] *= l
		samples[i][1] *= l
		sh.pos++
	}
	return n, ok
}

func (sh *shape) Err() error { return sh.src.Err() }
