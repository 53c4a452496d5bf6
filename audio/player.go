package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"

	"github.com/lixenwraith/mandelterm/parameter"
)

// Player plays cues on the system speaker
type Player struct {
	cfg   Config
	synth func(Cue, Config) (beep.Streamer, error)
	play  func(beep.Streamer)
	stop  func()
	now   func() time.Time

	mu   sync.Mutex
	last map[Cue]time.Time
}

// NewPlayer initializes the speaker at the configured sample rate
// Callers fall back to Silent on error, audio is never required
func NewPlayer(cfg Config) (*Player, error) {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = parameter.AudioSampleRate
	}
	rate := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return nil, errors.Wrap(err, "speaker init")
	}
	return newPlayer(cfg, func(s beep.Streamer) { speaker.Play(s) }, speaker.Close), nil
}

func newPlayer(cfg Config, play func(beep.Streamer), stop func()) *Player {
	return &Player{
		cfg:   cfg,
		synth: Synthesize,
		play:  play,
		stop:  stop,
		now:   time.Now,
		last:  make(map[Cue]time.Time),
	}
}

// Play synthesizes and queues a cue, repeats within MinCueGap and unknown cues are dropped
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	now := p.now()
	if last, ok := p.last[c]; ok && now.Sub(last) < parameter.MinCueGap {
		p.mu.Unlock()
		return
	}
	p.last[c] = now
	p.mu.Unlock()

	s, err := p.synth(c, p.cfg)
	if err != nil {
		return
	}
	p.play(s)
}

// Close releases the speaker
func (p *Player) Close() {
	if p.stop != nil {
		p.stop()
	}
}
