package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRate = beep.SampleRate(44100)

// drain streams s to completion and returns every sample
func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for i := 0; i < 10_000; i++ {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("streamer never drained")
	return nil
}

// constant streams full scale forever
func constant() beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{1, 1}
		}
		return len(samples), true
	})
}

func TestShape_RampsInAndOut(t *testing.T) {
	sh := newShape(constant(), 100*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, testRate)
	samples := drain(t, sh)

	require.Len(t, samples, testRate.N(100*time.Millisecond))
	assert.Zero(t, samples[0][0], "attack starts silent")
	assert.InDelta(t, 0.5, samples[testRate.N(5*time.Millisecond)][0], 0.01)
	assert.Equal(t, 1.0, samples[len(samples)/2][0], "sustain at full level")
	assert.Less(t, samples[len(samples)-1][0], 0.01, "release ends near silence")
	assert.NoError(t, sh.Err())
}

func TestShape_ReleaseLongerThanLength(t *testing.T) {
	sh := newShape(constant(), 10*time.Millisecond, 0, time.Second, testRate)
	samples := drain(t, sh)
	require.NotEmpty(t, samples)
	// Release covers the whole cue, it starts partway down
	assert.Less(t, samples[0][0], 0.02)
}

func TestSynthesize_AllCues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Volume = 1
	lengths := map[Cue]time.Duration{
		CueError:    80 * time.Millisecond,
		CueTickUp:   40 * time.Millisecond,
		CueTickDown: 40 * time.Millisecond,
		CueBell:     400 * time.Millisecond,
	}
	for c, length := range lengths {
		s, err := Synthesize(c, cfg)
		require.NoError(t, err, "cue %s", c)

		samples := drain(t, s)
		assert.Len(t, samples, testRate.N(length), "cue %s", c)

		peak := 0.0
		for _, v := range samples {
			require.InDelta(t, 0, v[0], 1.0+1e-9, "cue %s clips", c)
			require.Equal(t, v[0], v[1], "cue %s channels differ", c)
			peak = max(peak, v[0])
		}
		assert.Greater(t, peak, 0.1, "cue %s is audible", c)
	}
}

func TestSynthesize_UnknownCue(t *testing.T) {
	_, err := Synthesize(Cue(99), DefaultConfig())
	assert.Error(t, err)
}

func TestSynthesize_ZeroVolumeIsSilent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Volume = 0
	s, err := Synthesize(CueError, cfg)
	require.NoError(t, err)
	for _, v := range drain(t, s) {
		require.Zero(t, v[0])
	}
}

func TestPlayer_ThrottlesRepeats(t *testing.T) {
	var played int
	p := newPlayer(DefaultConfig(), func(beep.Streamer) { played++ }, nil)

	clock := time.Unix(100, 0)
	p.now = func() time.Time { return clock }

	p.Play(CueTickUp)
	p.Play(CueTickUp)
	assert.Equal(t, 1, played, "repeat inside the gap is dropped")

	p.Play(CueTickDown)
	assert.Equal(t, 2, played, "other cues are independent")

	clock = clock.Add(time.Second)
	p.Play(CueTickUp)
	assert.Equal(t, 3, played)

	p.Play(Cue(99))
	assert.Equal(t, 3, played)
	p.Close()
}

func TestPlayer_ThrottledRepeatsSkipSynthesis(t *testing.T) {
	p := newPlayer(DefaultConfig(), func(beep.Streamer) {}, nil)
	p.now = func() time.Time { return time.Unix(100, 0) }

	var built []Cue
	p.synth = func(c Cue, cfg Config) (beep.Streamer, error) {
		built = append(built, c)
		return Synthesize(c, cfg)
	}

	for range 5 {
		p.Play(CueError)
	}
	assert.Equal(t, []Cue{CueError}, built)
}

func TestCueNames(t *testing.T) {
	assert.Equal(t, "bell", CueBell.String())
	assert.Equal(t, "unknown", Cue(99).String())
	assert.NotPanics(t, func() {
		var s Silent
		s.Play(CueError)
		s.Close()
	})
}
