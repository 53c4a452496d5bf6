package audio

import "github.com/lixenwraith/mandelterm/parameter"

// Config controls cue playback
type Config struct {
	Enabled    bool
	Volume     float64 // Master volume in [0, 1]
	SampleRate int
}

// DefaultConfig returns audio disabled at the default volume
func DefaultConfig() Config {
	return Config{
		Enabled:    false,
		Volume:     parameter.AudioVolume,
		SampleRate: parameter.AudioSampleRate,
	}
}
