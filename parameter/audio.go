package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 50 * time.Millisecond

	// AudioVolume is the default master volume in [0, 1]
	AudioVolume = 0.5

	// MinCueGap drops cues triggered faster than this (held keys)
	MinCueGap = 60 * time.Millisecond
)

// Error Cue: zoom refused at the precision limit, dropped frames
const (
	ErrorCueDuration = 80 * time.Millisecond
	ErrorCueAttack   = 5 * time.Millisecond
	ErrorCueRelease  = 20 * time.Millisecond
	ErrorCueFreq     = 100.0
)

// Tick Cue: iteration budget changed
const (
	TickCueDuration = 40 * time.Millisecond
	TickCueAttack   = 2 * time.Millisecond
	TickCueRelease  = 30 * time.Millisecond
	TickCueFreqUp   = 1318.51 // E6
	TickCueFreqDown = 987.77  // B5
)

// Bell Cue: view reset to home
const (
	BellCueDuration           = 400 * time.Millisecond
	BellCueAttack             = 5 * time.Millisecond
	BellCueFundamentalRelease = 350 * time.Millisecond
	BellCueOvertoneRelease    = 150 * time.Millisecond
	BellCueFreq               = 880.0
)
