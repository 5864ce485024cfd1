package audio

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-spacerun/pkg/logging"
)

// SampleRate is the output rate of the speaker
const SampleRate = beep.SampleRate(44100)

type note struct {
	freq     float64
	duration time.Duration
}

type tone struct {
	notes  []note
	volume float64
}

var tones = map[Cue]tone{
	CueFire:      {notes: []note{{880, 40 * time.Millisecond}}, volume: 0.25},
	CueDamage:    {notes: []note{{220, 120 * time.Millisecond}}, volume: 0.5},
	CueShot:      {notes: []note{{660, 50 * time.Millisecond}, {990, 70 * time.Millisecond}}, volume: 0.4},
	CueCrash:     {notes: []note{{110, 300 * time.Millisecond}}, volume: 0.6},
	CueOutOfFuel: {notes: []note{{440, 100 * time.Millisecond}, {330, 100 * time.Millisecond}}, volume: 0.4},
	CueGameOver:  {notes: []note{{523, 150 * time.Millisecond}, {392, 150 * time.Millisecond}, {262, 300 * time.Millisecond}}, volume: 0.4},
}

// Streamer builds the sound for cue at rate
func Streamer(rate beep.SampleRate, cue Cue) (beep.Streamer, error) {
	t, ok := tones[cue]
	if !ok {
		return nil, fmt.Errorf("no tone for cue %s", cue)
	}

	parts := make([]beep.Streamer, 0, len(t.notes))
	for _, n := range t.notes {
		sine, err := generators.SineTone(rate, n.freq)
		if err != nil {
			return nil, fmt.Errorf("tone %s at %.0f Hz: %w", cue, n.freq, err)
		}
		parts = append(parts, beep.Take(rate.N(n.duration), sine))
	}
	return &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   math.Log2(t.volume),
	}, nil
}

// SpeakerPlayer plays cues on the default audio device
type SpeakerPlayer struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	closed bool
	logger *logging.Logger
	play   func(...beep.Streamer)
}

// NewSpeakerPlayer initializes the audio device
func NewSpeakerPlayer(logger *logging.Logger) (*SpeakerPlayer, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return newSpeakerPlayer(SampleRate, logger, speaker.Play), nil
}

func newSpeakerPlayer(rate beep.SampleRate, logger *logging.Logger, play func(...beep.Streamer)) *SpeakerPlayer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &SpeakerPlayer{rate: rate, logger: logger, play: play}
}

// Play implements Player. Cues overlap rather than queue.
func (p *SpeakerPlayer) Play(cue Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	s, err := Streamer(p.rate, cue)
	if err != nil {
		p.logger.Warn(context.Background(), "No sound for cue", "cue", cue.String(), "error", err.Error())
		return
	}
	p.play(s)
}

// Close stops playback and releases the device
func (p *SpeakerPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	speaker.Clear()
	speaker.Close()
}
