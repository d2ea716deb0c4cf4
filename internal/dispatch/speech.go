// Package dispatch provides the audio implementations the coach binary
// runs with: a simulated speech engine that logs cue text and reports
// real speaking-state transitions, and a console music player. Both are
// also realistic fixtures for integration-style tests.
package dispatch

import (
	"log"
	"sync"
	"time"

	"github.com/sweatcue/coach/internal/events"
	"github.com/sweatcue/coach/internal/session"
)

const (
	// defaultCharsPerSec is the simulated speaking speed when the
	// configured rate is missing or nonsense.
	defaultCharsPerSec = 14
	// utteranceLead models the pause before the engine starts talking.
	utteranceLead = 150 * time.Millisecond
)

// ConsoleSpeech is a text-to-speech stand-in. It prints each cue to the
// log and holds the speaking state up for a duration derived from the
// text length, so the session sees the same rising and falling edges a
// real engine would produce. Cues spoken while another is in flight are
// queued; the speaking state stays up across the whole queue.
type ConsoleSpeech struct {
	logger *log.Logger
	rate   int

	mu       sync.Mutex
	queue    []session.VoiceCue
	timer    *time.Timer
	speaking bool

	feed *events.Feed[bool]
}

var _ session.VoiceDispatch = (*ConsoleSpeech)(nil)

// NewConsoleSpeech creates the simulated engine. rateCharsPerSec values
// below 1 fall back to the default speed.
func NewConsoleSpeech(logger *log.Logger, rateCharsPerSec int) *ConsoleSpeech {
	if logger == nil {
		panic("ConsoleSpeech: logger cannot be nil")
	}
	if rateCharsPerSec < 1 {
		rateCharsPerSec = defaultCharsPerSec
	}
	return &ConsoleSpeech{
		logger: logger,
		rate:   rateCharsPerSec,
		feed:   events.NewFeed[bool](false),
	}
}

// Speak queues the cue and returns immediately. The rising edge is
// published when the engine goes from silent to speaking; utterances
// queued behind it run back to back without a falling edge in between.
func (cs *ConsoleSpeech) Speak(cue session.VoiceCue) error {
	cs.mu.Lock()
	cs.queue = append(cs.queue, cue)
	if cs.speaking {
		cs.mu.Unlock()
		cs.logger.Printf("ConsoleSpeech: queued cue %s", cue.ID)
		return nil
	}
	cs.speaking = true
	cs.timer = time.AfterFunc(cs.utteranceDuration(cue.Text), cs.advance)
	cs.mu.Unlock()

	cs.logger.Printf("ConsoleSpeech: speaking cue %s: %q", cue.ID, cue.Text)
	cs.feed.Publish(true)
	return nil
}

// advance runs when the current utterance's clock expires. It starts the
// next queued cue or, with the queue drained, drops the speaking state.
func (cs *ConsoleSpeech) advance() {
	cs.mu.Lock()
	if !cs.speaking {
		// Stopped while the timer was firing.
		cs.mu.Unlock()
		return
	}
	if len(cs.queue) > 0 {
		cs.queue = cs.queue[1:]
	}
	if len(cs.queue) > 0 {
		next := cs.queue[0]
		cs.timer = time.AfterFunc(cs.utteranceDuration(next.Text), cs.advance)
		cs.mu.Unlock()
		cs.logger.Printf("ConsoleSpeech: speaking cue %s: %q", next.ID, next.Text)
		return
	}
	cs.speaking = false
	cs.mu.Unlock()

	cs.logger.Printf("ConsoleSpeech: finished speaking")
	cs.feed.Publish(false)
}

// ListenSpeaking registers a channel for speaking-state changes.
func (cs *ConsoleSpeech) ListenSpeaking(ch chan<- bool) func() {
	return cs.feed.Subscribe(ch)
}

// Stop interrupts the current utterance and clears the queue.
func (cs *ConsoleSpeech) Stop() {
	cs.mu.Lock()
	if cs.timer != nil {
		cs.timer.Stop()
	}
	cs.queue = nil
	wasSpeaking := cs.speaking
	cs.speaking = false
	cs.mu.Unlock()

	if wasSpeaking {
		cs.logger.Printf("ConsoleSpeech: speech interrupted")
		cs.feed.Publish(false)
	}
}

func (cs *ConsoleSpeech) utteranceDuration(text string) time.Duration {
	return utteranceLead + time.Duration(len(text))*time.Second/time.Duration(cs.rate)
}

// MutedVoice satisfies the voice interface when coaching voice is turned
// off. Speak succeeds without sound and pulses the speaking feed, so the
// intro narration resolves immediately instead of waiting out its
// timeout.
type MutedVoice struct {
	logger *log.Logger
	feed   *events.Feed[bool]
}

var _ session.VoiceDispatch = (*MutedVoice)(nil)

// NewMutedVoice creates the no-sound voice dispatcher.
func NewMutedVoice(logger *log.Logger) *MutedVoice {
	if logger == nil {
		panic("MutedVoice: logger cannot be nil")
	}
	return &MutedVoice{logger: logger, feed: events.NewFeed[bool](false)}
}

// Speak drops the cue and pulses the speaking state.
func (mv *MutedVoice) Speak(cue session.VoiceCue) error {
	mv.logger.Printf("MutedVoice: dropping cue %s", cue.ID)
	mv.feed.Publish(true)
	mv.feed.Publish(false)
	return nil
}

// ListenSpeaking registers a channel for speaking-state changes.
func (mv *MutedVoice) ListenSpeaking(ch chan<- bool) func() {
	return mv.feed.Subscribe(ch)
}

// Stop is a no-op; there is never an utterance in flight.
func (mv *MutedVoice) Stop() {}
