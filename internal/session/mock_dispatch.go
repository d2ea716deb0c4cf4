package session

import (
	"fmt"
	"log"
	"sync"

	"github.com/sweatcue/coach/internal/events"
)

// MockVoice implements VoiceDispatch for testing without a real
// text-to-speech engine. Speaking-state changes are triggered manually.
type MockVoice struct {
	logger *log.Logger

	mu       sync.RWMutex
	spoken   []VoiceCue
	stops    int
	speakErr error

	speakingFeed *events.Feed[bool]
}

var _ VoiceDispatch = (*MockVoice)(nil)

// NewMockVoice creates a mock voice dispatcher
func NewMockVoice(logger *log.Logger) *MockVoice {
	if logger == nil {
		panic("MockVoice: logger cannot be nil")
	}
	return &MockVoice{
		logger:       logger,
		speakingFeed: events.NewFeed[bool](false),
	}
}

// Speak records the cue, or fails with the configured error
func (mv *MockVoice) Speak(cue VoiceCue) error {
	mv.mu.Lock()
	if mv.speakErr != nil {
		err := mv.speakErr
		mv.mu.Unlock()
		mv.logger.Printf("MockVoice: refusing cue %s: %v", cue.ID, err)
		return err
	}
	mv.spoken = append(mv.spoken, cue)
	mv.mu.Unlock()

	mv.logger.Printf("MockVoice: speaking cue %s: %q", cue.ID, cue.Text)
	return nil
}

// ListenSpeaking registers a channel for speaking-state changes
func (mv *MockVoice) ListenSpeaking(ch chan<- bool) func() {
	return mv.speakingFeed.Subscribe(ch)
}

// Stop counts interruption requests
func (mv *MockVoice) Stop() {
	mv.mu.Lock()
	mv.stops++
	mv.mu.Unlock()
	mv.logger.Printf("MockVoice: stop requested")
}

// SetSpeakError makes every subsequent Speak call fail with err.
// Pass nil to restore normal behavior.
func (mv *MockVoice) SetSpeakError(err error) {
	mv.mu.Lock()
	mv.speakErr = err
	mv.mu.Unlock()
}

// TriggerSpeakingStarted simulates the engine beginning to speak
func (mv *MockVoice) TriggerSpeakingStarted() {
	mv.speakingFeed.Publish(true)
}

// TriggerSpeakingFinished simulates the engine finishing
func (mv *MockVoice) TriggerSpeakingFinished() {
	mv.speakingFeed.Publish(false)
}

// SpokenCues returns a copy of everything spoken so far
func (mv *MockVoice) SpokenCues() []VoiceCue {
	mv.mu.RLock()
	defer mv.mu.RUnlock()
	out := make([]VoiceCue, len(mv.spoken))
	copy(out, mv.spoken)
	return out
}

// SpokenIDs returns the IDs of everything spoken so far, in order
func (mv *MockVoice) SpokenIDs() []string {
	mv.mu.RLock()
	defer mv.mu.RUnlock()
	ids := make([]string, 0, len(mv.spoken))
	for _, c := range mv.spoken {
		ids = append(ids, c.ID)
	}
	return ids
}

// StopCount returns how many times Stop was called
func (mv *MockVoice) StopCount() int {
	mv.mu.RLock()
	defer mv.mu.RUnlock()
	return mv.stops
}

// MockMusic implements MusicDispatch for testing without a real player.
// Every operation is recorded as a string for simple ordering assertions.
type MockMusic struct {
	logger *log.Logger

	mu      sync.RWMutex
	ready   bool
	playing bool
	duck    float64
	opErr   error
	calls   []string
}

var _ MusicDispatch = (*MockMusic)(nil)

// NewMockMusic creates a mock player, ready and at full volume
func NewMockMusic(logger *log.Logger) *MockMusic {
	if logger == nil {
		panic("MockMusic: logger cannot be nil")
	}
	return &MockMusic{
		logger: logger,
		ready:  true,
		duck:   1.0,
	}
}

// Ready reports whether the player can start playback
func (mm *MockMusic) Ready() bool {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	return mm.ready
}

// Start begins playback of the selection
func (mm *MockMusic) Start(sel TrackSelection) error {
	return mm.record(fmt.Sprintf("start:%s", sel.Playlist), func() { mm.playing = true })
}

// Pause suspends playback
func (mm *MockMusic) Pause() error {
	return mm.record("pause", func() { mm.playing = false })
}

// Resume continues paused playback
func (mm *MockMusic) Resume() error {
	return mm.record("resume", func() { mm.playing = true })
}

// Stop ends playback
func (mm *MockMusic) Stop() error {
	return mm.record("stop", func() { mm.playing = false })
}

// SetDuckLevel adjusts the playback volume fraction
func (mm *MockMusic) SetDuckLevel(level float64) error {
	return mm.record(fmt.Sprintf("duck:%.2f", level), func() { mm.duck = level })
}

func (mm *MockMusic) record(call string, mutate func()) error {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	if mm.opErr != nil {
		return mm.opErr
	}
	mutate()
	mm.calls = append(mm.calls, call)
	return nil
}

// SetReady controls whether the player reports itself available
func (mm *MockMusic) SetReady(ready bool) {
	mm.mu.Lock()
	mm.ready = ready
	mm.mu.Unlock()
}

// SetOpError makes every subsequent operation fail with err
func (mm *MockMusic) SetOpError(err error) {
	mm.mu.Lock()
	mm.opErr = err
	mm.mu.Unlock()
}

// Calls returns a copy of the recorded operations, in order
func (mm *MockMusic) Calls() []string {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	out := make([]string, len(mm.calls))
	copy(out, mm.calls)
	return out
}

// IsPlaying reports whether playback is running
func (mm *MockMusic) IsPlaying() bool {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	return mm.playing
}

// CurrentDuck returns the last volume fraction set
func (mm *MockMusic) CurrentDuck() float64 {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	return mm.duck
}
