package dispatch

import (
	"log"
	"sync"

	"github.com/sweatcue/coach/internal/session"
)

// ConsolePlayer is a background-music stand-in that narrates playback
// into the log. Created not ready it models an unlinked provider: every
// operation fails with ErrDispatchUnavailable and the session runs
// without music.
type ConsolePlayer struct {
	logger *log.Logger

	mu      sync.Mutex
	ready   bool
	playing bool
	paused  bool
	track   session.TrackSelection
	duck    float64
}

var _ session.MusicDispatch = (*ConsolePlayer)(nil)

// NewConsolePlayer creates the console player.
func NewConsolePlayer(logger *log.Logger, ready bool) *ConsolePlayer {
	if logger == nil {
		panic("ConsolePlayer: logger cannot be nil")
	}
	return &ConsolePlayer{logger: logger, ready: ready, duck: 1.0}
}

// Ready reports whether the player can accept commands.
func (cp *ConsolePlayer) Ready() bool {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	return cp.ready
}

// Start begins playback of the selection.
func (cp *ConsolePlayer) Start(sel session.TrackSelection) error {
	cp.mu.Lock()
	if !cp.ready {
		cp.mu.Unlock()
		return session.ErrDispatchUnavailable
	}
	cp.playing = true
	cp.paused = false
	cp.track = sel
	cp.mu.Unlock()

	cp.logger.Printf("ConsolePlayer: starting playlist %q (shuffle %t)", sel.Playlist, sel.Shuffle)
	return nil
}

// Pause suspends playback.
func (cp *ConsolePlayer) Pause() error {
	cp.mu.Lock()
	if !cp.ready {
		cp.mu.Unlock()
		return session.ErrDispatchUnavailable
	}
	cp.paused = true
	cp.mu.Unlock()

	cp.logger.Printf("ConsolePlayer: paused")
	return nil
}

// Resume continues playback after a pause.
func (cp *ConsolePlayer) Resume() error {
	cp.mu.Lock()
	if !cp.ready {
		cp.mu.Unlock()
		return session.ErrDispatchUnavailable
	}
	cp.paused = false
	cp.mu.Unlock()

	cp.logger.Printf("ConsolePlayer: resumed")
	return nil
}

// Stop ends playback.
func (cp *ConsolePlayer) Stop() error {
	cp.mu.Lock()
	if !cp.ready {
		cp.mu.Unlock()
		return session.ErrDispatchUnavailable
	}
	cp.playing = false
	cp.paused = false
	cp.mu.Unlock()

	cp.logger.Printf("ConsolePlayer: stopped")
	return nil
}

// SetDuckLevel adjusts the playback volume fraction.
func (cp *ConsolePlayer) SetDuckLevel(level float64) error {
	cp.mu.Lock()
	if !cp.ready {
		cp.mu.Unlock()
		return session.ErrDispatchUnavailable
	}
	cp.duck = level
	cp.mu.Unlock()

	cp.logger.Printf("ConsolePlayer: volume set to %.0f%%", level*100)
	return nil
}

// Playing reports whether playback is active (possibly paused).
func (cp *ConsolePlayer) Playing() bool {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	return cp.playing
}

// Paused reports whether playback is suspended.
func (cp *ConsolePlayer) Paused() bool {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	return cp.paused
}

// DuckLevel returns the current volume fraction.
func (cp *ConsolePlayer) DuckLevel() float64 {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	return cp.duck
}

// Track returns what Start was last called with.
func (cp *ConsolePlayer) Track() session.TrackSelection {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	return cp.track
}
