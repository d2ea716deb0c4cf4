package session

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sweatcue/coach/internal/async"
	"github.com/sweatcue/coach/internal/events"
)

// commandKind identifies commands sent to the session goroutine
type commandKind int

const (
	cmdStart commandKind = iota
	cmdBegin
	cmdPause
	cmdResume
	cmdStop
	cmdAdjust
)

type sessionCommand struct {
	kind   commandKind
	plan   *WorkoutPlan // cmdStart only
	easier bool         // cmdAdjust only
}

// Options tunes a Manager. The zero value selects every default, so
// Options{} is a valid configuration.
type Options struct {
	TickInterval           time.Duration
	DescribeTimeoutSeconds int
	InitialIntensity       IntensityLevel
	// DuckLevel is the music volume fraction while voice cues play.
	DuckLevel float64
	// Music selects what playback starts with at the first exercise.
	Music TrackSelection
	// Recorder, when set, receives the end-of-session summary.
	Recorder SummaryRecorder
}

func (o Options) withDefaults() Options {
	if o.TickInterval <= 0 {
		o.TickInterval = DefaultTickInterval
	}
	if o.DescribeTimeoutSeconds <= 0 {
		o.DescribeTimeoutSeconds = DefaultDescribeTimeoutSeconds
	}
	if _, ok := GetIntensityInfo(o.InitialIntensity); !ok {
		o.InitialIntensity = DefaultIntensity
	}
	if o.DuckLevel <= 0 || o.DuckLevel >= 1 {
		o.DuckLevel = DefaultDuckLevel
	}
	return o
}

// Manager runs one workout session end to end: it owns the state machine,
// serializes ticks, voice events, and user commands onto one goroutine,
// and drives the voice and music dispatchers with the results. Dispatch
// failures are logged and absorbed; the session itself never fails mid-run.
type Manager struct {
	logger   *log.Logger
	voice    VoiceDispatch
	music    MusicDispatch
	recorder SummaryRecorder
	opts     Options

	// Session state (protected by mu)
	mu sync.RWMutex
	m  *machine

	snapshots   *events.Feed[Snapshot]
	transitions *events.Hook[Transition]
	summaries   *events.Feed[SessionSummary]

	// Goroutine management
	cmdChan      chan sessionCommand
	voiceCh      chan bool
	voiceCancel  func()
	doneChan     chan struct{} // Closed to signal shutdown
	wg           sync.WaitGroup
	shutdownOnce sync.Once

	musicDown bool // Loop-owned; set once when the player is unavailable
}

// NewManager creates a Manager and starts its session goroutine
func NewManager(voice VoiceDispatch, music MusicDispatch, logger *log.Logger, opts Options) *Manager {
	if voice == nil {
		panic("SessionManager: voice dispatch cannot be nil")
	}
	if music == nil {
		panic("SessionManager: music dispatch cannot be nil")
	}
	if logger == nil {
		panic("SessionManager: logger cannot be nil")
	}
	opts = opts.withDefaults()

	mgr := &Manager{
		logger:      logger,
		voice:       voice,
		music:       music,
		recorder:    opts.Recorder,
		opts:        opts,
		m:           newMachine(logger, opts.DescribeTimeoutSeconds, opts.InitialIntensity),
		snapshots:   events.NewFeed[Snapshot](true),
		transitions: events.NewHook[Transition](false),
		summaries:   events.NewFeed[SessionSummary](true),
		cmdChan:     make(chan sessionCommand, 8),
		voiceCh:     make(chan bool, 16),
		doneChan:    make(chan struct{}),
	}
	mgr.voiceCancel = voice.ListenSpeaking(mgr.voiceCh)

	// Seed the replayed snapshot so late subscribers see NotStarted rather
	// than nothing.
	mgr.mu.RLock()
	snap := mgr.m.snapshot()
	mgr.mu.RUnlock()
	mgr.snapshots.Publish(snap)

	mgr.wg.Add(1)
	async.Go(logger, "session-loop", func() { mgr.runLoop() })

	return mgr
}

// Start validates the plan and begins the session. Configuration problems
// are the one kind of error surfaced to the caller; calling Start in the
// wrong phase is just a logged no-op.
func (mgr *Manager) Start(plan *WorkoutPlan) error {
	if plan == nil {
		return &ConfigError{Field: "plan", Reason: "no plan provided"}
	}
	if err := plan.Validate(); err != nil {
		return fmt.Errorf("session start: %w", err)
	}

	mgr.mu.RLock()
	phase := mgr.m.phase
	mgr.mu.RUnlock()
	if phase != PhaseNotStarted {
		mgr.logger.Printf("SessionManager: Start ignored in phase %s", phase)
		return nil
	}

	mgr.enqueue(sessionCommand{kind: cmdStart, plan: plan})
	return nil
}

// BeginExercise is the user's ready signal for the pending exercise
func (mgr *Manager) BeginExercise() {
	if !mgr.inPhase(PhaseAwaitingReady) {
		mgr.logger.Printf("SessionManager: ready signal ignored, no exercise pending")
		return
	}
	mgr.enqueue(sessionCommand{kind: cmdBegin})
}

// Pause freezes the session
func (mgr *Manager) Pause() {
	if !mgr.currentPhase().IsActive() {
		mgr.logger.Printf("SessionManager: Pause ignored in phase %s", mgr.currentPhase())
		return
	}
	mgr.enqueue(sessionCommand{kind: cmdPause})
}

// Resume unfreezes a paused session
func (mgr *Manager) Resume() {
	if !mgr.inPhase(PhasePaused) {
		mgr.logger.Printf("SessionManager: Resume ignored, session not paused")
		return
	}
	mgr.enqueue(sessionCommand{kind: cmdResume})
}

// Stop aborts the session from any phase
func (mgr *Manager) Stop() {
	switch mgr.currentPhase() {
	case PhaseNotStarted:
		mgr.logger.Printf("SessionManager: no session to stop")
		return
	case PhaseCompleted:
		mgr.logger.Printf("SessionManager: Stop ignored, session already completed")
		return
	}
	mgr.enqueue(sessionCommand{kind: cmdStop})
}

// AdjustIntensity moves one step on the intensity scale, easier toward
// Recovery, harder toward Max
func (mgr *Manager) AdjustIntensity(easier bool) {
	phase := mgr.currentPhase()
	if phase == PhaseNotStarted || phase == PhaseCompleted {
		mgr.logger.Printf("SessionManager: intensity change ignored in phase %s", phase)
		return
	}
	mgr.enqueue(sessionCommand{kind: cmdAdjust, easier: easier})
}

// Snapshot returns the current externally visible session state
func (mgr *Manager) Snapshot() Snapshot {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()
	return mgr.m.snapshot()
}

// CurrentPhase returns the phase the session is in
func (mgr *Manager) CurrentPhase() Phase {
	return mgr.currentPhase()
}

// ListenSnapshots registers a channel for state snapshots. New listeners
// immediately receive the latest snapshot. Returns an unregister function.
func (mgr *Manager) ListenSnapshots(ch chan<- Snapshot) func() {
	return mgr.snapshots.Subscribe(ch)
}

// OnTransition registers a callback for phase transitions
func (mgr *Manager) OnTransition(fn func(Transition)) func() {
	return mgr.transitions.Attach(fn)
}

// ListenSummaries registers a channel for the end-of-session summary
func (mgr *Manager) ListenSummaries(ch chan<- SessionSummary) func() {
	return mgr.summaries.Subscribe(ch)
}

// Shutdown stops the session goroutine and cleans up resources.
// Safe to call multiple times - only the first call has effect.
func (mgr *Manager) Shutdown() {
	mgr.shutdownOnce.Do(func() {
		mgr.logger.Printf("SessionManager: Shutting down")
		close(mgr.doneChan)
		mgr.wg.Wait()
		if mgr.voiceCancel != nil {
			mgr.voiceCancel()
		}
		mgr.logger.Printf("SessionManager: Shutdown complete")
	})
}

func (mgr *Manager) currentPhase() Phase {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()
	return mgr.m.phase
}

func (mgr *Manager) inPhase(p Phase) bool {
	return mgr.currentPhase() == p
}

// enqueue hands a command to the session goroutine, dropping it if the
// manager has already shut down rather than blocking forever
func (mgr *Manager) enqueue(cmd sessionCommand) {
	select {
	case mgr.cmdChan <- cmd:
	case <-mgr.doneChan:
		mgr.logger.Printf("SessionManager: dropping command, manager shut down")
	}
}

// exec runs one machine input under the lock, then publishes the new
// snapshot and executes the effects outside it. Publishing before apply
// keeps the feeds ordered even when a failed cue folds a second input
// into the machine from within apply.
func (mgr *Manager) exec(fn func(*machine) effects) effects {
	mgr.mu.Lock()
	eff := fn(mgr.m)
	snap := mgr.m.snapshot()
	mgr.mu.Unlock()

	mgr.snapshots.Publish(snap)
	mgr.apply(eff)
	return eff
}

// apply executes machine effects against the dispatchers. Only the
// session goroutine calls this.
func (mgr *Manager) apply(eff effects) {
	if eff.transition != nil {
		mgr.logger.Printf("SessionManager: phase %s -> %s", eff.transition.From, eff.transition.To)
		mgr.transitions.Publish(*eff.transition)
	}
	if eff.stopVoice {
		mgr.voice.Stop()
	}
	for _, op := range eff.music {
		mgr.applyMusic(op)
	}
	for _, cue := range eff.speak {
		if err := mgr.voice.Speak(cue); err != nil {
			mgr.logger.Printf("SessionManager: voice cue %s failed: %v", cue.ID, err)
			mgr.exec(func(m *machine) effects { return m.speakFailed(cue.ID) })
		}
	}
	if eff.summary != nil {
		summary := *eff.summary
		mgr.summaries.Publish(summary)
		if mgr.recorder != nil {
			async.Go(mgr.logger, "summary-record", func() {
				if err := mgr.recorder.Record(summary); err != nil {
					mgr.logger.Printf("SessionManager: failed to record summary: %v", err)
				}
			})
		}
	}
}

// applyMusic performs one music operation, absorbing failures. A player
// that reports not ready mutes the music concern for the whole session,
// with a single log line.
func (mgr *Manager) applyMusic(op musicOp) {
	if mgr.musicDown {
		return
	}
	var err error
	switch op {
	case musicStart:
		if !mgr.music.Ready() {
			mgr.musicDown = true
			mgr.logger.Printf("SessionManager: music player not ready, continuing without music")
			return
		}
		err = mgr.music.Start(mgr.opts.Music)
	case musicPause:
		err = mgr.music.Pause()
	case musicResume:
		err = mgr.music.Resume()
	case musicStop:
		err = mgr.music.Stop()
	case musicDuck:
		err = mgr.music.SetDuckLevel(mgr.opts.DuckLevel)
	case musicUnduck:
		err = mgr.music.SetDuckLevel(1.0)
	}
	if err != nil {
		mgr.logger.Printf("SessionManager: music %s failed: %v", op, err)
	}
}

// runLoop is the session goroutine: the single place ticks, voice events,
// and commands are folded into the machine
func (mgr *Manager) runLoop() {
	defer mgr.wg.Done()

	ticker := time.NewTicker(mgr.opts.TickInterval)
	ticker.Stop() // Start stopped, runs only while a session counts down

	for {
		select {
		case <-mgr.doneChan:
			ticker.Stop()
			mgr.logger.Printf("SessionManager: goroutine exiting")
			return

		case cmd := <-mgr.cmdChan:
			mgr.handleCommand(cmd, ticker)

		case speaking := <-mgr.voiceCh:
			mgr.exec(func(m *machine) effects { return m.voiceSpeaking(speaking) })

		case <-ticker.C:
			// Commands already queued outrank this tick: a pause that was
			// in flight when the tick fired must win.
			drained := false
			for !drained {
				select {
				case cmd := <-mgr.cmdChan:
					mgr.handleCommand(cmd, ticker)
				default:
					drained = true
				}
			}
			eff := mgr.exec(func(m *machine) effects { return m.tick() })
			if eff.summary != nil {
				ticker.Stop()
			}
		}
	}
}

func (mgr *Manager) handleCommand(cmd sessionCommand, ticker *time.Ticker) {
	switch cmd.kind {
	case cmdStart:
		eff := mgr.exec(func(m *machine) effects { return m.start(cmd.plan) })
		if eff.transition != nil {
			ticker.Reset(mgr.opts.TickInterval)
		}
	case cmdBegin:
		mgr.exec(func(m *machine) effects { return m.beginExercise() })
	case cmdPause:
		eff := mgr.exec(func(m *machine) effects { return m.pause() })
		if eff.transition != nil {
			ticker.Stop()
		}
	case cmdResume:
		eff := mgr.exec(func(m *machine) effects { return m.resume() })
		if eff.transition != nil {
			ticker.Reset(mgr.opts.TickInterval)
		}
	case cmdStop:
		ticker.Stop()
		mgr.exec(func(m *machine) effects { return m.stop() })
	case cmdAdjust:
		mgr.exec(func(m *machine) effects { return m.adjust(cmd.easier) })
	}
}
