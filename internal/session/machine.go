package session

import (
	"log"
	"time"

	"github.com/google/uuid"
)

// musicOp is one music-player action the runtime should perform
type musicOp int

const (
	musicStart musicOp = iota
	musicPause
	musicResume
	musicStop
	musicDuck   // Lower volume while voice speaks
	musicUnduck // Restore volume after speech
)

func (op musicOp) String() string {
	switch op {
	case musicStart:
		return "start"
	case musicPause:
		return "pause"
	case musicResume:
		return "resume"
	case musicStop:
		return "stop"
	case musicDuck:
		return "duck"
	case musicUnduck:
		return "unduck"
	default:
		return "unknown"
	}
}

// effects lists the side effects one input produced. The machine never
// touches dispatch itself; the Manager executes these outside the lock.
type effects struct {
	music      []musicOp
	speak      []VoiceCue
	stopVoice  bool
	transition *Transition
	summary    *SessionSummary
}

// machine is the session state machine proper. It is pure state plus
// transition rules: no goroutines, no locks, no dispatch calls. The
// Manager owns one and serializes every input into it.
type machine struct {
	logger *log.Logger

	plan      *WorkoutPlan
	sessionID string

	phase          Phase
	pausedPhase    Phase
	exerciseIndex  int
	remaining      int // Seconds left in the counting phase
	phaseTotal     int // Scaled length of the counting phase
	completedCount int
	intensity      IntensityLevel
	startedAt      *time.Time

	// Cue bookkeeping for the current work phase
	script []VoiceCue
	fired  map[string]bool

	// Voice/music side state
	speaking     bool
	sawIntro     bool // Intro speech was observed starting
	introDone    bool // Intro speech was observed finishing
	musicStarted bool

	describeTimeout int
	summaryDone     bool

	now func() time.Time
}

func newMachine(logger *log.Logger, describeTimeout int, initial IntensityLevel) *machine {
	if describeTimeout <= 0 {
		describeTimeout = DefaultDescribeTimeoutSeconds
	}
	if _, ok := GetIntensityInfo(initial); !ok {
		initial = DefaultIntensity
	}
	return &machine{
		logger:          logger,
		phase:           PhaseNotStarted,
		intensity:       initial,
		describeTimeout: describeTimeout,
		now:             time.Now,
	}
}

// start accepts the plan and begins the intro narration. The caller is
// expected to have validated the plan already; an invalid plan or wrong
// phase is rejected here as a logged no-op.
func (m *machine) start(plan *WorkoutPlan) effects {
	if m.phase != PhaseNotStarted {
		m.logger.Printf("SessionManager: ignoring start in phase %s", m.phase)
		return effects{}
	}
	if plan == nil || plan.Validate() != nil {
		m.logger.Printf("SessionManager: ignoring start with invalid plan")
		return effects{}
	}

	m.plan = plan
	m.sessionID = uuid.NewString()
	m.phase = PhaseDescribing
	m.remaining = m.describeTimeout
	m.phaseTotal = m.describeTimeout

	m.logger.Printf("SessionManager: session %s started on plan %q (%d exercises)",
		m.sessionID, plan.Name, len(plan.Exercises))

	return effects{
		speak:      []VoiceCue{CompileIntro(plan, m.intensity)},
		transition: &Transition{From: PhaseNotStarted, To: PhaseDescribing, ExerciseIndex: 0},
	}
}

// beginExercise is the user's ready signal: the only way into Exercising
func (m *machine) beginExercise() effects {
	if m.phase != PhaseAwaitingReady {
		m.logger.Printf("SessionManager: ignoring ready signal in phase %s", m.phase)
		return effects{}
	}
	ex, ok := m.currentExercise()
	if !ok {
		m.logger.Printf("SessionManager: ready signal past final exercise, ignoring")
		return effects{}
	}

	if m.startedAt == nil {
		t := m.now()
		m.startedAt = &t
	}

	from := m.phase
	m.phase = PhaseExercising
	m.phaseTotal = ScaledWorkSeconds(ex, m.intensity)
	m.remaining = m.phaseTotal
	m.script = CompileScript(m.plan, m.exerciseIndex, m.intensity)
	m.fired = make(map[string]bool)

	eff := effects{
		transition: &Transition{From: from, To: PhaseExercising, ExerciseIndex: m.exerciseIndex},
	}
	if !m.musicStarted {
		m.musicStarted = true
		eff.music = append(eff.music, musicStart)
	}
	eff.speak = m.dueCues()

	m.logger.Printf("SessionManager: exercise %d/%d %q underway, %ds work",
		m.exerciseIndex+1, len(m.plan.Exercises), ex.Name, m.phaseTotal)
	return eff
}

// tick advances the counting phase by one second. At most one phase
// transition happens per tick; a zero rest never enters Resting at all, so
// there is nothing to cascade through.
func (m *machine) tick() effects {
	switch m.phase {
	case PhaseDescribing:
		if m.remaining > 0 {
			m.remaining--
		}
		if m.remaining == 0 {
			m.logger.Printf("SessionManager: describe window elapsed without voice completion")
			return m.toAwaitingReady(PhaseDescribing)
		}
		return effects{}

	case PhaseExercising:
		if m.remaining > 0 {
			m.remaining--
		}
		eff := effects{speak: m.dueCues()}
		if m.remaining == 0 {
			finish := m.finishWork()
			eff.music = append(eff.music, finish.music...)
			eff.speak = append(eff.speak, finish.speak...)
			eff.transition = finish.transition
			eff.summary = finish.summary
		}
		return eff

	case PhaseResting:
		if m.remaining > 0 {
			m.remaining--
		}
		if m.remaining == 0 {
			return m.advanceExercise()
		}
		return effects{}

	default:
		// NotStarted, AwaitingReady, Paused, Completed: time does not move.
		return effects{}
	}
}

// finishWork handles a work countdown reaching zero: count it, then either
// complete the workout, rest, or line up the next exercise
func (m *machine) finishWork() effects {
	m.completedCount++

	ex, _ := m.currentExercise()
	if m.exerciseIndex == len(m.plan.Exercises)-1 {
		// Trailing rest is skipped: the last work phase ends the workout.
		return m.complete(false)
	}

	rest := ScaledRestSeconds(ex, m.intensity)
	if rest == 0 {
		return m.advanceExercise()
	}

	from := m.phase
	m.phase = PhaseResting
	m.phaseTotal = rest
	m.remaining = rest
	m.logger.Printf("SessionManager: resting %ds after %q", rest, ex.Name)
	return effects{transition: &Transition{From: from, To: PhaseResting, ExerciseIndex: m.exerciseIndex}}
}

// advanceExercise moves to the next exercise's ready gate
func (m *machine) advanceExercise() effects {
	if m.exerciseIndex+1 >= len(m.plan.Exercises) {
		// Unreachable while trailing rest is skipped; kept as a guard.
		return m.complete(false)
	}
	m.exerciseIndex++
	return m.toAwaitingReady(m.phase)
}

// toAwaitingReady parks the session at the ready gate for the current
// exercise, previewing its scaled work length in the countdown field
func (m *machine) toAwaitingReady(from Phase) effects {
	m.phase = PhaseAwaitingReady
	if ex, ok := m.currentExercise(); ok {
		m.phaseTotal = ScaledWorkSeconds(ex, m.intensity)
		m.remaining = m.phaseTotal
	} else {
		m.phaseTotal = 0
		m.remaining = 0
	}
	return effects{transition: &Transition{From: from, To: PhaseAwaitingReady, ExerciseIndex: m.exerciseIndex}}
}

// pause freezes any active phase
func (m *machine) pause() effects {
	if !m.phase.IsActive() {
		m.logger.Printf("SessionManager: ignoring pause in phase %s", m.phase)
		return effects{}
	}
	from := m.phase
	m.pausedPhase = m.phase
	m.phase = PhasePaused
	eff := effects{transition: &Transition{From: from, To: PhasePaused, ExerciseIndex: m.exerciseIndex}}
	if m.musicStarted {
		eff.music = append(eff.music, musicPause)
	}
	m.logger.Printf("SessionManager: paused in %s with %ds remaining", from, m.remaining)
	return eff
}

// resume restores the frozen phase verbatim
func (m *machine) resume() effects {
	if m.phase != PhasePaused {
		m.logger.Printf("SessionManager: ignoring resume in phase %s", m.phase)
		return effects{}
	}

	restored := m.pausedPhase
	if restored == PhaseDescribing && m.introDone {
		// Intro speech finished while frozen; no reason to sit through the
		// describe window again.
		eff := m.toAwaitingReady(PhasePaused)
		if m.musicStarted {
			eff.music = append(eff.music, musicResume)
		}
		return eff
	}

	m.phase = restored
	eff := effects{transition: &Transition{From: PhasePaused, To: restored, ExerciseIndex: m.exerciseIndex}}
	if m.musicStarted {
		eff.music = append(eff.music, musicResume)
	}
	m.logger.Printf("SessionManager: resumed into %s with %ds remaining", restored, m.remaining)
	return eff
}

// stop aborts from any phase. Always valid; only a finished session
// ignores it.
func (m *machine) stop() effects {
	if m.phase == PhaseCompleted {
		m.logger.Printf("SessionManager: ignoring stop, session already completed")
		return effects{}
	}
	if m.plan != nil {
		m.logger.Printf("SessionManager: stopping early, %d/%d exercises completed",
			m.completedCount, len(m.plan.Exercises))
	}
	return m.complete(true)
}

// adjust moves the intensity one step and rescales the remaining portion
// of the counting phase by the flat factor ratio
func (m *machine) adjust(easier bool) effects {
	if m.phase == PhaseNotStarted || m.phase == PhaseCompleted {
		m.logger.Printf("SessionManager: ignoring intensity change in phase %s", m.phase)
		return effects{}
	}

	old := m.intensity
	next := AdjustLevel(old, easier)
	if next == old {
		m.logger.Printf("SessionManager: intensity already at %s, no change", old)
		return effects{}
	}
	m.intensity = next

	effPhase := m.phase
	if m.phase == PhasePaused {
		effPhase = m.pausedPhase
	}

	switch effPhase {
	case PhaseExercising:
		ex, _ := m.currentExercise()
		m.remaining = RescaleRemaining(m.remaining, PhaseExercising, old, next)
		m.phaseTotal = ScaledWorkSeconds(ex, next)
		if m.remaining > m.phaseTotal {
			m.phaseTotal = m.remaining
		}
		m.rebuildScript()
	case PhaseResting:
		ex, _ := m.currentExercise()
		m.remaining = RescaleRemaining(m.remaining, PhaseResting, old, next)
		m.phaseTotal = ScaledRestSeconds(ex, next)
		if m.remaining > m.phaseTotal {
			m.phaseTotal = m.remaining
		}
	case PhaseAwaitingReady:
		// Refresh the preview so the gate shows the new work length.
		if ex, ok := m.currentExercise(); ok {
			m.phaseTotal = ScaledWorkSeconds(ex, next)
			m.remaining = m.phaseTotal
		}
	}

	m.logger.Printf("SessionManager: intensity %s -> %s, %ds remaining in %s",
		old, next, m.remaining, effPhase)
	return effects{}
}

// rebuildScript recompiles the work-phase cues at the current intensity.
// Cues already spoken stay spoken; cues whose new offset has already
// passed are dropped rather than spoken late.
func (m *machine) rebuildScript() {
	m.script = CompileScript(m.plan, m.exerciseIndex, m.intensity)
	elapsed := m.elapsedInPhase()
	for _, c := range m.script {
		if !m.fired[c.ID] && c.OffsetSeconds < elapsed {
			m.fired[c.ID] = true
		}
	}
}

// voiceSpeaking folds a speaking-state change into the machine: ducking
// around speech, and the event-driven exit from Describing on the falling
// edge of the intro narration.
func (m *machine) voiceSpeaking(isSpeaking bool) effects {
	eff := effects{}

	if isSpeaking {
		if !m.speaking {
			m.speaking = true
			if m.phase == PhaseDescribing || (m.phase == PhasePaused && m.pausedPhase == PhaseDescribing) {
				m.sawIntro = true
			}
			if m.musicStarted {
				eff.music = append(eff.music, musicDuck)
			}
		}
		return eff
	}

	if !m.speaking {
		return eff
	}
	m.speaking = false
	if m.musicStarted {
		eff.music = append(eff.music, musicUnduck)
	}
	if m.sawIntro && !m.introDone {
		m.introDone = true
		if m.phase == PhaseDescribing {
			exit := m.toAwaitingReady(PhaseDescribing)
			eff.transition = exit.transition
		}
	}
	return eff
}

// speakFailed reacts to a cue that could not even be queued. Losing the
// intro must not strand the session in Describing.
func (m *machine) speakFailed(cueID string) effects {
	if m.phase == PhaseDescribing && cueID == "intro" {
		m.logger.Printf("SessionManager: intro cue failed, skipping describe phase")
		return m.toAwaitingReady(PhaseDescribing)
	}
	return effects{}
}

// complete enters the terminal phase and builds the summary exactly once
func (m *machine) complete(aborted bool) effects {
	from := m.phase
	m.phase = PhaseCompleted
	m.remaining = 0

	eff := effects{
		transition: &Transition{From: from, To: PhaseCompleted, ExerciseIndex: m.exerciseIndex},
	}
	if m.musicStarted {
		eff.music = append(eff.music, musicStop)
	}
	if aborted {
		eff.stopVoice = true
	}
	if !m.summaryDone {
		m.summaryDone = true
		s := buildSummary(m.sessionID, m.plan, m.startedAt, m.completedCount, m.intensity, aborted, m.now())
		eff.summary = &s
	}

	total := 0
	if m.plan != nil {
		total = len(m.plan.Exercises)
	}
	m.logger.Printf("SessionManager: completed (aborted=%v), %d/%d exercises",
		aborted, m.completedCount, total)
	return eff
}

// dueCues returns, in script order, the unfired cues whose offset the
// phase has reached, marking them fired
func (m *machine) dueCues() []VoiceCue {
	if len(m.script) == 0 {
		return nil
	}
	elapsed := m.elapsedInPhase()
	var due []VoiceCue
	for _, c := range m.script {
		if !m.fired[c.ID] && c.OffsetSeconds <= elapsed {
			m.fired[c.ID] = true
			due = append(due, c)
		}
	}
	return due
}

func (m *machine) elapsedInPhase() int {
	elapsed := m.phaseTotal - m.remaining
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

func (m *machine) currentExercise() (ExerciseSpec, bool) {
	if m.plan == nil || m.exerciseIndex < 0 || m.exerciseIndex >= len(m.plan.Exercises) {
		return ExerciseSpec{}, false
	}
	return m.plan.Exercises[m.exerciseIndex], true
}

// snapshot builds the externally visible view of the current state
func (m *machine) snapshot() Snapshot {
	s := Snapshot{
		Phase:            m.phase,
		PausedPhase:      m.pausedPhase,
		ExerciseIndex:    m.exerciseIndex,
		RemainingSeconds: m.remaining,
		CompletedCount:   m.completedCount,
		Intensity:        m.intensity,
	}
	if m.plan != nil {
		s.PlanName = m.plan.Name
		s.ExerciseTotal = len(m.plan.Exercises)
		if ex, ok := m.currentExercise(); ok {
			s.ExerciseName = ex.Name
		}
	}
	return s
}
