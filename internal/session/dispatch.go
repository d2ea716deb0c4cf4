package session

// TrackSelection tells the music player what to put on
type TrackSelection struct {
	Playlist string
	Shuffle  bool
}

// VoiceDispatch speaks one cue at a time. Speak returns as soon as speech
// is queued; actual start/finish arrives as speaking-state changes on the
// listener channels (true when speech starts, false when it ends). The
// runtime drives the Describing exit off the falling edge.
type VoiceDispatch interface {
	Speak(cue VoiceCue) error
	ListenSpeaking(ch chan<- bool) func()
	Stop()
}

// MusicDispatch controls background playback. Calls are fire-and-forget
// from the session's point of view; errors are absorbed and logged, never
// fatal. A player that reports !Ready() (account not linked, provider
// down) simply mutes the whole music concern for the session.
type MusicDispatch interface {
	Ready() bool
	Start(sel TrackSelection) error
	Pause() error
	Resume() error
	Stop() error
	SetDuckLevel(level float64) error
}

// SummaryRecorder receives the summary exactly once per session, at the
// transition into Completed. Implementations persist it however they like;
// the session has no knowledge of the storage format.
type SummaryRecorder interface {
	Record(summary SessionSummary) error
}
