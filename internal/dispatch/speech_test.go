package dispatch

import (
	"bytes"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweatcue/coach/internal/session"
)

// syncBuffer lets tests read the log while timer goroutines write it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// newTestSpeech uses a speaking rate fast enough that utterances resolve
// in roughly the lead time.
func newTestSpeech(t *testing.T) (*ConsoleSpeech, *syncBuffer) {
	t.Helper()
	buf := &syncBuffer{}
	cs := NewConsoleSpeech(log.New(buf, "", 0), 5000)
	t.Cleanup(cs.Stop)
	return cs, buf
}

func nextEdge(t *testing.T, ch <-chan bool) bool {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for speaking edge")
		return false
	}
}

func assertNoEdge(t *testing.T, ch <-chan bool) {
	t.Helper()
	select {
	case v := <-ch:
		t.Fatalf("unexpected speaking edge %t", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNewConsoleSpeech_NilLoggerPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewConsoleSpeech(nil, 10)
	})
}

func TestNewConsoleSpeech_DefaultRate(t *testing.T) {
	cs := NewConsoleSpeech(log.New(&syncBuffer{}, "", 0), 0)
	assert.Equal(t, defaultCharsPerSec, cs.rate)
}

func TestConsoleSpeech_SpeakPublishesEdgePair(t *testing.T) {
	cs, buf := newTestSpeech(t)
	ch := make(chan bool, 8)
	cancel := cs.ListenSpeaking(ch)
	defer cancel()

	err := cs.Speak(session.VoiceCue{ID: "cue-a", Text: "push"})
	require.NoError(t, err)

	assert.True(t, nextEdge(t, ch))
	assert.False(t, nextEdge(t, ch))
	assert.Contains(t, buf.String(), "cue-a")
	assert.Contains(t, buf.String(), "finished speaking")
}

func TestConsoleSpeech_QueuedCuesShareOneEdgePair(t *testing.T) {
	cs, buf := newTestSpeech(t)
	ch := make(chan bool, 8)
	cancel := cs.ListenSpeaking(ch)
	defer cancel()

	require.NoError(t, cs.Speak(session.VoiceCue{ID: "cue-a", Text: "ten seconds left"}))
	require.NoError(t, cs.Speak(session.VoiceCue{ID: "cue-b", Text: "switch sides"}))

	assert.True(t, nextEdge(t, ch))
	assert.False(t, nextEdge(t, ch))
	assertNoEdge(t, ch)

	log := buf.String()
	assert.Contains(t, log, "cue-a")
	assert.Contains(t, log, "queued cue cue-b")
}

func TestConsoleSpeech_StopInterrupts(t *testing.T) {
	buf := &syncBuffer{}
	// One char per second, so the cue would speak for a long time.
	cs := NewConsoleSpeech(log.New(buf, "", 0), 1)
	ch := make(chan bool, 8)
	cancel := cs.ListenSpeaking(ch)
	defer cancel()

	require.NoError(t, cs.Speak(session.VoiceCue{ID: "cue-long", Text: "keep that core tight"}))
	assert.True(t, nextEdge(t, ch))

	cs.Stop()
	assert.False(t, nextEdge(t, ch))
	assertNoEdge(t, ch)
	assert.Contains(t, buf.String(), "interrupted")
}

func TestConsoleSpeech_StopWhenSilent(t *testing.T) {
	cs, _ := newTestSpeech(t)
	ch := make(chan bool, 8)
	cancel := cs.ListenSpeaking(ch)
	defer cancel()

	cs.Stop()
	assertNoEdge(t, ch)
}

func TestMutedVoice_PulsesSpeakingState(t *testing.T) {
	buf := &syncBuffer{}
	mv := NewMutedVoice(log.New(buf, "", 0))
	ch := make(chan bool, 8)
	cancel := mv.ListenSpeaking(ch)
	defer cancel()

	require.NoError(t, mv.Speak(session.VoiceCue{ID: "cue-a", Text: "push"}))

	assert.True(t, nextEdge(t, ch))
	assert.False(t, nextEdge(t, ch))
	assert.True(t, strings.Contains(buf.String(), "dropping cue cue-a"))

	mv.Stop()
	assertNoEdge(t, ch)
}

func TestNewMutedVoice_NilLoggerPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewMutedVoice(nil)
	})
}
