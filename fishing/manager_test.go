package fishing

import (
	"errors"
	"testing"
	"time"

	"gofish/process"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(mem *fakeProcess, finder *fakeFinder, input Injector, rec *recorder) *Manager {
	m := NewManager("Game.exe", testChain, finder, func(pid process.ProcessID) (process.Process, error) {
		return mem, nil
	}, input)
	m.Timings = fastTimings()
	m.Observer = rec
	return m
}

func waitDone(t *testing.T, h *Handle) {
	t.Helper()
	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("session did not finish")
	}
}

func TestStartSessionRunsToLimit(t *testing.T) {
	mem := &fakeProcess{script: biteScript}
	rec := &recorder{}
	input := &fakeInput{}
	m := newTestManager(mem, &fakeFinder{pid: 42, found: true}, input, rec)

	h, err := m.StartSession(Config{CastLimit: 3})
	require.NoError(t, err)
	assert.NotEmpty(t, h.ID)
	assert.Equal(t, process.ProcessID(42), h.PID)

	require.NoError(t, h.Wait())
	assert.Equal(t, 3, h.Stats().Casts)
	assert.Equal(t, 3, rec.count(EventCast))
	assert.Equal(t, 1, rec.count(EventFinished))
	assert.Equal(t, 1, mem.closeCount())

	assert.True(t, h.PollCompletion())
	assert.False(t, h.PollCompletion())
	assert.False(t, h.PollCompletion())
}

func TestPollCompletionIsNonBlocking(t *testing.T) {
	mem := &fakeProcess{script: []uint32{5}}
	m := newTestManager(mem, &fakeFinder{pid: 1, found: true}, &fakeInput{}, &recorder{})

	h, err := m.StartSession(Config{})
	require.NoError(t, err)
	assert.False(t, h.PollCompletion())

	m.StopSession(h)
	waitDone(t, h)
	assert.True(t, h.PollCompletion())
	assert.False(t, h.PollCompletion())
}

func TestStopSessionIsIdempotent(t *testing.T) {
	mem := &fakeProcess{script: []uint32{5}}
	rec := &recorder{}
	input := &fakeInput{}
	m := newTestManager(mem, &fakeFinder{pid: 1, found: true}, input, rec)

	h, err := m.StartSession(Config{})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return rec.count(EventSample) > 0 }, 5*time.Second, time.Millisecond)
	m.StopSession(h)
	m.StopSession(h)
	waitDone(t, h)
	m.StopSession(h)
	m.StopSession(nil)

	casts := input.triggers()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, casts, input.triggers())
	assert.NoError(t, h.Err())
	assert.Equal(t, 1, rec.count(EventFinished))
	assert.Equal(t, 1, mem.closeCount())
}

func TestStartSessionProcessNotRunning(t *testing.T) {
	m := newTestManager(&fakeProcess{}, &fakeFinder{}, &fakeInput{}, &recorder{})

	_, err := m.StartSession(Config{})
	assert.ErrorIs(t, err, process.ErrProcessNotFound)

	m.Finder = &fakeFinder{err: errors.New("boom")}
	_, err = m.StartSession(Config{})
	assert.EqualError(t, err, "find Game.exe: boom")
}

func TestStartSessionOpenFails(t *testing.T) {
	m := newTestManager(&fakeProcess{}, &fakeFinder{pid: 7, found: true}, &fakeInput{}, &recorder{})
	m.Open = func(pid process.ProcessID) (process.Process, error) {
		return nil, process.ErrProcessOpen
	}

	_, err := m.StartSession(Config{})
	assert.ErrorIs(t, err, process.ErrProcessOpen)
}

func TestStartSessionSetupFailsClosesProcess(t *testing.T) {
	mem := &fakeProcess{noChain: true}
	m := newTestManager(mem, &fakeFinder{pid: 7, found: true}, &fakeInput{}, &recorder{})

	_, err := m.StartSession(Config{})
	assert.ErrorIs(t, err, ErrSetupFailed)
	assert.Equal(t, 1, mem.closeCount())
}

func TestStartSessionRejectsInvalidConfig(t *testing.T) {
	m := newTestManager(&fakeProcess{}, &fakeFinder{pid: 7, found: true}, &fakeInput{}, &recorder{})

	_, err := m.StartSession(Config{CastLimit: -2})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSessionEndsWhenTargetDies(t *testing.T) {
	mem := &fakeProcess{readErr: errors.New("gone")}
	finder := &fakeFinder{pid: 7, found: true, dead: true}
	m := newTestManager(mem, finder, &fakeInput{}, &recorder{})

	h, err := m.StartSession(Config{})
	require.NoError(t, err)
	waitDone(t, h)

	assert.ErrorIs(t, h.Err(), ErrTargetExited)
	assert.True(t, h.PollCompletion())
}
