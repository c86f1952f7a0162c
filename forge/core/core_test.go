package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	eh := NewErrorHandler()
	assert.False(t, eh.HasErrors())

	eh.Add(LevelInfo, "starting")
	eh.Add(LevelWarning, "mesh is not manifold")
	assert.False(t, eh.HasErrors())

	eh.Add(LevelError, "boolean solver failed")
	assert.True(t, eh.HasErrors())
	assert.Len(t, eh.Messages(), 3)

	eh.Clear()
	assert.False(t, eh.HasErrors())
	assert.Empty(t, eh.Messages())
}

func TestMessageLevelString(t *testing.T) {
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARNING", LevelWarning.String())
	assert.Equal(t, "ERROR", LevelError.String())
}

func TestClock(t *testing.T) {
	c := NewClock()

	// Non-started clocks do not accumulate time.
	c.Update()
	assert.Equal(t, time.Duration(0), c.Elapsed())

	c.Start()
	time.Sleep(5 * time.Millisecond)
	c.Update()
	assert.Greater(t, c.Elapsed(), time.Duration(0))
	assert.Greater(t, c.ElapsedMS(), 0.0)

	c.Stop()
	elapsed := c.Elapsed()
	c.Update()
	assert.Equal(t, elapsed, c.Elapsed())
}

func TestIdentifierSlotReuse(t *testing.T) {
	ownerA, ownerB := "a", "b"
	idA := IdentifierAcquireNewID(ownerA)
	idB := IdentifierAcquireNewID(ownerB)
	assert.NotEqual(t, idA, idB)

	require.NoError(t, IdentifierReleaseID(idA))
	idC := IdentifierAcquireNewID("c")
	assert.Equal(t, idA, idC)
	require.NoError(t, IdentifierReleaseID(idB))
	require.NoError(t, IdentifierReleaseID(idC))
}

func TestIdentifierReleaseOutOfRange(t *testing.T) {
	IdentifierAcquireNewID("x")
	assert.Error(t, IdentifierReleaseID(1 << 30))
}

func TestNewRunIDUnique(t *testing.T) {
	a := NewRunID()
	b := NewRunID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestEventRegisterFireUnregister(t *testing.T) {
	EventInitialize()

	listener := &struct{ hits int }{}
	cb := func(code SystemEventCode, sender interface{}, listenerInst interface{}, data EventContext) bool {
		listener.hits++
		return true
	}

	require.True(t, EventRegister(EVENT_CODE_STAGE_STARTED, listener, cb))
	// Duplicate listener registration is rejected.
	assert.False(t, EventRegister(EVENT_CODE_STAGE_STARTED, listener, cb))

	assert.True(t, EventFire(EVENT_CODE_STAGE_STARTED, nil, EventContext{StageName: "test"}))
	assert.Equal(t, 1, listener.hits)

	require.True(t, EventUnregister(EVENT_CODE_STAGE_STARTED, listener, cb))
	assert.False(t, EventFire(EVENT_CODE_STAGE_STARTED, nil, EventContext{}))
	assert.Equal(t, 1, listener.hits)
}

func TestEventHandledStopsPropagation(t *testing.T) {
	EventInitialize()

	first := &struct{ id int }{1}
	second := &struct{ id int }{2}
	secondCalled := false

	cbFirst := func(code SystemEventCode, sender interface{}, listenerInst interface{}, data EventContext) bool {
		return true
	}
	cbSecond := func(code SystemEventCode, sender interface{}, listenerInst interface{}, data EventContext) bool {
		secondCalled = true
		return false
	}

	require.True(t, EventRegister(EVENT_CODE_STAGE_FAILED, first, cbFirst))
	require.True(t, EventRegister(EVENT_CODE_STAGE_FAILED, second, cbSecond))
	defer EventUnregister(EVENT_CODE_STAGE_FAILED, first, cbFirst)
	defer EventUnregister(EVENT_CODE_STAGE_FAILED, second, cbSecond)

	assert.True(t, EventFire(EVENT_CODE_STAGE_FAILED, nil, EventContext{}))
	assert.False(t, secondCalled)
}

func TestMetricsRecordsStages(t *testing.T) {
	require.NoError(t, MetricsInitialize())

	before := MetricsStagesRun()
	MetricsRecordStage("Remesh_Cleanup", 4.0)
	MetricsRecordStage("Remesh_Cleanup", 6.0)

	total, count := MetricsStageTotal("Remesh_Cleanup")
	assert.GreaterOrEqual(t, total, 10.0)
	assert.GreaterOrEqual(t, count, int64(2))
	assert.Equal(t, before+2, MetricsStagesRun())
}
