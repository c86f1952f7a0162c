package core

import "sync"

// EventContext carries the payload fired alongside an event code.
// For pipeline events the progress fields are filled in; consumers
// should only read the fields documented for the code they listen to.
type EventContext struct {
	// Name of the stage the event refers to, if any.
	StageName string
	// One-based index of the stage within the pipeline.
	StageIndex int
	// Total number of stages in the pipeline.
	StageCount int
	// Overall completion in percent, 0-100.
	Progress int
	// Failure cause for EVENT_CODE_STAGE_FAILED.
	Err error
}

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// A pipeline began executing its stage list.
	EVENT_CODE_PIPELINE_STARTED SystemEventCode = 0x01

	// A single stage started. StageName/StageIndex/StageCount are set.
	EVENT_CODE_STAGE_STARTED SystemEventCode = 0x02

	// A single stage completed. Progress reflects the new cursor position.
	EVENT_CODE_STAGE_COMPLETED SystemEventCode = 0x03

	// A stage returned an error and the pipeline aborted. Err is set.
	EVENT_CODE_STAGE_FAILED SystemEventCode = 0x04

	// All stages completed. Progress is 100.
	EVENT_CODE_PIPELINE_COMPLETED SystemEventCode = 0x05

	// The caller's context was cancelled between stages.
	EVENT_CODE_PIPELINE_CANCELLED SystemEventCode = 0x06

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

// This should be more than enough codes...
const MAX_MESSAGE_CODES = 1024

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

type eventCodeEntry struct {
	events []*registeredEvent
}

// State structure.
type eventSystemState struct {
	mu sync.RWMutex
	// Lookup table for event codes.
	registered [MAX_MESSAGE_CODES]eventCodeEntry
}

var onceEvent sync.Once
var isInitialized bool = false
var eventState *eventSystemState = nil

// Should return true if handled.
type FnOnEvent func(code SystemEventCode, sender interface{}, listenerInst interface{}, data EventContext) bool

func EventInitialize() bool {
	if isInitialized {
		return false
	}
	onceEvent.Do(func() {
		eventState = &eventSystemState{}
	})
	isInitialized = true
	return true
}

func EventShutdown() error {
	if eventState == nil {
		return nil
	}
	eventState.mu.Lock()
	defer eventState.mu.Unlock()
	// Free the events arrays. Any objects pointed to should be destroyed on their own.
	for i := 0; i < MAX_MESSAGE_CODES; i++ {
		eventState.registered[i].events = nil
	}
	return nil
}

// Register to listen for when events are sent with the provided code. Events with duplicate
// listener/callback combos will not be registered again and will cause this to return false.
func EventRegister(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	if !isInitialized {
		return false
	}
	eventState.mu.Lock()
	defer eventState.mu.Unlock()
	for _, e := range eventState.registered[code].events {
		if e.listener == listener {
			return false
		}
	}
	// If at this point, no duplicate was found. Proceed with registration.
	event := &registeredEvent{
		listener: listener,
		callback: onEvent,
	}
	eventState.registered[code].events = append(eventState.registered[code].events, event)
	return true
}

// Unregister from listening for when events are sent with the provided code. If no matching
// registration is found, this function returns false.
func EventUnregister(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	if !isInitialized {
		return false
	}
	eventState.mu.Lock()
	defer eventState.mu.Unlock()
	events := eventState.registered[code].events
	for i, e := range events {
		if e.listener == listener && e.callback != nil {
			eventState.registered[code].events = append(events[:i], events[i+1:]...)
			return true
		}
	}
	// Not found.
	return false
}

// EventFire fires an event to listeners of the given code. If an event handler returns
// true, the event is considered handled and is not passed on to any more listeners.
func EventFire(code SystemEventCode, sender interface{}, data EventContext) bool {
	if !isInitialized {
		return false
	}
	eventState.mu.RLock()
	events := make([]*registeredEvent, len(eventState.registered[code].events))
	copy(events, eventState.registered[code].events)
	eventState.mu.RUnlock()

	for _, e := range events {
		if e.callback(code, sender, e.listener, data) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	// Not found.
	return false
}
