package core

import (
	"errors"
)

var (
	ErrNoObject          = errors.New("no object provided")
	ErrMeshNoVertices    = errors.New("mesh has no vertices")
	ErrMeshNoFaces       = errors.New("mesh has no faces")
	ErrPipelineCancelled = errors.New("pipeline cancelled")
	ErrPipelineFinished  = errors.New("pipeline already finished")
)

// MessageLevel classifies messages collected during a generation run.
type MessageLevel uint8

const (
	LevelInfo MessageLevel = iota
	LevelWarning
	LevelError
)

func (l MessageLevel) String() string {
	switch l {
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

type Message struct {
	Level   MessageLevel
	Message string
}

// ErrorHandler accumulates leveled messages over a run so callers can
// report everything at the end instead of stopping at the first warning.
type ErrorHandler struct {
	messages []Message
}

func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

func (eh *ErrorHandler) Add(level MessageLevel, message string) {
	eh.messages = append(eh.messages, Message{Level: level, Message: message})
}

// HasErrors reports whether any collected message is level ERROR.
func (eh *ErrorHandler) HasErrors() bool {
	for _, m := range eh.messages {
		if m.Level == LevelError {
			return true
		}
	}
	return false
}

func (eh *ErrorHandler) Messages() []Message {
	return eh.messages
}

func (eh *ErrorHandler) Clear() {
	eh.messages = nil
}
