package modifiers

import (
	"fmt"
	"sync"

	"github.com/ruakij/shellforge/forge/core"
)

// Applied is one executed (or kept) modifier, recorded for plan output.
type Applied struct {
	ObjectName string
	Modifier   *Modifier
	Kept       bool
}

// Recorder is an Applier that performs no geometry work. It validates the
// configs, logs them, and keeps an ordered record so a dry run can print the
// exact stack the host would execute. With KeepModifiers set it mirrors the
// debugging mode where modifiers stay visible instead of being applied.
type Recorder struct {
	mu            sync.Mutex
	KeepModifiers bool
	applied       []Applied
}

func NewRecorder(keepModifiers bool) *Recorder {
	return &Recorder{KeepModifiers: keepModifiers}
}

func (r *Recorder) Apply(stack *Stack) error {
	if stack == nil || stack.Object == nil {
		return core.ErrNoObject
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range stack.Modifiers {
		if err := validate(m); err != nil {
			return fmt.Errorf("modifier %q on %q: %w", m.Name, stack.Object.Name, err)
		}
		if r.KeepModifiers {
			core.LogInfo("Keeping modifier '%s' visible (debug mode)", m.Name)
		}
		r.applied = append(r.applied, Applied{
			ObjectName: stack.Object.Name,
			Modifier:   m,
			Kept:       r.KeepModifiers,
		})
	}
	if !r.KeepModifiers {
		stack.Modifiers = nil
	}
	return nil
}

// Log returns the applied modifiers in execution order.
func (r *Recorder) Log() []Applied {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Applied, len(r.applied))
	copy(out, r.applied)
	return out
}

func validate(m *Modifier) error {
	switch m.Kind {
	case KindSolidify:
		if m.Solidify == nil || m.Solidify.Thickness <= 0 {
			return fmt.Errorf("solidify thickness must be positive")
		}
	case KindRemesh:
		if m.Remesh == nil || m.Remesh.VoxelSize <= 0 {
			return fmt.Errorf("remesh voxel size must be positive")
		}
	case KindBoolean:
		if m.Boolean == nil || m.Boolean.Target == nil {
			return fmt.Errorf("boolean modifier needs a target object")
		}
	}
	return nil
}
