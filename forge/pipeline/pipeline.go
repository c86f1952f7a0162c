package pipeline

import (
	gocontext "context"
	"fmt"

	"github.com/ruakij/shellforge/forge/containers"
	"github.com/ruakij/shellforge/forge/core"
)

const progressBufferSize = 64

// Pipeline drives an ordered stage list over a shared Context: a cursor, an
// external scheduler calling Step (or Run as the trivial scheduler), progress
// events after every transition.
type Pipeline struct {
	stages   []Stage
	cursor   int
	ctx      *Context
	clock    *core.Clock
	progress *containers.RingQueue[core.EventContext]
	finished bool
}

func New(stages []Stage, ctx *Context) *Pipeline {
	return &Pipeline{
		stages:   stages,
		ctx:      ctx,
		clock:    core.NewClock(),
		progress: containers.NewRingQueue[core.EventContext](progressBufferSize),
	}
}

// Context exposes the run context for inspecting results after completion.
func (p *Pipeline) Context() *Context {
	return p.ctx
}

// StageCount returns the number of stages.
func (p *Pipeline) StageCount() int {
	return len(p.stages)
}

// Progress returns overall completion in percent.
func (p *Pipeline) Progress() int {
	if len(p.stages) == 0 {
		return 100
	}
	return p.cursor * 100 / len(p.stages)
}

// DrainProgress pops buffered progress updates for consumers that poll
// between ticks instead of registering event callbacks.
func (p *Pipeline) DrainProgress() []core.EventContext {
	var out []core.EventContext
	for {
		ec, err := p.progress.Dequeue()
		if err != nil {
			return out
		}
		out = append(out, ec)
	}
}

func (p *Pipeline) publish(code core.SystemEventCode, data core.EventContext) {
	if p.progress.IsFull() {
		// Drop the oldest update rather than block the pipeline.
		_, _ = p.progress.Dequeue()
	}
	_ = p.progress.Enqueue(data)
	core.EventFire(code, p, data)
}

// Step executes the next stage. Returns true when the pipeline has finished.
// The external scheduler is expected to keep calling Step until done; sc
// cancellation is honored between stages, never mid-stage.
func (p *Pipeline) Step(sc gocontext.Context) (bool, error) {
	if p.finished {
		return true, core.ErrPipelineFinished
	}
	if len(p.stages) == 0 {
		// Nothing to do. Complete immediately, matching Progress().
		p.finished = true
		p.ctx.release()
		p.publish(core.EVENT_CODE_PIPELINE_COMPLETED, core.EventContext{
			Progress: 100,
		})
		return true, nil
	}
	if err := sc.Err(); err != nil {
		p.finished = true
		p.ctx.release()
		p.publish(core.EVENT_CODE_PIPELINE_CANCELLED, core.EventContext{
			StageIndex: p.cursor,
			StageCount: len(p.stages),
			Progress:   p.Progress(),
		})
		return true, fmt.Errorf("%w: %v", core.ErrPipelineCancelled, err)
	}

	if p.cursor == 0 {
		p.publish(core.EVENT_CODE_PIPELINE_STARTED, core.EventContext{
			StageCount: len(p.stages),
		})
	}

	stage := p.stages[p.cursor]
	index := p.cursor + 1

	p.publish(core.EVENT_CODE_STAGE_STARTED, core.EventContext{
		StageName:  stage.Name,
		StageIndex: index,
		StageCount: len(p.stages),
		Progress:   p.Progress(),
	})
	core.LogInfo("[%d%%] Step %d/%d: %s...", index*100/len(p.stages), index, len(p.stages), stage.Name)

	p.clock.Start()
	err := stage.Run(p.ctx)
	p.clock.Update()
	core.MetricsRecordStage(stage.Name, p.clock.ElapsedMS())

	if err != nil {
		p.finished = true
		p.ctx.release()
		wrapped := fmt.Errorf("stage %q: %w", stage.Name, err)
		p.ctx.Errors.Add(core.LevelError, wrapped.Error())
		p.publish(core.EVENT_CODE_STAGE_FAILED, core.EventContext{
			StageName:  stage.Name,
			StageIndex: index,
			StageCount: len(p.stages),
			Progress:   p.Progress(),
			Err:        wrapped,
		})
		return true, wrapped
	}

	p.cursor++
	p.publish(core.EVENT_CODE_STAGE_COMPLETED, core.EventContext{
		StageName:  stage.Name,
		StageIndex: index,
		StageCount: len(p.stages),
		Progress:   p.Progress(),
	})

	if p.cursor == len(p.stages) {
		p.finished = true
		p.ctx.release()
		p.publish(core.EVENT_CODE_PIPELINE_COMPLETED, core.EventContext{
			StageCount: len(p.stages),
			Progress:   100,
		})
		core.LogInfo("[100%%] Shell generation completed!")
		return true, nil
	}
	return false, nil
}

// Run steps the pipeline to completion.
func (p *Pipeline) Run(sc gocontext.Context) error {
	for {
		done, err := p.Step(sc)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}
