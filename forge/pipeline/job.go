package pipeline

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ruakij/shellforge/forge/core"
)

// JobTask is one unit of batch work, typically an estimate or a full
// generation run for a single mesh file.
type JobTask struct {
	InputParams          interface{}
	OnStart              func(params interface{}, results chan interface{}) error
	OnComplete           func(results chan interface{})
	OnFailure            func(results chan interface{})
	OnCompletionCallback func()
}

// JobSystem fans batch tasks out over a fixed worker pool.
type JobSystem struct {
	numWorkers int
	jobQueue   chan JobTask
	wg         sync.WaitGroup
	failures   int64
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	jq := make(chan JobTask, channelSize)
	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   jq,
	}

	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				resultsChan := make(chan interface{}, 1)
				// Run the job and handle potential errors
				err := job.OnStart(job.InputParams, resultsChan)
				if err != nil {
					atomic.AddInt64(&js.failures, 1)
					core.LogError("%s", err)
					if job.OnFailure != nil {
						job.OnFailure(resultsChan)
					}
				} else {
					if job.OnComplete != nil {
						job.OnComplete(resultsChan)
					}
				}

				// Call the completion callback if set
				if job.OnCompletionCallback != nil {
					job.OnCompletionCallback()
				}
			}
		}()
	}
}

// Shutdown closes the queue and waits for in-flight jobs to finish.
func (js *JobSystem) Shutdown() error {
	close(js.jobQueue)
	js.wg.Wait()
	return nil
}

// Failures reports how many jobs returned an error from OnStart. Callers
// running batches should check this after Shutdown and fail the run when it
// is non-zero.
func (js *JobSystem) Failures() int64 {
	return atomic.LoadInt64(&js.failures)
}

// AddWorkNonBlocking adds work to the pool and returns immediately
func (js *JobSystem) AddWorkNonBlocking(jt JobTask) {
	go js.Submit(jt)
}

// Submit queues the provided job for execution.
func (js *JobSystem) Submit(jt JobTask) {
	js.jobQueue <- jt
}
