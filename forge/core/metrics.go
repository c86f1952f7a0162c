package core

import "sync"

const AVG_COUNT uint8 = 30

// MetricsState keeps a rolling average of stage durations plus per-stage
// totals, so long batch runs can report where the time went.
type MetricsState struct {
	mu              sync.Mutex
	stageAVGCounter uint8
	mstimes         [AVG_COUNT]float64
	msavg           float64
	stageTotals     map[string]float64
	stageCounts     map[string]int64
	stagesRun       int64
}

var onceMetrics sync.Once
var metricsState *MetricsState = nil

func MetricsInitialize() error {
	onceMetrics.Do(func() {
		metricsState = &MetricsState{
			mstimes:     [AVG_COUNT]float64{0},
			stageTotals: make(map[string]float64),
			stageCounts: make(map[string]int64),
		}
	})
	return nil
}

// MetricsRecordStage folds one stage execution into the rolling average and
// the per-stage totals. elapsedMS is wall time in milliseconds.
func MetricsRecordStage(stageName string, elapsedMS float64) {
	if metricsState == nil {
		return
	}
	metricsState.mu.Lock()
	defer metricsState.mu.Unlock()

	metricsState.mstimes[metricsState.stageAVGCounter] = elapsedMS
	if metricsState.stageAVGCounter == AVG_COUNT-1 {
		sum := 0.0
		for i := uint8(0); i < AVG_COUNT; i++ {
			sum += metricsState.mstimes[i]
		}
		metricsState.msavg = sum / float64(AVG_COUNT)
	}
	metricsState.stageAVGCounter++
	metricsState.stageAVGCounter %= AVG_COUNT

	metricsState.stageTotals[stageName] += elapsedMS
	metricsState.stageCounts[stageName]++
	metricsState.stagesRun++
}

// MetricsStageTime returns the rolling average stage duration in milliseconds.
func MetricsStageTime() float64 {
	if metricsState == nil {
		return 0
	}
	metricsState.mu.Lock()
	defer metricsState.mu.Unlock()
	return metricsState.msavg
}

// MetricsStageTotal returns accumulated milliseconds and run count for a stage.
func MetricsStageTotal(stageName string) (float64, int64) {
	if metricsState == nil {
		return 0, 0
	}
	metricsState.mu.Lock()
	defer metricsState.mu.Unlock()
	return metricsState.stageTotals[stageName], metricsState.stageCounts[stageName]
}

// MetricsStagesRun returns how many stage executions have been recorded.
func MetricsStagesRun() int64 {
	if metricsState == nil {
		return 0
	}
	metricsState.mu.Lock()
	defer metricsState.mu.Unlock()
	return metricsState.stagesRun
}
