package stoplight

import (
	"sync"
	"time"
)

// MetricsObserver collects metrics about a signal's cycling behaviour
type MetricsObserver struct {
	phaseVisits map[Phase]int
	phaseTime   map[Phase]time.Duration
	lastFlip    time.Time
	flipCount   int
	gapCount    int
	minGap      time.Duration
	maxGap      time.Duration
	totalGap    time.Duration
	errorCount  int
	mutex       sync.RWMutex
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{
		phaseVisits: make(map[Phase]int),
		phaseTime:   make(map[Phase]time.Duration),
	}
}

// OnPhaseChange records flip metrics: visit counts per phase, time spent in
// the phase just left, and the gap between consecutive flips
func (o *MetricsObserver) OnPhaseChange(t Transition) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.flipCount++
	o.phaseVisits[t.To]++

	if !o.lastFlip.IsZero() {
		gap := t.At.Sub(o.lastFlip)
		o.phaseTime[t.From] += gap
		o.totalGap += gap
		o.gapCount++
		if o.gapCount == 1 || gap < o.minGap {
			o.minGap = gap
		}
		if gap > o.maxGap {
			o.maxGap = gap
		}
	}
	o.lastFlip = t.At
}

// OnSignalStarted resets the flip baseline so the first gap is not measured
// from an earlier run
func (o *MetricsObserver) OnSignalStarted(id string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.lastFlip = time.Time{}
}

// OnSignalStopped implements the ExtendedObserver method
func (o *MetricsObserver) OnSignalStopped(id string) {
	// No metrics recorded on stop
}

// OnError records error metrics
func (o *MetricsObserver) OnError(err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.errorCount++
}

// FlipCount returns the number of recorded phase flips
func (o *MetricsObserver) FlipCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return o.flipCount
}

// PhaseVisitCounts returns how often each phase was entered
func (o *MetricsObserver) PhaseVisitCounts() map[Phase]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make(map[Phase]int)
	for phase, count := range o.phaseVisits {
		result[phase] = count
	}
	return result
}

// PhaseTimeSpent returns the time spent showing each phase, measured between
// recorded flips
func (o *MetricsObserver) PhaseTimeSpent() map[Phase]time.Duration {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make(map[Phase]time.Duration)
	for phase, duration := range o.phaseTime {
		result[phase] = duration
	}
	return result
}

// CycleGapBounds returns the shortest and longest observed gap between
// consecutive flips
func (o *MetricsObserver) CycleGapBounds() (min, max time.Duration) {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return o.minGap, o.maxGap
}

// MeanCycleGap returns the mean gap between consecutive flips, or zero when
// fewer than two flips were recorded
func (o *MetricsObserver) MeanCycleGap() time.Duration {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	if o.gapCount == 0 {
		return 0
	}
	return o.totalGap / time.Duration(o.gapCount)
}

// ErrorCount returns the number of observed errors
func (o *MetricsObserver) ErrorCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return o.errorCount
}
