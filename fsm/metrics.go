package fsm

import (
	"sync"
	"time"
)

// MetricsObserver counts state visits, transitions, events and errors of a
// machine and measures the time spent in each state
type MetricsObserver struct {
	BaseObserver

	stateVisits      map[string]int
	stateTimeSpent   map[string]time.Duration
	eventCounts      map[string]int
	transitionCounts map[string]int
	errorCount       int
	lastStateEntry   map[string]time.Time
	now              func() time.Time
	mutex            sync.RWMutex
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{
		stateVisits:      make(map[string]int),
		stateTimeSpent:   make(map[string]time.Duration),
		eventCounts:      make(map[string]int),
		transitionCounts: make(map[string]int),
		lastStateEntry:   make(map[string]time.Time),
		now:              time.Now,
	}
}

// OnStateEnter records a visit
func (o *MetricsObserver) OnStateEnter(state string, ctx Context) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.stateVisits[state]++
	o.lastStateEntry[state] = o.now()
}

// OnStateExit adds the time since the matching entry
func (o *MetricsObserver) OnStateExit(state string, ctx Context) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if entryTime, ok := o.lastStateEntry[state]; ok {
		o.stateTimeSpent[state] += o.now().Sub(entryTime)
		delete(o.lastStateEntry, state)
	}
}

// OnTransition counts the transition and the event that caused it
func (o *MetricsObserver) OnTransition(from string, to string, event Event, ctx Context) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.transitionCounts[from+"->"+to]++
	if event != nil {
		o.eventCounts[event.GetName()]++
	}
}

// OnError counts errors
func (o *MetricsObserver) OnError(err error, ctx Context) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.errorCount++
}

// GetStateVisitCounts returns the number of times each state was entered
func (o *MetricsObserver) GetStateVisitCounts() map[string]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return copyCounts(o.stateVisits)
}

// GetStateTimeSpent returns the time spent in each state that was left
func (o *MetricsObserver) GetStateTimeSpent() map[string]time.Duration {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make(map[string]time.Duration, len(o.stateTimeSpent))
	for state, d := range o.stateTimeSpent {
		result[state] = d
	}
	return result
}

// GetEventCounts returns the number of transitions each event caused
func (o *MetricsObserver) GetEventCounts() map[string]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return copyCounts(o.eventCounts)
}

// GetTransitionCounts returns counts keyed "from->to"
func (o *MetricsObserver) GetTransitionCounts() map[string]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return copyCounts(o.transitionCounts)
}

// GetErrorCount returns the number of reported errors
func (o *MetricsObserver) GetErrorCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return o.errorCount
}

// Reset clears all metrics
func (o *MetricsObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.stateVisits = make(map[string]int)
	o.stateTimeSpent = make(map[string]time.Duration)
	o.eventCounts = make(map[string]int)
	o.transitionCounts = make(map[string]int)
	o.lastStateEntry = make(map[string]time.Time)
	o.errorCount = 0
}

func copyCounts(m map[string]int) map[string]int {
	result := make(map[string]int, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
