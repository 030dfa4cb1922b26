package stoplight

import (
	"fmt"
	"sync"
)

// Observer represents an entity that observes phase flips
type Observer interface {
	// Required methods

	// OnPhaseChange is called after a phase flip has been committed
	OnPhaseChange(t Transition)
}

// ExtendedObserver provides additional optional observation methods
type ExtendedObserver interface {
	Observer

	// OnSignalStarted is called when the cycling task is launched
	OnSignalStarted(id string)

	// OnSignalStopped is called when the cycling task has exited
	OnSignalStopped(id string)

	// OnError is called when an error occurs during observation
	OnError(err error)
}

// BaseObserver provides a default implementation with no-op methods
type BaseObserver struct{}

// OnPhaseChange implements the required Observer method
func (o *BaseObserver) OnPhaseChange(t Transition) {
	// Default implementation - no operation
}

// OnSignalStarted implements the optional ExtendedObserver method
func (o *BaseObserver) OnSignalStarted(id string) {
	// Default implementation - no operation
}

// OnSignalStopped implements the optional ExtendedObserver method
func (o *BaseObserver) OnSignalStopped(id string) {
	// Default implementation - no operation
}

// OnError implements the optional ExtendedObserver method
func (o *BaseObserver) OnError(err error) {
	// Default implementation - no operation
}

// ObserverManager manages a collection of observers
type ObserverManager struct {
	mutex     sync.RWMutex
	observers []Observer
}

// NewObserverManager creates a new observer manager
func NewObserverManager() *ObserverManager {
	return &ObserverManager{
		observers: make([]Observer, 0),
	}
}

// AddObserver adds an observer to the manager
func (om *ObserverManager) AddObserver(observer Observer) {
	om.mutex.Lock()
	defer om.mutex.Unlock()
	om.observers = append(om.observers, observer)
}

// RemoveObserver removes an observer from the manager
func (om *ObserverManager) RemoveObserver(observer Observer) {
	om.mutex.Lock()
	defer om.mutex.Unlock()
	for i, obs := range om.observers {
		if obs == observer {
			om.observers = append(om.observers[:i], om.observers[i+1:]...)
			break
		}
	}
}

// snapshot copies the observer list so callbacks run without the lock held
func (om *ObserverManager) snapshot() []Observer {
	om.mutex.RLock()
	defer om.mutex.RUnlock()
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)
	return observers
}

// NotifyPhaseChange notifies all observers of a committed phase flip
func (om *ObserverManager) NotifyPhaseChange(t Transition) {
	for _, observer := range om.snapshot() {
		func() {
			defer func() {
				if r := recover(); r != nil {
					om.reportPanic(observer, fmt.Errorf("observer panic in OnPhaseChange: %v", r))
				}
			}()
			observer.OnPhaseChange(t)
		}()
	}
}

// NotifySignalStarted notifies all observers that the cycling task launched
func (om *ObserverManager) NotifySignalStarted(id string) {
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			func() {
				defer func() {
					if r := recover(); r != nil {
						om.reportPanic(observer, fmt.Errorf("observer panic in OnSignalStarted: %v", r))
					}
				}()
				extObs.OnSignalStarted(id)
			}()
		}
	}
}

// NotifySignalStopped notifies all observers that the cycling task exited
func (om *ObserverManager) NotifySignalStopped(id string) {
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			func() {
				defer func() {
					if r := recover(); r != nil {
						om.reportPanic(observer, fmt.Errorf("observer panic in OnSignalStopped: %v", r))
					}
				}()
				extObs.OnSignalStopped(id)
			}()
		}
	}
}

// NotifyError notifies all observers of an error
func (om *ObserverManager) NotifyError(err error) {
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			extObs.OnError(err)
		}
	}
}

// reportPanic routes a recovered observer panic to the observer's own error
// hook. The hook is recover-guarded too, so a broken observer never takes
// down the cycling task.
func (om *ObserverManager) reportPanic(observer Observer, err error) {
	if extObs, ok := observer.(ExtendedObserver); ok {
		func() {
			defer func() { _ = recover() }()
			extObs.OnError(err)
		}()
	}
}
