// internal/services/progress_service.go
package services

import (
	"fmt"
	"sync"
	"time"
)

// ProgressUpdate is a point-in-time snapshot pushed to subscribers.
type ProgressUpdate struct {
	Progress int    `json:"progress"` // percentage (0-100)
	Message  string `json:"message"`
	Status   string `json:"status"` // running, completed, failed
}

// ProgressTracker tracks a long-running task such as reel image generation.
type ProgressTracker struct {
	TaskID      string
	Progress    int
	Message     string
	Status      string
	StartTime   time.Time
	UpdateTime  time.Time
	Subscribers map[chan ProgressUpdate]bool
	Done        chan struct{}
	mutex       sync.Mutex
}

// ProgressService manages all active trackers.
type ProgressService struct {
	trackers map[string]*ProgressTracker
	mutex    sync.RWMutex
}

func NewProgressService() *ProgressService {
	return &ProgressService{
		trackers: make(map[string]*ProgressTracker),
	}
}

// CreateTracker creates a tracker for the task, or returns the existing one.
func (s *ProgressService) CreateTracker(taskID string) *ProgressTracker {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if tracker, exists := s.trackers[taskID]; exists {
		return tracker
	}

	tracker := &ProgressTracker{
		TaskID:      taskID,
		Progress:    0,
		Message:     "Task starting...",
		Status:      "running",
		StartTime:   time.Now(),
		UpdateTime:  time.Now(),
		Subscribers: make(map[chan ProgressUpdate]bool),
		Done:        make(chan struct{}),
	}

	s.trackers[taskID] = tracker
	return tracker
}

func (s *ProgressService) GetTracker(taskID string) (*ProgressTracker, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	tracker, exists := s.trackers[taskID]
	return tracker, exists
}

// UpdateProgress records progress and notifies subscribers. Progress never
// moves backwards.
func (t *ProgressTracker) UpdateProgress(progress int, message string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.finished() {
		return
	}

	if progress > t.Progress {
		t.Progress = progress
	}
	if message != "" {
		t.Message = message
	}
	t.UpdateTime = time.Now()

	t.broadcast(ProgressUpdate{
		Progress: t.Progress,
		Message:  t.Message,
		Status:   t.Status,
	})
}

// Complete marks the task finished and closes the Done channel.
func (t *ProgressTracker) Complete(message string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.finished() {
		return
	}

	t.Progress = 100
	if message != "" {
		t.Message = message
	} else {
		t.Message = "Task completed"
	}
	t.Status = "completed"
	t.UpdateTime = time.Now()

	t.broadcast(ProgressUpdate{
		Progress: 100,
		Message:  t.Message,
		Status:   "completed",
	})

	close(t.Done)
}

// Fail marks the task failed and closes the Done channel.
func (t *ProgressTracker) Fail(errorMsg string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.finished() {
		return
	}

	t.Message = fmt.Sprintf("Task failed: %s", errorMsg)
	t.Status = "failed"
	t.UpdateTime = time.Now()

	t.broadcast(ProgressUpdate{
		Progress: t.Progress,
		Message:  t.Message,
		Status:   "failed",
	})

	close(t.Done)
}

// finished reports whether the tracker reached a terminal state. Callers
// must hold t.mutex. Complete and Fail are no-ops afterwards, so Done is
// only ever closed once.
func (t *ProgressTracker) finished() bool {
	return t.Status == "completed" || t.Status == "failed"
}

// broadcast performs a non-blocking send to every subscriber. Callers must
// hold t.mutex.
func (t *ProgressTracker) broadcast(update ProgressUpdate) {
	for subscriber := range t.Subscribers {
		select {
		case subscriber <- update:
		default:
		}
	}
}

// Subscribe registers a channel that receives progress updates. The current
// state is sent immediately.
func (t *ProgressTracker) Subscribe() chan ProgressUpdate {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	subscriber := make(chan ProgressUpdate, 10)
	t.Subscribers[subscriber] = true

	subscriber <- ProgressUpdate{
		Progress: t.Progress,
		Message:  t.Message,
		Status:   t.Status,
	}

	return subscriber
}

func (t *ProgressTracker) Unsubscribe(subscriber chan ProgressUpdate) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	delete(t.Subscribers, subscriber)
	close(subscriber)
}

// CleanupCompletedTasks drops finished trackers older than maxAge.
func (s *ProgressService) CleanupCompletedTasks(maxAge time.Duration) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := time.Now()
	for id, tracker := range s.trackers {
		tracker.mutex.Lock()
		isFinished := tracker.Status == "completed" || tracker.Status == "failed"
		isOld := now.Sub(tracker.UpdateTime) > maxAge
		tracker.mutex.Unlock()

		if isFinished && isOld {
			delete(s.trackers, id)
		}
	}
}
