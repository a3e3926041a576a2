package webui

import (
	"strconv"
	"sync"
)

// JobState is the lifecycle stage of a background conversion.
type JobState string

// Job states.
const (
	JobRunning JobState = "running"
	JobDone    JobState = "done"
	JobFailed  JobState = "failed"
)

// Job is the status snapshot returned by GET /api/jobs/:id.
type Job struct {
	ID        string   `json:"id"`
	State     JobState `json:"state"`
	Message   string   `json:"message"`
	Completed int      `json:"completed"`
	Total     int      `json:"total"`
	Percent   float64  `json:"percent"`
	Error     string   `json:"error,omitempty"`
}

// jobStore keeps job state. Progress callbacks and HTTP handlers run on
// different goroutines, so every access goes through mu.
type jobStore struct {
	mu   sync.Mutex
	next int
	jobs map[string]*Job
}

func newJobStore() *jobStore {
	return &jobStore{jobs: make(map[string]*Job)}
}

func (s *jobStore) create(message string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	id := strconv.Itoa(s.next)
	s.jobs[id] = &Job{ID: id, State: JobRunning, Message: message}
	return id
}

func (s *jobStore) update(id string, fn func(*Job)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if j, ok := s.jobs[id]; ok {
		fn(j)
	}
}

func (s *jobStore) get(id string) (Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *j, true
}
