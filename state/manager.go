package state

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"lessonbot/types"
)

// JobStatus is the lifecycle of one lesson-creation job.
type JobStatus string

const (
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// Job is a snapshot of one lesson-creation job. Progress entries are
// appended as the workflow emits them; Result is set once on finish.
type Job struct {
	ID        string                   `json:"id"`
	VideoURL  string                   `json:"video_url"`
	UserID    string                   `json:"user_id"`
	Status    JobStatus                `json:"status"`
	Progress  []types.CreationProgress `json:"progress"`
	Result    *types.CreationResult    `json:"result,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// Manager holds in-flight and recently finished jobs with thread-safe
// access. Finished jobs are evicted oldest-first once the cap is hit;
// running jobs are never evicted.
type Manager struct {
	mu      sync.RWMutex
	jobs    map[string]*Job
	order   []string
	maxJobs int
}

// NewManager creates a job registry keeping up to 100 jobs.
func NewManager() *Manager {
	return &Manager{
		jobs:    make(map[string]*Job),
		maxJobs: 100,
	}
}

// Begin registers a new running job and returns its id.
func (m *Manager) Begin(videoURL, userID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	now := time.Now()
	m.jobs[id] = &Job{
		ID:        id,
		VideoURL:  videoURL,
		UserID:    userID,
		Status:    JobRunning,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.order = append(m.order, id)
	m.evictLocked()
	return id
}

// AppendProgress records a progress event for a job. Unknown ids are
// ignored so a late event after eviction cannot crash the workflow.
func (m *Manager) AppendProgress(id string, p types.CreationProgress) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[id]
	if !ok {
		return
	}
	job.Progress = append(job.Progress, p)
	job.UpdatedAt = time.Now()
}

// Finish marks a job completed or failed and attaches the result.
func (m *Manager) Finish(id string, result types.CreationResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[id]
	if !ok {
		return
	}
	if result.Success {
		job.Status = JobCompleted
	} else {
		job.Status = JobFailed
	}
	job.Result = &result
	job.UpdatedAt = time.Now()
}

// Get returns a copy of a job so callers never observe a partially
// updated entry.
func (m *Manager) Get(id string) (Job, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, ok := m.jobs[id]
	if !ok {
		return Job{}, false
	}

	snapshot := *job
	snapshot.Progress = append([]types.CreationProgress{}, job.Progress...)
	if job.Result != nil {
		result := *job.Result
		snapshot.Result = &result
	}
	return snapshot, true
}

// evictLocked drops the oldest finished jobs beyond the cap. Caller
// holds the write lock.
func (m *Manager) evictLocked() {
	if len(m.order) <= m.maxJobs {
		return
	}
	kept := m.order[:0]
	excess := len(m.order) - m.maxJobs
	for _, id := range m.order {
		if excess > 0 {
			if job, ok := m.jobs[id]; ok && job.Status != JobRunning {
				delete(m.jobs, id)
				excess--
				continue
			}
		}
		kept = append(kept, id)
	}
	m.order = kept
}
