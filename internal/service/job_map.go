package service

import (
	"sync"

	"github.com/google/uuid"
)

func NewJobMap[K comparable]() *JobMap[K] {
	return &JobMap[K]{
		jobs: make(map[K]uuid.UUID),
	}
}

// JobMap tracks scheduled jobs by key so they can be removed before they
// run.
type JobMap[K comparable] struct {
	m    sync.Mutex
	jobs map[K]uuid.UUID
}

func (jm *JobMap[K]) Add(key K, jobID uuid.UUID) {
	jm.m.Lock()
	defer jm.m.Unlock()
	jm.jobs[key] = jobID
}

// Take removes and returns the job registered for key.
func (jm *JobMap[K]) Take(key K) (uuid.UUID, bool) {
	jm.m.Lock()
	defer jm.m.Unlock()
	jobID, ok := jm.jobs[key]
	delete(jm.jobs, key)
	return jobID, ok
}

func (jm *JobMap[K]) Len() int {
	jm.m.Lock()
	defer jm.m.Unlock()
	return len(jm.jobs)
}
