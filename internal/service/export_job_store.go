package service

import (
	"sync"
	"time"

	"github.com/noah-isme/task-scheduler-api/internal/models"
)

// exportJobStore keeps export job metadata in memory until the job's TTL lapses.
type exportJobStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]models.ExportJob
	now   func() time.Time
}

func newExportJobStore(ttl time.Duration) *exportJobStore {
	return &exportJobStore{
		ttl:   ttl,
		items: make(map[string]models.ExportJob),
		now:   time.Now,
	}
}

func (s *exportJobStore) Save(job models.ExportJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[job.ID] = job
}

func (s *exportJobStore) Get(id string) (models.ExportJob, bool) {
	s.mu.RLock()
	job, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return models.ExportJob{}, false
	}
	if s.expired(job) {
		s.Delete(id)
		return models.ExportJob{}, false
	}
	return job, true
}

// Update applies fn to a stored job and reports whether the job existed.
func (s *exportJobStore) Update(id string, fn func(*models.ExportJob)) (models.ExportJob, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.items[id]
	if !ok {
		return models.ExportJob{}, false
	}
	fn(&job)
	s.items[id] = job
	return job, true
}

func (s *exportJobStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}

// Prune drops expired jobs and returns them.
func (s *exportJobStore) Prune() []models.ExportJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed []models.ExportJob
	for id, job := range s.items {
		if s.expired(job) {
			removed = append(removed, job)
			delete(s.items, id)
		}
	}
	return removed
}

func (s *exportJobStore) expired(job models.ExportJob) bool {
	return s.ttl > 0 && s.now().Sub(job.CreatedAt) > s.ttl
}
