package cache

import (
	"sync"
	"time"
)

// Submission is a poetry entry waiting for payment verification. It is
// process-local transient state: it does not survive a restart.
type Submission struct {
	FullName    string
	Email       string
	PhoneNumber string
	Language    string
	PDFURL      string
}

type entry struct {
	submission Submission
	expiresAt  time.Time
}

// SubmissionStore holds pending submissions keyed by a generated id,
// dropping entries that were never verified within the TTL.
type SubmissionStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
	stop    chan struct{}
}

// NewSubmissionStore creates a store whose janitor sweeps expired
// entries every sweep interval.
func NewSubmissionStore(ttl, sweep time.Duration) *SubmissionStore {
	s := &SubmissionStore{
		ttl:     ttl,
		entries: make(map[string]entry),
		stop:    make(chan struct{}),
	}
	go s.janitor(sweep)
	return s
}

func (s *SubmissionStore) janitor(sweep time.Duration) {
	ticker := time.NewTicker(sweep)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			s.mu.Lock()
			for id, e := range s.entries {
				if now.After(e.expiresAt) {
					delete(s.entries, id)
				}
			}
			s.mu.Unlock()
		case <-s.stop:
			return
		}
	}
}

// Stop shuts the janitor down.
func (s *SubmissionStore) Stop() {
	close(s.stop)
}

func (s *SubmissionStore) Put(id string, sub Submission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = entry{submission: sub, expiresAt: time.Now().Add(s.ttl)}
}

// Get returns the pending submission for id. Expired entries are
// treated as absent even if the janitor has not swept them yet.
func (s *SubmissionStore) Get(id string) (Submission, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok || time.Now().After(e.expiresAt) {
		return Submission{}, false
	}
	return e.submission, true
}

func (s *SubmissionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Len reports the number of live entries.
func (s *SubmissionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	now := time.Now()
	for _, e := range s.entries {
		if !now.After(e.expiresAt) {
			n++
		}
	}
	return n
}
