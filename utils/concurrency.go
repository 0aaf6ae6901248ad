package utils

import (
	"sync"
)

// WorkerPool runs submitted jobs on at most maxWorkers goroutines.
type WorkerPool struct {
	maxWorkers int
	semaphore  chan struct{}
	wg         sync.WaitGroup
}

// NewWorkerPool creates a WorkerPool with the given concurrency.
// Values below 1 are treated as 1.
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &WorkerPool{
		maxWorkers: maxWorkers,
		semaphore:  make(chan struct{}, maxWorkers),
	}
}

// Submit enqueues a job for execution in the pool. It blocks while the pool is full.
func (wp *WorkerPool) Submit(job func()) {
	wp.wg.Add(1)
	wp.semaphore <- struct{}{}

	go func() {
		defer wp.wg.Done()
		defer func() { <-wp.semaphore }()

		job()
	}()
}

// Wait blocks until all submitted jobs have completed.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// KeySet records cleaned input paths so a file listed twice is read once.
// Add is safe to call from pool workers.
type KeySet struct {
	mu    sync.Mutex
	paths map[string]struct{}
}

func NewKeySet() *KeySet {
	return &KeySet{paths: make(map[string]struct{})}
}

// Add reports whether path was not yet recorded.
func (s *KeySet) Add(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.paths[path]; dup {
		return false
	}
	s.paths[path] = struct{}{}
	return true
}

func (s *KeySet) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.paths)
}
