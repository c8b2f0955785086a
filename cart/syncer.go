package cart

import "sync"

// syncer runs cart persists with a single in-flight slot. While a write
// is running, newly scheduled writes replace each other: last queued wins,
// so rapid successive mutations never issue overlapping conflicting
// writes.
type syncer struct {
	mu       sync.Mutex
	cond     *sync.Cond
	inFlight bool
	pending  func()
}

func newSyncer() *syncer {
	s := &syncer{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *syncer) schedule(task func()) {
	s.mu.Lock()
	if s.inFlight {
		s.pending = task
		s.mu.Unlock()
		return
	}
	s.inFlight = true
	s.mu.Unlock()
	go s.run(task)
}

func (s *syncer) run(task func()) {
	for {
		task()

		s.mu.Lock()
		next := s.pending
		s.pending = nil
		if next == nil {
			s.inFlight = false
			s.cond.Broadcast()
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()
		task = next
	}
}

// wait blocks until no persist is in flight or queued.
func (s *syncer) wait() {
	s.mu.Lock()
	for s.inFlight {
		s.cond.Wait()
	}
	s.mu.Unlock()
}
