package agent

import "sync"

// inProgressSet is the unordered set of check names currently executing a
// command (§3). Extension executions are not tracked here.
type inProgressSet struct {
	mu   sync.Mutex
	cond *sync.Cond
	set  map[string]bool
}

func newInProgressSet() *inProgressSet {
	s := &inProgressSet{set: map[string]bool{}}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// tryInsert inserts name if absent, returning false if it was already
// present (duplicate in-flight check, §4.6 step 1).
func (s *inProgressSet) tryInsert(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set[name] {
		return false
	}
	s.set[name] = true
	return true
}

func (s *inProgressSet) remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.set, name)
	if len(s.set) == 0 {
		s.cond.Broadcast()
	}
}

func (s *inProgressSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.set)
}

// waitEmpty blocks until the set is empty. Used by stop's drain step in
// place of polling (§9: "use a condition variable ... instead of polling
// when porting").
func (s *inProgressSet) waitEmpty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.set) > 0 {
		s.cond.Wait()
	}
}
