package chainage

import "sync"

// lockset hands out one mutex per key. Entries are reference counted and
// dropped when the last holder releases, so idle packages cost nothing.
type lockset struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func newLockset() *lockset {
	return &lockset{locks: make(map[string]*keyedLock)}
}

// lock blocks until key is held and returns the matching unlock func.
func (s *lockset) lock(key string) func() {
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &keyedLock{}
		s.locks[key] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, key)
		}
		s.mu.Unlock()
	}
}

// size is the number of keys currently held or waited on.
func (s *lockset) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}
