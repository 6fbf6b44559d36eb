package instances

import "sync"

// Selection is the active instance. Long running scans watch it and stop when it changes
type Selection struct {
	mu     sync.Mutex
	active string
}

// Set changes the active instance
func (s *Selection) Set(name string) {
	s.mu.Lock()
	s.active = name
	s.mu.Unlock()
}

// Get returns the active instance
func (s *Selection) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Changed returns a func that reports true once name is no longer active
func (s *Selection) Changed(name string) func() bool {
	return func() bool {
		return s.Get() != name
	}
}
