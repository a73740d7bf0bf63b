package frame

import "sync"

// Slot holds the most recently written frame.
//
// Writers never wait for readers: a frame that was not read before the next
// Write is discarded. Readers get a copy, so a frame is never observed torn.
// The zero value is an empty slot ready for use.
type Slot struct {
	mu          sync.Mutex
	frame       Frame
	has         bool
	unread      bool
	writes      uint64
	overwritten uint64
}

// Write replaces the current frame. Safe to call from any goroutine.
func (s *Slot) Write(f Frame) {
	s.mu.Lock()
	if s.unread {
		s.overwritten++
	}
	s.frame = f
	s.has = true
	s.unread = true
	s.writes++
	s.mu.Unlock()
}

// Read returns a copy of the current frame, or false if nothing was written yet.
func (s *Slot) Read() (Frame, bool) {
	s.mu.Lock()
	if !s.has {
		s.mu.Unlock()
		return Frame{}, false
	}
	f := s.frame
	s.unread = false
	s.mu.Unlock()
	// Frames are immutable after Write, so the copy can happen outside the lock.
	return f.Clone(), true
}

// Writes returns the number of frames written so far.
func (s *Slot) Writes() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Overwritten returns how many frames were replaced before anyone read them.
func (s *Slot) Overwritten() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overwritten
}
