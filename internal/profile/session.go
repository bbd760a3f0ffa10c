package profile

import "sync"

// Session decides whether a submission adds a profile or updates the one
// chosen for editing. It is Idle until Begin is called and returns to Idle
// on Reset.
type Session struct {
	mu       sync.Mutex
	editing  bool
	target   Profile
	position int
}

func NewSession() *Session {
	return &Session{}
}

// Begin targets p, replacing any previous target.
func (s *Session) Begin(p Profile, position int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = true
	s.target = p
	s.position = position
}

// Target returns the profile being edited and the storage position it had
// when editing began.
func (s *Session) Target() (Profile, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editing {
		return Profile{}, -1, false
	}
	return s.target, s.position, true
}

func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = false
	s.target = Profile{}
	s.position = -1
}
