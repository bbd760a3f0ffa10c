package profile

import "testing"

func TestSession_IdleByDefault(t *testing.T) {
	s := NewSession()
	if _, _, editing := s.Target(); editing {
		t.Fatal("new session must be idle")
	}
}

func TestSession_BeginReplacesTarget(t *testing.T) {
	s := NewSession()
	s.Begin(Profile{Email: "a@x.com"}, 0)
	s.Begin(Profile{Email: "b@x.com"}, 3)

	target, position, editing := s.Target()
	if !editing || target.Email != "b@x.com" || position != 3 {
		t.Fatalf("expected latest target, got %+v at %d (editing=%v)", target, position, editing)
	}

	s.Reset()
	if _, _, editing := s.Target(); editing {
		t.Fatal("reset must return to idle")
	}
}
