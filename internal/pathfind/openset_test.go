package pathfind

import "testing"

func TestOpenSetOrdersByF(t *testing.T) {
	s := newOpenSet(8)
	s.insert(3, 5)
	s.insert(1, 2)
	s.insert(6, 9)
	s.insert(0, 1)

	expected := []Handle{0, 1, 3, 6}
	for i, want := range expected {
		if got := s.popMin(); got != want {
			t.Errorf("pop %d = %d, expected %d", i, got, want)
		}
	}
	if s.Len() != 0 {
		t.Errorf("expected empty open set, got %d items", s.Len())
	}
}

func TestOpenSetTieBreakByInsertion(t *testing.T) {
	s := newOpenSet(8)
	for _, h := range []Handle{5, 2, 7, 0} {
		s.insert(h, 4)
	}

	expected := []Handle{5, 2, 7, 0}
	for i, want := range expected {
		if got := s.popMin(); got != want {
			t.Errorf("pop %d = %d, expected %d", i, got, want)
		}
	}
}

func TestOpenSetMembership(t *testing.T) {
	s := newOpenSet(4)
	s.insert(2, 1)

	if !s.contains(2) {
		t.Error("expected handle 2 to be in the open set")
	}
	if s.contains(1) {
		t.Error("handle 1 was never inserted")
	}

	s.popMin()
	if s.contains(2) {
		t.Error("popped handle must leave the open set")
	}
}

func TestOpenSetUpdateKeepsSequence(t *testing.T) {
	s := newOpenSet(8)
	s.insert(1, 3) // seq 0
	s.insert(2, 6) // seq 1
	s.insert(3, 3) // seq 2

	// Lowering 2 to the shared f must still place it before 3 (earlier seq)
	// and after 1.
	s.update(2, 3)

	expected := []Handle{1, 2, 3}
	for i, want := range expected {
		if got := s.popMin(); got != want {
			t.Errorf("pop %d = %d, expected %d", i, got, want)
		}
	}
}
