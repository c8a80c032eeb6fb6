package vm

import "testing"

func TestWordStackPopOrZero(t *testing.T) {
	s := newWordStack()
	if v := s.Pop(); v != 0 {
		t.Fatalf("pop on empty = %d, want 0", v)
	}

	s.Push(1)
	s.Push(2)
	s.Push(3)
	for _, want := range []uint32{3, 2, 1} {
		if v := s.Pop(); v != want {
			t.Fatalf("pop = %d, want %d", v, want)
		}
	}
	if v := s.Pop(); v != 0 {
		t.Fatalf("pop after drain = %d, want 0", v)
	}
}

func TestWordStackGrowsPastReserve(t *testing.T) {
	s := newWordStack()
	for i := 0; i < stackReserve*4; i++ {
		s.Push(uint32(i))
	}
	if s.Len() != stackReserve*4 {
		t.Fatalf("len = %d, want %d", s.Len(), stackReserve*4)
	}
	if v := s.Pop(); v != stackReserve*4-1 {
		t.Fatalf("pop = %d, want %d", v, stackReserve*4-1)
	}
}

func TestAddrStackPopOnEmpty(t *testing.T) {
	s := newAddrStack()
	if _, ok := s.Pop(); ok {
		t.Fatal("pop on empty reported a value")
	}

	s.Push(7)
	a, ok := s.Pop()
	if !ok || a != 7 {
		t.Fatalf("pop = %d, %v, want 7, true", a, ok)
	}
	if _, ok := s.Pop(); ok {
		t.Fatal("pop after drain reported a value")
	}
}
