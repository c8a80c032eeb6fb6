package vm

// wordStack is the data stack: a growable LIFO of 32-bit cells.
// Popping an empty stack yields 0 rather than faulting; mutated genomes
// underflow routinely and the machine must keep going.
type wordStack struct {
	items []uint32
}

// newWordStack returns an empty stack with the guaranteed capacity
// already reserved.
func newWordStack() *wordStack {
	return &wordStack{items: make([]uint32, 0, stackReserve)}
}

func (s *wordStack) Push(v uint32) {
	s.items = append(s.items, v)
}

// Pop removes and returns the top value, or 0 if the stack is empty.
func (s *wordStack) Pop() uint32 {
	if len(s.items) == 0 {
		return 0
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v
}

func (s *wordStack) Len() int {
	return len(s.items)
}

// addrStack is the jump stack: a growable LIFO of instruction-tape
// addresses pushed by loop opens.
type addrStack struct {
	items []uint16
}

func newAddrStack() *addrStack {
	return &addrStack{items: make([]uint16, 0, stackReserve)}
}

func (s *addrStack) Push(a uint16) {
	s.items = append(s.items, a)
}

// Pop removes and returns the top address. The second return is false
// when the stack is empty; an empty pop is an unmatched close, not an
// error.
func (s *addrStack) Pop() (uint16, bool) {
	if len(s.items) == 0 {
		return 0, false
	}
	a := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return a, true
}

func (s *addrStack) Len() int {
	return len(s.items)
}
