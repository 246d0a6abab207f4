package codegen

// Stack is the LIFO allocator for Temporary registers (spec.md §4.2). It
// tracks only the next free index; the live temporaries are always exactly
// {0, ..., top-1}. The zero value is a stack with top == 0, ready to use.
type Stack struct {
	top int
}

// Top returns the next Temporary index that would be handed out. Tests use
// this to assert stack-balance invariants (spec.md §8, property 2).
func (s *Stack) Top() int {
	return s.top
}

// Push allocates a fresh Temporary at index top and advances top.
func (s *Stack) Push() Register {
	r := Temporary(s.top)
	s.top++
	return r
}

// PushReusing returns a if a is the Temporary currently at the top of the
// stack (reusing its slot); otherwise it allocates a fresh Temporary.
func (s *Stack) PushReusing(a Register) Register {
	if idx, ok := a.IsTemporary(); ok && idx+1 == s.top {
		return a
	}
	return s.Push()
}

// PushReusingPair implements the two-operand reuse rule: try to pop b
// first, then attempt single-operand reuse of a. If popping b succeeded,
// the result is simply the one-operand reuse of a (which, after the pop,
// may itself now be eligible). Otherwise it falls through to PushReusing(a).
func (s *Stack) PushReusingPair(a, b Register) Register {
	s.Pop(b)
	return s.PushReusing(a)
}

// Pop decrements top iff r is the Temporary currently at index top-1,
// reports whether a pop occurred. Popping a non-top-of-stack Register (or a
// non-Temporary) is a no-op, not an error: callers pop defensively and rely
// on the boolean only where the stack-balance invariant must be checked.
func (s *Stack) Pop(r Register) bool {
	idx, ok := r.IsTemporary()
	if !ok || idx+1 != s.top {
		return false
	}
	s.top--
	return true
}
