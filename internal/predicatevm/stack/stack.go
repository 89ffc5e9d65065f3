// Package stack implements the predicate VM's bounded operand stack.
//
// A Stack is a light wrapper around a []Word, generalised from a
// register-plus-overflow model to a flat bounded LIFO.
package stack

import "github.com/vybium/predicate-vm/internal/predicatevm/word"

// Word is the stack's element type.
type Word = word.Word

// Size is the maximum number of words the stack may hold.
const Size = 4096

// Stack is a bounded LIFO of Words. The zero value is an empty, ready to use
// stack.
type Stack struct {
	words []Word
}

// New returns an empty stack with enough reserved capacity to avoid early
// reallocation.
func New() *Stack {
	return &Stack{words: make([]Word, 0, 64)}
}

// FromWords builds a stack whose bottom-to-top contents are ws. Returns an
// error if len(ws) exceeds Size.
func FromWords(ws []Word) (*Stack, error) {
	if len(ws) > Size {
		return nil, ErrOverflow()
	}
	s := &Stack{words: make([]Word, len(ws))}
	copy(s.words, ws)
	return s, nil
}

// Len returns the number of words currently on the stack.
func (s *Stack) Len() int { return len(s.words) }

// IsEmpty reports whether the stack holds no words.
func (s *Stack) IsEmpty() bool { return len(s.words) == 0 }

// Words returns the stack's contents, bottom word first. The returned slice
// aliases the stack's internal storage and must not be mutated.
func (s *Stack) Words() []Word { return s.words }

// Last returns the top word of the stack, if any.
func (s *Stack) Last() (Word, bool) {
	if len(s.words) == 0 {
		return 0, false
	}
	return s.words[len(s.words)-1], true
}

// Push pushes a word onto the stack. Fails if the stack is already at Size.
func (s *Stack) Push(w Word) error {
	if len(s.words) >= Size {
		return ErrOverflow()
	}
	s.words = append(s.words, w)
	return nil
}

// Extend pushes each word in ws in order. Fails on overflow, leaving
// already-pushed words in place (no rollback is promised).
func (s *Stack) Extend(ws []Word) error {
	for _, w := range ws {
		if err := s.Push(w); err != nil {
			return err
		}
	}
	return nil
}

// Pop pops and returns the top word.
func (s *Stack) Pop() (Word, error) {
	n := len(s.words)
	if n == 0 {
		return 0, ErrEmpty()
	}
	w := s.words[n-1]
	s.words = s.words[:n-1]
	return w, nil
}

// Pop2 pops the top two words, returning them in stack order: [deeper, top].
// The top word ("b") was pushed last.
func (s *Stack) Pop2() ([2]Word, error) {
	b, err := s.Pop()
	if err != nil {
		return [2]Word{}, err
	}
	a, err := s.Pop()
	if err != nil {
		return [2]Word{}, err
	}
	return [2]Word{a, b}, nil
}

// Pop3 pops the top three words in stack order.
func (s *Stack) Pop3() ([3]Word, error) {
	c, err := s.Pop()
	if err != nil {
		return [3]Word{}, err
	}
	ab, err := s.Pop2()
	if err != nil {
		return [3]Word{}, err
	}
	return [3]Word{ab[0], ab[1], c}, nil
}

// Pop4 pops the top four words in stack order.
func (s *Stack) Pop4() ([4]Word, error) {
	d, err := s.Pop()
	if err != nil {
		return [4]Word{}, err
	}
	abc, err := s.Pop3()
	if err != nil {
		return [4]Word{}, err
	}
	return [4]Word{abc[0], abc[1], abc[2], d}, nil
}

// Pop8 pops the top eight words in stack order.
func (s *Stack) Pop8() ([8]Word, error) {
	hi, err := s.Pop4()
	if err != nil {
		return [8]Word{}, err
	}
	lo, err := s.Pop4()
	if err != nil {
		return [8]Word{}, err
	}
	return [8]Word{lo[0], lo[1], lo[2], lo[3], hi[0], hi[1], hi[2], hi[3]}, nil
}

// Pop1Push1 pops one word, applies f, and pushes the result.
func Pop1Push1(s *Stack, f func(Word) (Word, error)) error {
	w, err := s.Pop()
	if err != nil {
		return err
	}
	x, err := f(w)
	if err != nil {
		return err
	}
	return s.Push(x)
}

// Pop2Push1 pops two words, applies f, and pushes the result.
func Pop2Push1(s *Stack, f func(a, b Word) (Word, error)) error {
	ab, err := s.Pop2()
	if err != nil {
		return err
	}
	x, err := f(ab[0], ab[1])
	if err != nil {
		return err
	}
	return s.Push(x)
}

// Pop2Push2 pops two words, applies f, and pushes both results.
func Pop2Push2(s *Stack, f func(a, b Word) ([2]Word, error)) error {
	ab, err := s.Pop2()
	if err != nil {
		return err
	}
	xs, err := f(ab[0], ab[1])
	if err != nil {
		return err
	}
	return s.Extend(xs[:])
}

// Pop1Push2 pops one word, applies f, and pushes both results.
func Pop1Push2(s *Stack, f func(Word) ([2]Word, error)) error {
	w, err := s.Pop()
	if err != nil {
		return err
	}
	xs, err := f(w)
	if err != nil {
		return err
	}
	return s.Extend(xs[:])
}

// Pop8Push1 pops eight words, applies f, and pushes the result.
func Pop8Push1(s *Stack, f func([8]Word) (Word, error)) error {
	ws, err := s.Pop8()
	if err != nil {
		return err
	}
	x, err := f(ws)
	if err != nil {
		return err
	}
	return s.Push(x)
}

// DupFrom implements the DupFrom op: the top word is a reverse index n; push
// a copy of the word n+1 positions below the top (after popping the index).
func (s *Stack) DupFrom() error {
	revIxW, err := s.Pop()
	if err != nil {
		return err
	}
	if revIxW < 0 {
		return ErrIndexOutOfBounds()
	}
	revIx := int(revIxW)
	ix := len(s.words) - revIx - 1
	if ix < 0 || ix >= len(s.words) {
		return ErrIndexOutOfBounds()
	}
	return s.Push(s.words[ix])
}

// SwapIndex implements the SwapIndex op: the top word is a reverse index n;
// swap the word at that position with the new top.
func (s *Stack) SwapIndex() error {
	revIxW, err := s.Pop()
	if err != nil {
		return err
	}
	topIx := len(s.words) - 1
	if topIx < 0 {
		return ErrIndexOutOfBounds()
	}
	if revIxW < 0 {
		return ErrIndexOutOfBounds()
	}
	ix := topIx - int(revIxW)
	if ix < 0 {
		return ErrIndexOutOfBounds()
	}
	s.words[ix], s.words[topIx] = s.words[topIx], s.words[ix]
	return nil
}

// Select implements the Select op: pops [a, b, cond], pushes b if cond==1,
// a if cond==0.
func (s *Stack) Select() error {
	condW, err := s.Pop()
	if err != nil {
		return err
	}
	cond, err := word.ToBool(condW)
	if err != nil {
		return ErrInvalidCondition(condW)
	}
	return Pop2Push1(s, func(a, b Word) (Word, error) {
		if cond {
			return b, nil
		}
		return a, nil
	})
}

// SelectRange implements the SelectRange op: pops cond, then len, then two
// adjacent runs of len words; keeps the upper run if cond==1, the lower run
// if cond==0. len==0 is a no-op.
func (s *Stack) SelectRange() error {
	condW, err := s.Pop()
	if err != nil {
		return err
	}
	cond, err := word.ToBool(condW)
	if err != nil {
		return ErrInvalidCondition(condW)
	}
	lenW, err := s.Pop()
	if err != nil {
		return err
	}
	if lenW < 0 {
		return ErrIndexOutOfBounds()
	}
	n := int(lenW)
	if n == 0 {
		return nil
	}
	if n > len(s.words)/2 {
		return ErrIndexOutOfBounds()
	}
	total := len(s.words)
	upperStart := total - n
	if cond {
		lowerStart := upperStart - n
		copy(s.words[lowerStart:upperStart], s.words[upperStart:total])
	}
	s.words = s.words[:upperStart]
	return nil
}

// ReserveZeroed pushes n zero words.
func (s *Stack) ReserveZeroed(n Word) error {
	if n < 0 {
		return ErrIndexOutOfBounds()
	}
	if len(s.words)+int(n) > Size {
		return ErrOverflow()
	}
	for i := Word(0); i < n; i++ {
		s.words = append(s.words, 0)
	}
	return nil
}

// Reserve implements the Reserve op: pops a count and pushes that many zero
// words, reserving local-variable slots at the top of the stack.
func (s *Stack) Reserve() error {
	n, err := s.Pop()
	if err != nil {
		return err
	}
	return s.ReserveZeroed(n)
}

// Load implements the Stack Load op: pops an absolute index and pushes a
// copy of the word stored there. Distinct from memory.Memory.Load, this
// addresses words already on this stack (e.g. the slots a prior Reserve
// allocated).
func (s *Stack) Load() error {
	addrW, err := s.Pop()
	if err != nil {
		return err
	}
	if addrW < 0 || int(addrW) >= len(s.words) {
		return ErrIndexOutOfBounds()
	}
	return s.Push(s.words[addrW])
}

// Store implements the Stack Store op: pops an absolute index then a value,
// and overwrites the word at that index in place.
func (s *Stack) Store() error {
	addrW, err := s.Pop()
	if err != nil {
		return err
	}
	val, err := s.Pop()
	if err != nil {
		return err
	}
	if addrW < 0 || int(addrW) >= len(s.words) {
		return ErrIndexOutOfBounds()
	}
	s.words[addrW] = val
	return nil
}

// PopLen pops a length word and validates it is non-negative.
func (s *Stack) PopLen() (int, error) {
	lenW, err := s.Pop()
	if err != nil {
		return 0, err
	}
	if lenW < 0 {
		return 0, ErrIndexOutOfBounds()
	}
	return int(lenW), nil
}

func splitLenWords(words []Word) ([]Word, []Word, bool) {
	if len(words) == 0 {
		return nil, nil, false
	}
	lenW := words[len(words)-1]
	rest := words[:len(words)-1]
	if lenW < 0 {
		return nil, nil, false
	}
	n := int(lenW)
	if n > len(rest) {
		return nil, nil, false
	}
	ix := len(rest) - n
	return rest[:ix], rest[ix:], true
}

// PopLenWords pops a length n, then provides the top n words as an
// immutable slice to f, then pops those words (plus the length) on success.
func PopLenWords[O any](s *Stack, f func([]Word) (O, error)) (O, error) {
	var zero O
	rest, slice, ok := splitLenWords(s.words)
	if !ok {
		return zero, ErrIndexOutOfBounds()
	}
	out, err := f(slice)
	if err != nil {
		return zero, err
	}
	s.words = s.words[:len(rest)]
	return out, nil
}

// PopLenWords2 pops two length-prefixed slices: the top is the "rhs", below
// it is the "lhs".
func PopLenWords2[O any](s *Stack, f func(lhs, rhs []Word) (O, error)) (O, error) {
	var zero O
	rest, rhs, ok := splitLenWords(s.words)
	if !ok {
		return zero, ErrIndexOutOfBounds()
	}
	rest2, lhs, ok := splitLenWords(rest)
	if !ok {
		return zero, ErrIndexOutOfBounds()
	}
	out, err := f(lhs, rhs)
	if err != nil {
		return zero, err
	}
	s.words = s.words[:len(rest2)]
	return out, nil
}
