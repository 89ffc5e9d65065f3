package ops

import (
	"encoding/binary"

	"github.com/vybium/predicate-vm/internal/predicatevm/stack"
)

// PredCode names a predicate operation.
type PredCode int

const (
	PredEq PredCode = iota
	PredGt
	PredLt
	PredGte
	PredLte
	PredAnd
	PredOr
	PredNot
	PredEqRange
	PredEqSet
	PredBitAnd
	PredBitOr
)

func boolWord(b bool) Word {
	if b {
		return 1
	}
	return 0
}

// Pred applies a predicate op to the stack.
func Pred(s *stack.Stack, code PredCode) error {
	switch code {
	case PredEq:
		return stack.Pop2Push1(s, func(a, b Word) (Word, error) { return boolWord(a == b), nil })
	case PredGt:
		return stack.Pop2Push1(s, func(a, b Word) (Word, error) { return boolWord(a > b), nil })
	case PredLt:
		return stack.Pop2Push1(s, func(a, b Word) (Word, error) { return boolWord(a < b), nil })
	case PredGte:
		return stack.Pop2Push1(s, func(a, b Word) (Word, error) { return boolWord(a >= b), nil })
	case PredLte:
		return stack.Pop2Push1(s, func(a, b Word) (Word, error) { return boolWord(a <= b), nil })
	case PredAnd:
		return stack.Pop2Push1(s, func(a, b Word) (Word, error) { return boolWord(a != 0 && b != 0), nil })
	case PredOr:
		return stack.Pop2Push1(s, func(a, b Word) (Word, error) { return boolWord(a != 0 || b != 0), nil })
	case PredNot:
		return stack.Pop1Push1(s, func(a Word) (Word, error) { return boolWord(a == 0), nil })
	case PredBitAnd:
		return stack.Pop2Push1(s, func(a, b Word) (Word, error) { return a & b, nil })
	case PredBitOr:
		return stack.Pop2Push1(s, func(a, b Word) (Word, error) { return a | b, nil })
	case PredEqRange:
		return eqRange(s)
	case PredEqSet:
		return eqSet(s)
	default:
		return ErrUnknownAluOp()
	}
}

// eqRange pops a single length n, then the top n words (rhs) and the next
// n words below them (lhs), and pushes the AND-reduction of their
// elementwise equality. Both ranges share one length, unlike EqSet's two
// independently-sized sets: equal length is a precondition of the
// comparison, not something EqRange itself needs to check.
func eqRange(s *stack.Stack) error {
	n, err := s.PopLen()
	if err != nil {
		return err
	}
	rhs := make([]Word, n)
	for i := n - 1; i >= 0; i-- {
		w, err := s.Pop()
		if err != nil {
			return err
		}
		rhs[i] = w
	}
	lhs := make([]Word, n)
	for i := n - 1; i >= 0; i-- {
		w, err := s.Pop()
		if err != nil {
			return err
		}
		lhs[i] = w
	}
	eq := true
	for i := range lhs {
		if lhs[i] != rhs[i] {
			eq = false
			break
		}
	}
	return s.Push(boolWord(eq))
}

// eqSet pops two length-prefixed sets (each element itself length-prefixed)
// and pushes 1 if they contain the same elements, ignoring order.
func eqSet(s *stack.Stack) error {
	eq, err := stack.PopLenWords2(s, func(lhs, rhs []Word) (bool, error) {
		lhsSet, err := parseSetElements(lhs)
		if err != nil {
			return false, err
		}
		rhsSet, err := parseSetElements(rhs)
		if err != nil {
			return false, err
		}
		return setsEqual(lhsSet, rhsSet), nil
	})
	if err != nil {
		return err
	}
	return s.Push(boolWord(eq))
}

// parseSetElements splits buf into a sequence of length-prefixed
// sub-slices: each element is a length word followed by that many words.
func parseSetElements(buf []Word) ([][]Word, error) {
	var out [][]Word
	i := 0
	for i < len(buf) {
		n := buf[i]
		if n < 0 || int(n) > len(buf)-i-1 {
			return nil, ErrInvalidLength()
		}
		i++
		out = append(out, buf[i:i+int(n)])
		i += int(n)
	}
	return out, nil
}

func setElementKey(ws []Word) string {
	b := make([]byte, 8*len(ws))
	for i, w := range ws {
		binary.BigEndian.PutUint64(b[i*8:], uint64(w))
	}
	return string(b)
}

func setsEqual(a, b [][]Word) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, e := range a {
		counts[setElementKey(e)]++
	}
	for _, e := range b {
		k := setElementKey(e)
		if counts[k] == 0 {
			return false
		}
		counts[k]--
	}
	return true
}
