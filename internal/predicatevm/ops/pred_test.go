package ops

import (
	"testing"

	"github.com/vybium/predicate-vm/internal/predicatevm/stack"
)

func TestPredComparisons(t *testing.T) {
	cases := []struct {
		name string
		code PredCode
		a, b Word
		want Word
	}{
		{"eq true", PredEq, 5, 5, 1},
		{"eq false", PredEq, 5, 6, 0},
		{"gt", PredGt, 6, 5, 1},
		{"lt", PredLt, 4, 5, 1},
		{"gte equal", PredGte, 5, 5, 1},
		{"lte less", PredLte, 4, 5, 1},
		{"and both true", PredAnd, 1, 2, 1},
		{"and one zero", PredAnd, 0, 2, 0},
		{"or both zero", PredOr, 0, 0, 0},
		{"bit_and", PredBitAnd, 0b1100, 0b1010, 0b1000},
		{"bit_or", PredBitOr, 0b1100, 0b1010, 0b1110},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := push2(t, tc.a, tc.b)
			if err := Pred(s, tc.code); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, _ := s.Pop()
			if got != tc.want {
				t.Fatalf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestPredNot(t *testing.T) {
	s := stack.New()
	_ = s.Push(0)
	if err := Pred(s, PredNot); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := s.Pop()
	if got != 1 {
		t.Fatalf("not(0) = %d, want 1", got)
	}
}

// pushRangePair pushes lhs then rhs (equal length, as EqRange requires)
// followed by their single shared length word.
func pushRangePair(t *testing.T, s *stack.Stack, lhs, rhs []Word) {
	t.Helper()
	if len(lhs) != len(rhs) {
		t.Fatalf("pushRangePair: lhs/rhs length mismatch (%d vs %d)", len(lhs), len(rhs))
	}
	for _, w := range lhs {
		_ = s.Push(w)
	}
	for _, w := range rhs {
		_ = s.Push(w)
	}
	_ = s.Push(Word(len(lhs)))
}

func TestEqRange(t *testing.T) {
	t.Run("equal", func(t *testing.T) {
		s := stack.New()
		pushRangePair(t, s, []Word{1, 2, 3}, []Word{1, 2, 3})
		if err := Pred(s, PredEqRange); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, _ := s.Pop()
		if got != 1 {
			t.Fatalf("got %d, want 1", got)
		}
	})
	t.Run("different values", func(t *testing.T) {
		s := stack.New()
		pushRangePair(t, s, []Word{1, 2, 3}, []Word{1, 2, 4})
		if err := Pred(s, PredEqRange); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, _ := s.Pop()
		if got != 0 {
			t.Fatalf("got %d, want 0", got)
		}
	})
}

func pushSet(t *testing.T, s *stack.Stack, elements [][]Word) {
	t.Helper()
	start := s.Len()
	for _, e := range elements {
		_ = s.Push(Word(len(e)))
		for _, w := range e {
			_ = s.Push(w)
		}
	}
	_ = s.Push(Word(s.Len() - start))
}

func TestEqSet(t *testing.T) {
	t.Run("same elements, different order", func(t *testing.T) {
		s := stack.New()
		pushSet(t, s, [][]Word{{1, 2}, {3}})
		pushSet(t, s, [][]Word{{3}, {1, 2}})
		if err := Pred(s, PredEqSet); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, _ := s.Pop()
		if got != 1 {
			t.Fatalf("got %d, want 1", got)
		}
	})
	t.Run("different multiplicity", func(t *testing.T) {
		s := stack.New()
		pushSet(t, s, [][]Word{{1}, {1}})
		pushSet(t, s, [][]Word{{1}})
		if err := Pred(s, PredEqSet); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, _ := s.Pop()
		if got != 0 {
			t.Fatalf("got %d, want 0", got)
		}
	})
}
