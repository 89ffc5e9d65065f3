package ops

import (
	"github.com/vybium/predicate-vm/internal/predicatevm/repeat"
	"github.com/vybium/predicate-vm/internal/predicatevm/stack"
	"github.com/vybium/predicate-vm/internal/predicatevm/word"
)

// StackCode names a stack-group operation.
type StackCode int

const (
	StackPush StackCode = iota
	StackPop
	StackDup
	StackDupFrom
	StackSwap
	StackSwapIndex
	StackSelect
	StackSelectRange
	StackReserve
	StackLoad
	StackStore
	StackRepeat
	StackRepeatEnd
)

// Stack applies a stack-group op. pc is the index of the instruction
// currently executing; immediate carries Push's operand and is ignored by
// every other op. Repeat/RepeatEnd can redirect control flow, so this
// returns a Result exactly like ControlFlow does.
func Stack(s *stack.Stack, r *repeat.Repeat, pc int, code StackCode, immediate Word) (Result, error) {
	switch code {
	case StackPush:
		return Result{}, s.Push(immediate)

	case StackPop:
		_, err := s.Pop()
		return Result{}, err

	case StackDup:
		top, ok := s.Last()
		if !ok {
			return Result{}, ErrUnderflow()
		}
		return Result{}, s.Push(top)

	case StackDupFrom:
		return Result{}, s.DupFrom()

	case StackSwap:
		return Result{}, Pop2Push2Swap(s)

	case StackSwapIndex:
		return Result{}, s.SwapIndex()

	case StackSelect:
		return Result{}, s.Select()

	case StackSelectRange:
		return Result{}, s.SelectRange()

	case StackReserve:
		return Result{}, s.Reserve()

	case StackLoad:
		return Result{}, s.Load()

	case StackStore:
		return Result{}, s.Store()

	case StackRepeat:
		return Result{}, startRepeat(s, r, pc)

	case StackRepeatEnd:
		return endRepeat(r)

	default:
		return Result{}, ErrUnknownAluOp()
	}
}

// Pop2Push2Swap swaps the top two words in place.
func Pop2Push2Swap(s *stack.Stack) error {
	return stack.Pop2Push2(s, func(a, b Word) ([2]Word, error) {
		return [2]Word{b, a}, nil
	})
}

// startRepeat pops count_up (top) then num_iterations, and begins a loop
// whose body starts at the instruction after Repeat.
func startRepeat(s *stack.Stack, r *repeat.Repeat, pc int) error {
	countUpW, err := s.Pop()
	if err != nil {
		return err
	}
	countUp, err := word.ToBool(countUpW)
	if err != nil {
		return ErrPanic(nil)
	}
	numIterations, err := s.Pop()
	if err != nil {
		return err
	}
	return r.Start(numIterations, countUp, pc+1)
}

func endRepeat(r *repeat.Repeat) (Result, error) {
	target, cont, err := r.End()
	if err != nil {
		return Result{}, err
	}
	if !cont {
		return Result{}, nil
	}
	return Result{Signal: SignalJump, Target: target}, nil
}
