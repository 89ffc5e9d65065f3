package ops

import (
	"github.com/vybium/predicate-vm/internal/predicatevm/stack"
	"github.com/vybium/predicate-vm/internal/predicatevm/word"
)

// ControlFlowCode names a total-control-flow operation.
type ControlFlowCode int

const (
	ControlFlowHalt ControlFlowCode = iota
	ControlFlowHaltIf
	ControlFlowJumpIf
	ControlFlowJumpForwardIf
	ControlFlowPanicIf
)

// Signal tells the VM loop what to do with pc after a control-flow op.
type Signal int

const (
	// SignalNone means continue to pc+1 as usual.
	SignalNone Signal = iota
	// SignalHalt means stop executing this program successfully.
	SignalHalt
	// SignalJump means set pc to Target.
	SignalJump
)

// Result is the outcome of a control-flow op.
type Result struct {
	Signal Signal
	Target int
}

// ControlFlow applies a total-control-flow op. pc is the op index of the
// instruction currently executing (not yet advanced).
func ControlFlow(s *stack.Stack, pc int, code ControlFlowCode) (Result, error) {
	switch code {
	case ControlFlowHalt:
		return Result{Signal: SignalHalt}, nil

	case ControlFlowHaltIf:
		w, err := s.Pop()
		if err != nil {
			return Result{}, err
		}
		b, err := word.ToBool(w)
		if err != nil {
			return Result{}, ErrPanic(nil)
		}
		if b {
			return Result{Signal: SignalHalt}, nil
		}
		return Result{}, nil

	case ControlFlowJumpIf:
		target, err := s.Pop()
		if err != nil {
			return Result{}, err
		}
		condW, err := s.Pop()
		if err != nil {
			return Result{}, err
		}
		cond, err := word.ToBool(condW)
		if err != nil {
			return Result{}, ErrPanic(nil)
		}
		if !cond {
			return Result{}, nil
		}
		if int(target) == pc {
			return Result{}, ErrJumpToSelf()
		}
		return Result{Signal: SignalJump, Target: int(target)}, nil

	case ControlFlowJumpForwardIf:
		offset, err := s.Pop()
		if err != nil {
			return Result{}, err
		}
		condW, err := s.Pop()
		if err != nil {
			return Result{}, err
		}
		cond, err := word.ToBool(condW)
		if err != nil {
			return Result{}, ErrPanic(nil)
		}
		if !cond {
			return Result{}, nil
		}
		if offset <= 0 {
			return Result{}, ErrJumpToSelf()
		}
		return Result{Signal: SignalJump, Target: pc + int(offset)}, nil

	case ControlFlowPanicIf:
		condW, err := s.Pop()
		if err != nil {
			return Result{}, err
		}
		cond, err := word.ToBool(condW)
		if err != nil {
			return Result{}, ErrPanic(nil)
		}
		if cond {
			return Result{}, ErrPanic(append([]Word(nil), s.Words()...))
		}
		return Result{}, nil

	default:
		return Result{}, ErrUnknownAluOp()
	}
}
