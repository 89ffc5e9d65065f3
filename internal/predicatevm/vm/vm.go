package vm

import (
	"context"

	"github.com/vybium/predicate-vm/internal/predicatevm/bytecode"
	"github.com/vybium/predicate-vm/internal/predicatevm/memory"
	"github.com/vybium/predicate-vm/internal/predicatevm/ops"
	"github.com/vybium/predicate-vm/internal/predicatevm/repeat"
	"github.com/vybium/predicate-vm/internal/predicatevm/stack"
	"github.com/vybium/predicate-vm/internal/predicatevm/types"
)

// Word is the VM's native operand type.
type Word = types.Word

// VM owns one node's execution state: its stack, memory, repeat register,
// predicate-exists cache, program counter, and gas ledger. A VM is created
// fresh for each node, seeded from its parents' published (stack, memory),
// stepped to completion, and discarded once its own (stack, memory) has
// been published to its children (or read as a constraint's boolean).
type VM struct {
	Stack  *stack.Stack
	Memory *memory.Memory
	Repeat *repeat.Repeat
	Access *ops.Context

	Reader   types.StateReader
	Contract types.ContentAddress

	program bytecode.Mapped
	pc      int
	state   State
	failure error

	gasLimit  GasLimit
	gasSpent  int64
	nextYield int64
}

// New returns a VM ready to run program from pc 0, with the given seeded
// stack and memory (already concatenated from any parent nodes) and the
// context an Access op needs.
func New(program bytecode.Mapped, st *stack.Stack, mem *memory.Memory, access *ops.Context, reader types.StateReader, contract types.ContentAddress, limit GasLimit) *VM {
	if st == nil {
		st = stack.New()
	}
	if mem == nil {
		mem = memory.New()
	}
	return &VM{
		Stack:     st,
		Memory:    mem,
		Repeat:    repeat.New(),
		Access:    access,
		Reader:    reader,
		Contract:  contract,
		program:   program,
		state:     StateRunning,
		gasLimit:  limit,
		nextYield: limit.effectivePerYield(),
	}
}

// State reports the VM's current program state.
func (vm *VM) State() State { return vm.state }

// PC reports the current program counter.
func (vm *VM) PC() int { return vm.pc }

// GasSpent reports cumulative gas charged so far.
func (vm *VM) GasSpent() int64 { return vm.gasSpent }

// Failure returns the error that put the VM into StateFailed, or nil.
func (vm *VM) Failure() error { return vm.failure }

// Step executes exactly one op (or recognises implicit end-of-program
// halt) and advances pc/state accordingly. It returns whether a
// cooperative yield point was crossed by this step, so Run's caller (the
// graph executor's scheduler) can suspend between ops without this package
// depending on any particular scheduler.
func (vm *VM) Step(ctx context.Context, costFn OpGasCost) (yielded bool, err error) {
	if vm.state != StateRunning {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	n, lenErr := vm.program.Len()
	if lenErr != nil {
		return false, vm.fail(ErrDecode(vm.pc, lenErr))
	}
	if vm.pc >= n {
		vm.state = StateHalted
		return false, nil
	}

	op, err := vm.program.At(vm.pc)
	if err != nil {
		return false, vm.fail(ErrDecode(vm.pc, err))
	}

	cost := int64(0)
	if costFn != nil {
		cost = costFn(op)
	}
	nextSpent := vm.gasSpent + cost
	if vm.gasLimit.Total > 0 && nextSpent > vm.gasLimit.Total {
		return false, vm.fail(&OutOfGas{PC: vm.pc, Spent: vm.gasSpent, OpGas: cost, Limit: vm.gasLimit.Total})
	}
	vm.gasSpent = nextSpent

	yielded = vm.gasSpent >= vm.nextYield
	if yielded {
		for vm.nextYield <= vm.gasSpent {
			vm.nextYield += vm.gasLimit.effectivePerYield()
		}
	}

	result, stepErr := vm.dispatch(ctx, op)
	if stepErr != nil {
		return yielded, vm.fail(ErrOp(vm.pc, stepErr))
	}

	switch result.Signal {
	case ops.SignalHalt:
		vm.state = StateHalted
	case ops.SignalJump:
		if result.Target < 0 {
			return yielded, vm.fail(ErrPCOverflow(vm.pc))
		}
		vm.pc = result.Target
	default:
		vm.pc++
	}
	return yielded, nil
}

func (vm *VM) fail(err error) error {
	vm.state = StateFailed
	vm.failure = err
	return err
}

// Run steps the VM to completion (Halted or Failed), invoking onYield
// (if non-nil) every time a Step reports a cooperative yield point.
func (vm *VM) Run(ctx context.Context, costFn OpGasCost, onYield func()) error {
	for vm.state == StateRunning {
		yielded, err := vm.Step(ctx, costFn)
		if err != nil {
			return err
		}
		if yielded && onYield != nil {
			onYield()
		}
	}
	if vm.state == StateFailed {
		return vm.failure
	}
	return nil
}

// dispatch decodes op.Code's owning group and forwards to the matching
// internal/predicatevm/ops step function.
func (vm *VM) dispatch(ctx context.Context, op bytecode.Op) (ops.Result, error) {
	switch op.Code {
	case bytecode.Push:
		return ops.Stack(vm.Stack, vm.Repeat, vm.pc, ops.StackPush, op.Immediate)
	case bytecode.Pop:
		return ops.Stack(vm.Stack, vm.Repeat, vm.pc, ops.StackPop, 0)
	case bytecode.Dup:
		return ops.Stack(vm.Stack, vm.Repeat, vm.pc, ops.StackDup, 0)
	case bytecode.DupFrom:
		return ops.Stack(vm.Stack, vm.Repeat, vm.pc, ops.StackDupFrom, 0)
	case bytecode.Swap:
		return ops.Stack(vm.Stack, vm.Repeat, vm.pc, ops.StackSwap, 0)
	case bytecode.SwapIndex:
		return ops.Stack(vm.Stack, vm.Repeat, vm.pc, ops.StackSwapIndex, 0)
	case bytecode.Select:
		return ops.Stack(vm.Stack, vm.Repeat, vm.pc, ops.StackSelect, 0)
	case bytecode.SelectRange:
		return ops.Stack(vm.Stack, vm.Repeat, vm.pc, ops.StackSelectRange, 0)
	case bytecode.Reserve:
		return ops.Stack(vm.Stack, vm.Repeat, vm.pc, ops.StackReserve, 0)
	case bytecode.Load:
		return ops.Stack(vm.Stack, vm.Repeat, vm.pc, ops.StackLoad, 0)
	case bytecode.Store:
		return ops.Stack(vm.Stack, vm.Repeat, vm.pc, ops.StackStore, 0)
	case bytecode.Repeat:
		return ops.Stack(vm.Stack, vm.Repeat, vm.pc, ops.StackRepeat, 0)
	case bytecode.RepeatEnd:
		return ops.Stack(vm.Stack, vm.Repeat, vm.pc, ops.StackRepeatEnd, 0)

	case bytecode.Add:
		return ops.Result{}, ops.Alu(vm.Stack, ops.AluAdd)
	case bytecode.Sub:
		return ops.Result{}, ops.Alu(vm.Stack, ops.AluSub)
	case bytecode.Mul:
		return ops.Result{}, ops.Alu(vm.Stack, ops.AluMul)
	case bytecode.Div:
		return ops.Result{}, ops.Alu(vm.Stack, ops.AluDiv)
	case bytecode.Mod:
		return ops.Result{}, ops.Alu(vm.Stack, ops.AluMod)
	case bytecode.Shl:
		return ops.Result{}, ops.Alu(vm.Stack, ops.AluShl)
	case bytecode.Shr:
		return ops.Result{}, ops.Alu(vm.Stack, ops.AluShr)
	case bytecode.ShrI:
		return ops.Result{}, ops.Alu(vm.Stack, ops.AluShrI)

	case bytecode.Eq:
		return ops.Result{}, ops.Pred(vm.Stack, ops.PredEq)
	case bytecode.Gt:
		return ops.Result{}, ops.Pred(vm.Stack, ops.PredGt)
	case bytecode.Lt:
		return ops.Result{}, ops.Pred(vm.Stack, ops.PredLt)
	case bytecode.Gte:
		return ops.Result{}, ops.Pred(vm.Stack, ops.PredGte)
	case bytecode.Lte:
		return ops.Result{}, ops.Pred(vm.Stack, ops.PredLte)
	case bytecode.And:
		return ops.Result{}, ops.Pred(vm.Stack, ops.PredAnd)
	case bytecode.Or:
		return ops.Result{}, ops.Pred(vm.Stack, ops.PredOr)
	case bytecode.Not:
		return ops.Result{}, ops.Pred(vm.Stack, ops.PredNot)
	case bytecode.EqRange:
		return ops.Result{}, ops.Pred(vm.Stack, ops.PredEqRange)
	case bytecode.EqSet:
		return ops.Result{}, ops.Pred(vm.Stack, ops.PredEqSet)
	case bytecode.BitAnd:
		return ops.Result{}, ops.Pred(vm.Stack, ops.PredBitAnd)
	case bytecode.BitOr:
		return ops.Result{}, ops.Pred(vm.Stack, ops.PredBitOr)

	case bytecode.Sha256:
		return ops.Result{}, ops.Crypto(vm.Stack, ops.CryptoSha256)
	case bytecode.VerifyEd25519:
		return ops.Result{}, ops.Crypto(vm.Stack, ops.CryptoVerifyEd25519)
	case bytecode.RecoverSecp256k1:
		return ops.Result{}, ops.Crypto(vm.Stack, ops.CryptoRecoverSecp256k1)

	case bytecode.MemAlloc:
		return ops.Result{}, ops.Memory(vm.Stack, vm.Memory, ops.MemoryAlloc)
	case bytecode.MemFree:
		return ops.Result{}, ops.Memory(vm.Stack, vm.Memory, ops.MemoryFree)
	case bytecode.MemLoad:
		return ops.Result{}, ops.Memory(vm.Stack, vm.Memory, ops.MemoryLoad)
	case bytecode.MemStore:
		return ops.Result{}, ops.Memory(vm.Stack, vm.Memory, ops.MemoryStore)
	case bytecode.MemLoadRange:
		return ops.Result{}, ops.Memory(vm.Stack, vm.Memory, ops.MemoryLoadRange)
	case bytecode.MemStoreRange:
		return ops.Result{}, ops.Memory(vm.Stack, vm.Memory, ops.MemoryStoreRange)

	case bytecode.DecisionVar:
		return ops.Result{}, ops.Access(vm.Stack, vm.Repeat, vm.Access, ops.AccessDecisionVar)
	case bytecode.DecisionVarLen:
		return ops.Result{}, ops.Access(vm.Stack, vm.Repeat, vm.Access, ops.AccessDecisionVarLen)
	case bytecode.DecisionVarSlots:
		return ops.Result{}, ops.Access(vm.Stack, vm.Repeat, vm.Access, ops.AccessDecisionVarSlots)
	case bytecode.MutKeys:
		return ops.Result{}, ops.Access(vm.Stack, vm.Repeat, vm.Access, ops.AccessMutKeys)
	case bytecode.ThisAddress:
		return ops.Result{}, ops.Access(vm.Stack, vm.Repeat, vm.Access, ops.AccessThisAddress)
	case bytecode.ThisContractAddress:
		return ops.Result{}, ops.Access(vm.Stack, vm.Repeat, vm.Access, ops.AccessThisContractAddress)
	case bytecode.RepeatCounter:
		return ops.Result{}, ops.Access(vm.Stack, vm.Repeat, vm.Access, ops.AccessRepeatCounter)
	case bytecode.PredicateExists:
		return ops.Result{}, ops.Access(vm.Stack, vm.Repeat, vm.Access, ops.AccessPredicateExists)

	case bytecode.KeyRange:
		return ops.Result{}, ops.StateRead(ctx, vm.Stack, vm.Memory, vm.Reader, vm.Contract, ops.StateReadKeyRange)
	case bytecode.KeyRangeExtern:
		return ops.Result{}, ops.StateRead(ctx, vm.Stack, vm.Memory, vm.Reader, vm.Contract, ops.StateReadKeyRangeExtern)

	case bytecode.Halt:
		return ops.ControlFlow(vm.Stack, vm.pc, ops.ControlFlowHalt)
	case bytecode.HaltIf:
		return ops.ControlFlow(vm.Stack, vm.pc, ops.ControlFlowHaltIf)
	case bytecode.JumpIf:
		return ops.ControlFlow(vm.Stack, vm.pc, ops.ControlFlowJumpIf)
	case bytecode.JumpForwardIf:
		return ops.ControlFlow(vm.Stack, vm.pc, ops.ControlFlowJumpForwardIf)
	case bytecode.PanicIf:
		return ops.ControlFlow(vm.Stack, vm.pc, ops.ControlFlowPanicIf)

	default:
		return ops.Result{}, ErrPCOverflow(vm.pc)
	}
}
