package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/vybium/predicate-vm/internal/predicatevm/bytecode"
	"github.com/vybium/predicate-vm/internal/predicatevm/ops"
	"github.com/vybium/predicate-vm/internal/predicatevm/types"
	"github.com/vybium/predicate-vm/internal/predicatevm/vm"
)

type program = []bytecode.Op

func push(w types.Word) bytecode.Op { return bytecode.Op{Code: bytecode.Push, Immediate: w} }

func encodeProgram(ops program) types.Program {
	return types.Program(bytecode.EncodeAll(ops))
}

// resolver maps a content address to its bytecode by identity: each test
// hands it a distinct placeholder address per program.
type resolver map[types.ContentAddress]types.Program

func (r resolver) GetProgram(addr types.ContentAddress) types.Program { return r[addr] }

func addr(b byte) types.ContentAddress {
	var a types.ContentAddress
	a[0] = b
	return a
}

func noopReader() types.StateReader { return emptyReader{} }

type emptyReader struct{}

func (emptyReader) ReadKeyRange(context.Context, types.ContentAddress, types.Key, int) ([]types.Value, error) {
	return nil, nil
}

func testAccess() *ops.Context {
	return &ops.Context{ThisData: &types.SolutionData{}}
}

// predicate_graph_stack_passing: a and b each push three words onto the
// stack; c concatenates both parents' stacks (a's below b's, in edge
// order) and compares against six literal words with EqRange.
func TestRunStackPassing(t *testing.T) {
	aAddr, bAddr, cAddr := addr(1), addr(2), addr(3)
	res := resolver{
		aAddr: encodeProgram(program{push(1), push(2), push(3), bytecode.Op{Code: bytecode.Halt}}),
		bAddr: encodeProgram(program{push(4), push(5), push(6), bytecode.Op{Code: bytecode.Halt}}),
		cAddr: encodeProgram(program{
			push(1), push(2), push(3), push(4), push(5), push(6), push(6),
			bytecode.Op{Code: bytecode.EqRange}, bytecode.Op{Code: bytecode.Halt},
		}),
	}
	predicate := &types.Predicate{
		Nodes: []types.Node{
			{ProgramAddress: aAddr, EdgeStart: 0},
			{ProgramAddress: bAddr, EdgeStart: 1},
			{ProgramAddress: cAddr, EdgeStart: types.LeafEdge},
		},
		Edges: []uint16{2, 2},
	}

	result, err := Run(context.Background(), predicate, res, noopReader(), noopReader(), testAccess(), vm.DefaultGasLimit(), vm.ConstantGasCost(1), Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Satisfied() {
		t.Fatalf("expected satisfied, got failed=%v unsatisfied=%v", result.FailedNodes, result.UnsatisfiedLeaves)
	}
}

// predicate_graph_memory_passing: a and b each allocate and store three
// words; c loads all six words from the concatenated memory and checks
// them against the expected values with EqRange.
func TestRunMemoryPassing(t *testing.T) {
	aAddr, bAddr, cAddr := addr(1), addr(2), addr(3)
	store := func(v types.Word, w types.Word) []bytecode.Op {
		return []bytecode.Op{push(v), push(w), {Code: bytecode.MemStore}}
	}
	aProgram := program{push(3), {Code: bytecode.MemAlloc}}
	aProgram = append(aProgram, store(0, 1)...)
	aProgram = append(aProgram, store(1, 2)...)
	aProgram = append(aProgram, store(2, 3)...)
	aProgram = append(aProgram, bytecode.Op{Code: bytecode.Halt})

	bProgram := program{push(3), {Code: bytecode.MemAlloc}}
	bProgram = append(bProgram, store(0, 4)...)
	bProgram = append(bProgram, store(1, 5)...)
	bProgram = append(bProgram, store(2, 6)...)
	bProgram = append(bProgram, bytecode.Op{Code: bytecode.Halt})

	load := func(a types.Word) []bytecode.Op { return []bytecode.Op{push(a), {Code: bytecode.MemLoad}} }
	cProgram := program{}
	for i := types.Word(0); i < 6; i++ {
		cProgram = append(cProgram, load(i)...)
	}
	for _, w := range []types.Word{1, 2, 3, 4, 5, 6} {
		cProgram = append(cProgram, push(w))
	}
	cProgram = append(cProgram, push(6), bytecode.Op{Code: bytecode.EqRange}, bytecode.Op{Code: bytecode.Halt})

	res := resolver{
		aAddr: encodeProgram(aProgram),
		bAddr: encodeProgram(bProgram),
		cAddr: encodeProgram(cProgram),
	}
	predicate := &types.Predicate{
		Nodes: []types.Node{
			{ProgramAddress: aAddr, EdgeStart: 0},
			{ProgramAddress: bAddr, EdgeStart: 1},
			{ProgramAddress: cAddr, EdgeStart: types.LeafEdge},
		},
		Edges: []uint16{2, 2},
	}

	result, err := Run(context.Background(), predicate, res, noopReader(), noopReader(), testAccess(), vm.DefaultGasLimit(), vm.ConstantGasCost(1), Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Satisfied() {
		t.Fatalf("expected satisfied, got failed=%v unsatisfied=%v", result.FailedNodes, result.UnsatisfiedLeaves)
	}
}

func TestRunSingleNodeUnsatisfiedLeaf(t *testing.T) {
	only := addr(1)
	res := resolver{only: encodeProgram(program{push(0), bytecode.Op{Code: bytecode.Halt}})}
	predicate := &types.Predicate{
		Nodes: []types.Node{{ProgramAddress: only, EdgeStart: types.LeafEdge}},
	}

	result, err := Run(context.Background(), predicate, res, noopReader(), noopReader(), testAccess(), vm.DefaultGasLimit(), vm.ConstantGasCost(1), Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Satisfied() {
		t.Fatal("expected unsatisfied leaf")
	}
	if len(result.UnsatisfiedLeaves) != 1 || result.UnsatisfiedLeaves[0] != 0 {
		t.Fatalf("got unsatisfied %v, want [0]", result.UnsatisfiedLeaves)
	}
}

func TestRunInvalidNodeEdges(t *testing.T) {
	only := addr(1)
	res := resolver{only: encodeProgram(program{bytecode.Op{Code: bytecode.Halt}})}
	predicate := &types.Predicate{
		Nodes: []types.Node{{ProgramAddress: only, EdgeStart: 0}},
		Edges: []uint16{5},
	}

	_, err := Run(context.Background(), predicate, res, noopReader(), noopReader(), testAccess(), vm.DefaultGasLimit(), vm.ConstantGasCost(1), Config{})
	var gerr *Error
	if !errors.As(err, &gerr) || gerr.Code != CodeInvalidNodeEdges {
		t.Fatalf("got %v, want InvalidNodeEdges", err)
	}
}

func TestRunFailedNodeReported(t *testing.T) {
	aAddr, bAddr := addr(1), addr(2)
	res := resolver{
		aAddr: encodeProgram(program{bytecode.Op{Code: bytecode.Pop}}), // pop on empty stack fails
		bAddr: encodeProgram(program{push(1), bytecode.Op{Code: bytecode.Halt}}),
	}
	predicate := &types.Predicate{
		Nodes: []types.Node{
			{ProgramAddress: aAddr, EdgeStart: types.LeafEdge},
			{ProgramAddress: bAddr, EdgeStart: types.LeafEdge},
		},
	}

	result, err := Run(context.Background(), predicate, res, noopReader(), noopReader(), testAccess(), vm.DefaultGasLimit(), vm.ConstantGasCost(1), Config{CollectAllFailures: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.FailedNodes) != 1 || result.FailedNodes[0].Node != 0 {
		t.Fatalf("got failed %v, want node 0 only", result.FailedNodes)
	}
}
