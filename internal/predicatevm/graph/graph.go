// Package graph runs the nodes of a predicate DAG in topological order,
// one task per node, forwarding each node's resulting stack and memory to
// its children over a single-producer single-consumer channel per edge.
package graph

import (
	"context"
	"math"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vybium/predicate-vm/internal/predicatevm/bytecode"
	"github.com/vybium/predicate-vm/internal/predicatevm/memory"
	"github.com/vybium/predicate-vm/internal/predicatevm/ops"
	"github.com/vybium/predicate-vm/internal/predicatevm/stack"
	"github.com/vybium/predicate-vm/internal/predicatevm/types"
	"github.com/vybium/predicate-vm/internal/predicatevm/vm"
)

// ProgramResolver resolves a program's content address to its bytecode.
// Assumed infallible: an address that does not resolve is a caller
// precondition violation, not a runtime error.
type ProgramResolver interface {
	GetProgram(types.ContentAddress) types.Program
}

// Result is the outcome of running one predicate to completion.
type Result struct {
	GasSpent          int64
	FailedNodes       []NodeError
	UnsatisfiedLeaves []int
}

// Satisfied reports whether every node executed without error and every
// leaf (constraint) evaluated true.
func (r *Result) Satisfied() bool {
	return len(r.FailedNodes) == 0 && len(r.UnsatisfiedLeaves) == 0
}

// payload is the shared-immutable (stack, memory) handle published from a
// parent node to each of its children.
type payload struct {
	stack  []types.Word
	memory []types.Word
}

// Run executes every node of predicate, seeding each node's VM from the
// published outputs of its parents (or empty, for roots), and classifies
// leaf nodes as constraints. pre and post are the state readers selected
// per node by its Reads tag. access carries the solution-data entry this
// predicate belongs to, shared unchanged across every node.
func Run(ctx context.Context, predicate *types.Predicate, programs ProgramResolver, pre, post types.StateReader, access *ops.Context, limit vm.GasLimit, cost vm.OpGasCost, cfg Config) (*Result, error) {
	n := len(predicate.Nodes)
	if n == 0 {
		return &Result{}, nil
	}

	childrenOf := make([][]chan *payload, n)
	edgeChans := make([]chan *payload, len(predicate.Edges))
	for k := range edgeChans {
		edgeChans[k] = make(chan *payload, 1)
	}
	for i := 0; i < n; i++ {
		node := predicate.Nodes[i]
		if node.EdgeStart == types.LeafEdge {
			continue
		}
		children := predicate.ChildIndices(i)
		for _, target := range children {
			if int(target) >= n {
				return nil, ErrInvalidNodeEdges(i)
			}
		}
		start := int(node.EdgeStart)
		childrenOf[i] = edgeChans[start : start+len(children)]
	}

	parentsOf := make([][]chan *payload, n)
	for k, target := range predicate.Edges {
		parentsOf[target] = append(parentsOf[target], edgeChans[k])
	}

	eg, gctx := errgroup.WithContext(ctx)
	var (
		mu          sync.Mutex
		gasTotal    int64
		failed      []NodeError
		unsatisfied []int
	)

	for i := 0; i < n; i++ {
		i := i
		eg.Go(func() error {
			sat, gas, err := runNode(gctx, i, predicate, parentsOf[i], childrenOf[i], programs, pre, post, access, limit, cost)

			mu.Lock()
			gasTotal = saturatingAddInt64(gasTotal, gas)
			if err != nil {
				failed = append(failed, NodeError{Node: i, Err: err})
			} else if sat != nil && !*sat {
				unsatisfied = append(unsatisfied, i)
			}
			mu.Unlock()

			if err != nil && !cfg.CollectAllFailures {
				return err
			}
			return nil
		})
	}
	_ = eg.Wait()

	sort.Slice(failed, func(a, b int) bool { return failed[a].Node < failed[b].Node })
	sort.Ints(unsatisfied)

	return &Result{GasSpent: gasTotal, FailedNodes: failed, UnsatisfiedLeaves: unsatisfied}, nil
}

// runNode awaits node i's parents, runs its program to completion, and
// either publishes to its children or reports its leaf boolean. sat is
// non-nil only for leaf nodes that ran successfully.
func runNode(ctx context.Context, i int, predicate *types.Predicate, parentChans, childChans []chan *payload, programs ProgramResolver, pre, post types.StateReader, access *ops.Context, limit vm.GasLimit, cost vm.OpGasCost) (sat *bool, gasSpent int64, err error) {
	defer func() {
		if err != nil {
			for _, ch := range childChans {
				close(ch)
			}
		}
	}()

	var stackWords, memWords []types.Word
	for _, ch := range parentChans {
		select {
		case <-ctx.Done():
			return nil, 0, ctx.Err()
		case p, ok := <-ch:
			if !ok {
				return nil, 0, ErrParentChannelDropped(i)
			}
			stackWords = append(stackWords, p.stack...)
			memWords = append(memWords, p.memory...)
		}
	}

	st, err := stack.FromWords(stackWords)
	if err != nil {
		return nil, 0, ErrParentStackConcatOverflow(i)
	}
	mem, err := memory.FromWords(memWords)
	if err != nil {
		return nil, 0, ErrParentMemoryConcatOverflow(i)
	}

	node := predicate.Nodes[i]
	reader := pre
	if node.Reads == types.ReadsPost {
		reader = post
	}
	program := bytecode.NewLazy(programs.GetProgram(node.ProgramAddress))
	contract := access.PredicateAddress.Contract

	machine := vm.New(program, st, mem, access, reader, contract, limit)
	if runErr := machine.Run(ctx, cost, nil); runErr != nil {
		return nil, machine.GasSpent(), runErr
	}

	if len(childChans) == 0 {
		top, ok := machine.Stack.Last()
		leafSat := ok && top == 1
		return &leafSat, machine.GasSpent(), nil
	}

	pl := &payload{stack: machine.Stack.Words(), memory: machine.Memory.Words()}
	for _, ch := range childChans {
		ch <- pl
		close(ch)
	}
	return nil, machine.GasSpent(), nil
}

func saturatingAddInt64(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
