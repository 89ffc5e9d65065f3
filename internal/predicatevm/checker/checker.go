package checker

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vybium/predicate-vm/internal/predicatevm/cache"
	"github.com/vybium/predicate-vm/internal/predicatevm/graph"
	"github.com/vybium/predicate-vm/internal/predicatevm/ops"
	"github.com/vybium/predicate-vm/internal/predicatevm/types"
)

// PredicateResolver resolves a predicate address to its graph. Assumed
// infallible: an address that does not resolve is a caller precondition
// violation, not a runtime error.
type PredicateResolver interface {
	GetPredicate(types.PredicateAddress) *types.Predicate
}

// Result is the outcome of checking a whole solution.
type Result struct {
	GasSpent int64
}

// Check validates solution's structure, then runs every entry's predicate
// graph concurrently (one task per entry), summing gas
// with overflow detection and collecting (entry_index, ExecutionError)
// pairs. Returns the structural error immediately if validation fails,
// without resolving or executing anything.
func Check(ctx context.Context, solution *types.Solution, predicates PredicateResolver, programs graph.ProgramResolver, pre, post types.StateReader, cfg Config) (*Result, error) {
	if err := CheckSolution(solution); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := cfg.logger()
	digestCache := cache.New(solutionDigestSource{solution: solution})

	eg, gctx := errgroup.WithContext(ctx)
	var (
		mu            sync.Mutex
		gasTotal      int64
		gasOverflowed bool
		failures      []EntryFailure
	)

	for i := range solution.Data {
		i := i
		eg.Go(func() error {
			entry := solution.Data[i]
			log.Debug("checking predicate", zap.Int("entry", i))

			predicate := predicates.GetPredicate(entry.PredicateToSolve)
			access := &ops.Context{
				ThisData:         &solution.Data[i],
				PredicateAddress: entry.PredicateToSolve,
				MutableKeys:      MutableKeys(solution, i),
				Cache:            digestCache,
			}

			result, err := graph.Run(gctx, predicate, programs, pre, post, access, cfg.GasLimit, cfg.Cost, graph.Config{CollectAllFailures: cfg.CollectAllFailures})
			if err != nil {
				// A structural graph failure (invalid edges) is not an
				// execution failure of one entry among many: it fails the
				// whole check immediately, matching a resolver precondition
				// violation rather than a predicate-logic failure.
				return err
			}

			mu.Lock()
			sum, overflow := addOverflow(gasTotal, result.GasSpent)
			if overflow {
				gasOverflowed = true
			} else {
				gasTotal = sum
			}
			shouldAbort := false
			if !result.Satisfied() {
				log.Warn("predicate not satisfied", zap.Int("entry", i), zap.Int("failed_nodes", len(result.FailedNodes)), zap.Int("unsatisfied_leaves", len(result.UnsatisfiedLeaves)))
				exec := &ExecutionError{ConstraintsUnsatisfied: result.UnsatisfiedLeaves}
				for _, f := range result.FailedNodes {
					exec.ProgramErrors = append(exec.ProgramErrors, NodeFailure{Node: f.Node, Err: f.Err})
				}
				failures = append(failures, EntryFailure{Entry: i, Err: exec})
				shouldAbort = !cfg.CollectAllFailures
			}
			snapshot := append([]EntryFailure(nil), failures...)
			mu.Unlock()

			if shouldAbort {
				return &CheckerError{PredicateErrors: snapshot}
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(failures, func(a, b int) bool { return failures[a].Entry < failures[b].Entry })

	if gasOverflowed {
		return nil, &CheckerError{GasOverflowed: true}
	}
	if len(failures) > 0 {
		return nil, &CheckerError{PredicateErrors: failures}
	}
	return &Result{GasSpent: gasTotal}, nil
}

func addOverflow(a, b int64) (sum int64, overflow bool) {
	sum = a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, true
	}
	return sum, false
}
