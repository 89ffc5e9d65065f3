package predicatevm

import (
	"context"

	"github.com/vybium/predicate-vm/internal/predicatevm/checker"
)

// Result is the outcome of checking a whole solution: the total gas spent
// across every entry's predicate graph.
type Result = checker.Result

// Check validates solution's structure, then resolves and runs every
// entry's predicate graph concurrently, one task per entry. It returns a
// *StructuralError immediately if the solution's shape is invalid, without
// resolving or executing anything; otherwise it returns a *CheckerError
// naming every entry whose predicate did not run to a fully satisfied
// completion, or reporting that gas summation overflowed.
//
// pre and post select the state snapshot each predicate node reads,
// according to its Reads tag.
func Check(ctx context.Context, solution *Solution, predicates PredicateResolver, programs ProgramResolver, pre, post StateReader, cfg Config) (*Result, error) {
	return checker.Check(ctx, solution, predicates, programs, pre, post, cfg)
}

// CheckSolutionData validates a solution's entry count, predicate-data
// slot counts, and predicate-data value sizes, without touching state
// mutations or executing any predicate.
func CheckSolutionData(solution *Solution) error {
	return checker.CheckSolutionData(solution)
}

// CheckStateMutations validates a solution's proposed state mutations:
// no duplicate keys within an entry, key and value sizes within bounds,
// and the total mutation count within the solution-wide limit.
func CheckStateMutations(solution *Solution) error {
	return checker.CheckStateMutations(solution)
}
