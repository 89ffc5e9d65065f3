// Package checker validates a solution's structure and runs each of its
// entries' predicates to completion, aggregating gas and failures across
// the whole solution.
package checker

import (
	"fmt"
	"strings"
)

// StructuralCode enumerates the ways a solution can fail shape validation
// before any predicate is resolved or executed.
type StructuralCode int

const (
	CodeEmptySolution StructuralCode = iota
	CodeTooManySolutions
	CodeTooManyPredicateDataSlots
	CodePredicateDataValueTooLarge
	CodeTooManyStateMutations
	CodeMultipleMutationsForSlot
	CodeKeyTooLarge
	CodeValueTooLarge
)

// StructuralError reports the first solution shape violation found, naming
// the offending entry and the limit it breached.
type StructuralError struct {
	Code  StructuralCode
	Entry int
	N     int
}

func (e *StructuralError) Error() string {
	switch e.Code {
	case CodeEmptySolution:
		return "checker: solution has no entries"
	case CodeTooManySolutions:
		return fmt.Sprintf("checker: %d solution entries exceeds the limit", e.N)
	case CodeTooManyPredicateDataSlots:
		return fmt.Sprintf("checker: entry %d: %d predicate data slots exceeds the limit", e.Entry, e.N)
	case CodePredicateDataValueTooLarge:
		return fmt.Sprintf("checker: entry %d: predicate data value of %d words exceeds the limit", e.Entry, e.N)
	case CodeTooManyStateMutations:
		return fmt.Sprintf("checker: %d total state mutations exceeds the limit", e.N)
	case CodeMultipleMutationsForSlot:
		return fmt.Sprintf("checker: entry %d: multiple mutations for the same key", e.Entry)
	case CodeKeyTooLarge:
		return fmt.Sprintf("checker: entry %d: key of %d words exceeds the limit", e.Entry, e.N)
	case CodeValueTooLarge:
		return fmt.Sprintf("checker: entry %d: mutation value of %d words exceeds the limit", e.Entry, e.N)
	default:
		return fmt.Sprintf("checker: entry %d: structural error", e.Entry)
	}
}

// ExecutionError is the per-entry failure recorded when an entry's
// predicate graph does not run to a fully satisfied completion: program
// failures, unsatisfied constraints, and graph-level handoff failures are
// all folded into one value so the checker's per-entry result type stays
// uniform.
type ExecutionError struct {
	ProgramErrors          []NodeFailure
	ConstraintsUnsatisfied []int
}

// NodeFailure pairs a failed node's index with the error its program (or
// the graph executor's handoff logic) produced.
type NodeFailure struct {
	Node int
	Err  error
}

func (e *ExecutionError) Error() string {
	var b strings.Builder
	for _, f := range e.ProgramErrors {
		fmt.Fprintf(&b, "node %d: %v\n", f.Node, f.Err)
	}
	if len(e.ConstraintsUnsatisfied) > 0 {
		fmt.Fprintf(&b, "constraints unsatisfied: %v\n", e.ConstraintsUnsatisfied)
	}
	return strings.TrimRight(b.String(), "\n")
}

// EntryFailure pairs a solution entry index with the ExecutionError its
// predicate produced.
type EntryFailure struct {
	Entry int
	Err   *ExecutionError
}

// CheckerError is returned when one or more entries fail execution, or gas
// summation overflows.
type CheckerError struct {
	PredicateErrors []EntryFailure
	GasOverflowed   bool
}

func (e *CheckerError) Error() string {
	if e.GasOverflowed {
		return "checker: gas summation overflowed"
	}
	var b strings.Builder
	for _, f := range e.PredicateErrors {
		fmt.Fprintf(&b, "entry %d:\n%v\n", f.Entry, f.Err)
	}
	return strings.TrimRight(b.String(), "\n")
}
