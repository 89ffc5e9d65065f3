package predicatevm

import (
	"github.com/vybium/predicate-vm/internal/predicatevm/checker"
)

// StructuralError reports a solution shape violation found before any
// predicate is resolved or executed: too many entries, an oversized
// predicate-data slot, a duplicate mutation key, and so on. Use errors.As
// to recover one from an error Check returns.
type StructuralError = checker.StructuralError

// StructuralCode enumerates the ways CheckSolutionData or
// CheckStateMutations can fail.
type StructuralCode = checker.StructuralCode

const (
	CodeEmptySolution              = checker.CodeEmptySolution
	CodeTooManySolutions           = checker.CodeTooManySolutions
	CodeTooManyPredicateDataSlots  = checker.CodeTooManyPredicateDataSlots
	CodePredicateDataValueTooLarge = checker.CodePredicateDataValueTooLarge
	CodeTooManyStateMutations      = checker.CodeTooManyStateMutations
	CodeMultipleMutationsForSlot   = checker.CodeMultipleMutationsForSlot
	CodeKeyTooLarge                = checker.CodeKeyTooLarge
	CodeValueTooLarge              = checker.CodeValueTooLarge
)

// ExecutionError is the failure recorded for one solution entry whose
// predicate did not run to a fully satisfied completion: some node's
// program errored, some leaf constraint evaluated false, or both.
type ExecutionError = checker.ExecutionError

// NodeFailure pairs a failed node's index with the error its program (or
// the graph executor's own handoff logic) produced. The wrapped error is
// an internal *vm.Error, *vm.OutOfGas, or graph handoff error; match on its
// message, or unwrap progressively with errors.As if a caller needs a
// coarser classification than "this node failed".
type NodeFailure = checker.NodeFailure

// EntryFailure pairs a solution entry index with the ExecutionError its
// predicate produced.
type EntryFailure = checker.EntryFailure

// CheckerError is returned from Check when one or more entries fail
// execution, or when gas summation across entries overflows.
type CheckerError = checker.CheckerError
