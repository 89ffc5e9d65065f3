// Package predicatevm is the public API for checking a solution against a
// set of predicates: declarative constraints, compiled to bytecode and
// organised into a directed acyclic graph per predicate, that a proposed
// state transition must satisfy before it is accepted.
//
// # Features
//
//   - A deterministic, gas-metered stack machine over signed 64-bit words,
//     covering stack, arithmetic, predicate, cryptographic, memory, access,
//     state-read and control-flow operations.
//   - Concurrent execution of a predicate's node graph: one task per node,
//     children scheduled as soon as every parent publishes its stack and
//     memory, constraint (leaf) nodes and ordinary nodes classified
//     automatically.
//   - A solution checker that validates structure first (entry, slot, key
//     and value bounds) and only then resolves and runs predicates,
//     aggregating gas spent and per-entry failures across the whole
//     solution.
//
// # Quick Start
//
//	cfg := predicatevm.DefaultConfig()
//	result, err := predicatevm.Check(ctx, solution, predicates, programs, preState, postState, cfg)
//	if err != nil {
//		var cerr *predicatevm.CheckerError
//		if errors.As(err, &cerr) {
//			// inspect cerr.PredicateErrors for the entries that failed
//		}
//		return err
//	}
//	fmt.Println("gas spent:", result.GasSpent)
//
// # Architecture
//
// This package is a thin facade over internal/predicatevm's packages
// (bytecode, vm, graph, checker): it re-exports the domain types and error
// taxonomy a caller needs and wires Check straight through to the internal
// checker, without duplicating any of the evaluation logic. Callers resolve
// predicates and programs through the PredicateResolver and ProgramResolver
// interfaces, and read chain state through StateReader; none of the three
// prescribe how or where that data is stored.
package predicatevm
