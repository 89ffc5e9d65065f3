package checker

import "github.com/vybium/predicate-vm/internal/predicatevm/types"

// CheckSolutionData validates solution.Data's shape independent of its
// proposed mutations: the entry count and each entry's predicate data
// slots, grounded on `crates/check/src/solution.rs`'s `check_data` split.
func CheckSolutionData(solution *types.Solution) error {
	if len(solution.Data) == 0 {
		return &StructuralError{Code: CodeEmptySolution}
	}
	if len(solution.Data) > types.MaxSolutions {
		return &StructuralError{Code: CodeTooManySolutions, N: len(solution.Data)}
	}
	for i, entry := range solution.Data {
		if len(entry.PredicateData) > types.MaxPredicateDataSlots {
			return &StructuralError{Code: CodeTooManyPredicateDataSlots, Entry: i, N: len(entry.PredicateData)}
		}
		for _, v := range entry.PredicateData {
			if len(v) > types.MaxValueWords {
				return &StructuralError{Code: CodePredicateDataValueTooLarge, Entry: i, N: len(v)}
			}
		}
	}
	return nil
}

// CheckStateMutations validates solution.Data's proposed mutations: the
// global mutation count, per-entry key uniqueness, and key/value sizes.
func CheckStateMutations(solution *types.Solution) error {
	total := 0
	for i, entry := range solution.Data {
		seen := make(map[string]struct{}, len(entry.StateMutations))
		for _, m := range entry.StateMutations {
			if len(m.Key) > types.MaxKeyWords {
				return &StructuralError{Code: CodeKeyTooLarge, Entry: i, N: len(m.Key)}
			}
			if len(m.Value) > types.MaxValueWords {
				return &StructuralError{Code: CodeValueTooLarge, Entry: i, N: len(m.Value)}
			}
			k := keyString(m.Key)
			if _, dup := seen[k]; dup {
				return &StructuralError{Code: CodeMultipleMutationsForSlot, Entry: i}
			}
			seen[k] = struct{}{}
		}
		total += len(entry.StateMutations)
	}
	if total > types.MaxStateMutations {
		return &StructuralError{Code: CodeTooManyStateMutations, N: total}
	}
	return nil
}

// CheckSolution runs every structural validation in the order spec.md
// describes: entry/slot shape first, then mutation shape.
func CheckSolution(solution *types.Solution) error {
	if err := CheckSolutionData(solution); err != nil {
		return err
	}
	return CheckStateMutations(solution)
}

func keyString(k types.Key) string {
	b := make([]byte, 8*len(k))
	for i, w := range k {
		for j := 0; j < 8; j++ {
			b[i*8+j] = byte(w >> (56 - 8*j))
		}
	}
	return string(b)
}
