package checker

import "github.com/vybium/predicate-vm/internal/predicatevm/types"

// MutableKeys returns the keys entry index's solution data proposes to
// mutate, in the same order they appear in StateMutations. Exposed as a
// standalone helper (grounded on `crates/vm/src/access.rs`'s
// `mut_keys_slices`) so callers building an `ops.Context` or inspecting a
// solution directly don't need to run a VM to learn the mutable-keys set
// the `MutKeys` op would expose.
func MutableKeys(solution *types.Solution, entry int) []types.Key {
	data := solution.Data[entry]
	keys := make([]types.Key, len(data.StateMutations))
	for i, m := range data.StateMutations {
		keys[i] = m.Key
	}
	return keys
}
