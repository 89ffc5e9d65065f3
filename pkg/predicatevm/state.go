package predicatevm

import (
	"github.com/vybium/predicate-vm/internal/predicatevm/types"
)

// StateReader reads numKeys consecutive values from a contract's state,
// starting at startKey. "Consecutive" treats startKey as a big-endian
// multi-word unsigned integer, incremented by one per key with carry
// between words. An absent value is reported as a zero-length Value, not
// an error: the underlying store, on-disk or remote, lives entirely
// outside this module.
type StateReader = types.StateReader
