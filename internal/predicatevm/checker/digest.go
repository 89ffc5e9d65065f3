package checker

import (
	"github.com/vybium/predicate-vm/internal/predicatevm/types"
	"github.com/vybium/predicate-vm/internal/predicatevm/word"
)

// solutionDigestSource implements cache.DigestSource over a whole
// solution's entries, grounded word-for-word on
// `crates/vm/src/access.rs`'s `init_predicate_exists`: each entry's digest
// covers its predicate data slots (each prefixed with its own word count),
// followed by the contract and predicate address words of the predicate it
// solves, all flattened to big-endian bytes before hashing.
type solutionDigestSource struct {
	solution *types.Solution
}

func (s solutionDigestSource) Len() int { return len(s.solution.Data) }

func (s solutionDigestSource) EncodeEntry(i int, dst []byte) []byte {
	entry := s.solution.Data[i]
	for _, slot := range entry.PredicateData {
		dst = appendWord(dst, types.Word(len(slot)))
		for _, w := range slot {
			dst = appendWord(dst, w)
		}
	}
	contract := word.Words4FromAddress(entry.PredicateToSolve.Contract)
	predicate := word.Words4FromAddress(entry.PredicateToSolve.Predicate)
	for _, w := range contract {
		dst = appendWord(dst, w)
	}
	for _, w := range predicate {
		dst = appendWord(dst, w)
	}
	return dst
}

func appendWord(dst []byte, w types.Word) []byte {
	b := word.BytesFromWord(w)
	return append(dst, b[:]...)
}
