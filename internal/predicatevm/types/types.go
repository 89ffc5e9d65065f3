// Package types holds the domain types shared across the predicate VM's
// internal packages: solutions, predicates, programs, and the addresses
// that tie them together.
package types

import (
	"context"

	"github.com/vybium/predicate-vm/internal/predicatevm/word"
)

// Word, ContentAddress, and PredicateAddress are re-exported from word so
// callers only need to import one package for the VM's primitive types.
type (
	Word             = word.Word
	ContentAddress   = word.ContentAddress
	PredicateAddress = word.PredicateAddress
)

// Limits mirror the wire-format bounds every structural validator enforces.
const (
	MaxPredicateDataSlots = 100
	MaxSolutions          = 100
	MaxStateMutations     = 1000
	MaxValueWords         = 10_000
	MaxKeyWords           = 1000
	MaxNodes              = 255
	MaxEdges              = 255
	MaxProgramBytes       = 10_000
)

// Key is an ordered, non-empty sequence of words identifying a state slot.
type Key []Word

// Value is an ordered sequence of words; an empty Value denotes "absent".
type Value []Word

// Mutation proposes writing value at key within a contract's state.
type Mutation struct {
	Key   Key
	Value Value
}

// SolutionData is one entry of a Solution: the decision inputs and
// proposed state mutations justified by one predicate.
type SolutionData struct {
	PredicateToSolve PredicateAddress
	PredicateData    []Value
	StateMutations   []Mutation
}

// Solution is the ordered set of entries a checker validates together.
type Solution struct {
	Data []SolutionData
}

// Reads selects which state snapshot a node observes.
type Reads uint8

const (
	ReadsPre Reads = iota
	ReadsPost
)

// ReadsFromByte folds any byte value outside {0,1} into the Pre/Post pair, per
// the wire format's tolerant reads-byte handling.
func ReadsFromByte(b byte) Reads {
	return Reads(b % 2)
}

// LeafEdge marks a node with no outgoing edges.
const LeafEdge = 0xFFFF

// Node is one vertex of a predicate graph.
type Node struct {
	EdgeStart      uint16
	ProgramAddress ContentAddress
	Reads          Reads
}

// Predicate is a directed acyclic graph of programs.
type Predicate struct {
	Nodes []Node
	Edges []uint16
}

// ChildIndices returns the child node indices of node i, or nil if i is a
// leaf. Node edge_start values are packed in node order, so the end of
// node i's slice is the edge_start of the next node that has any edges at
// all (the nearest following non-leaf node), or the end of the edges
// slice if none follows.
func (p *Predicate) ChildIndices(i int) []uint16 {
	n := p.Nodes[i]
	if n.EdgeStart == LeafEdge {
		return nil
	}
	end := len(p.Edges)
	for j := i + 1; j < len(p.Nodes); j++ {
		if p.Nodes[j].EdgeStart != LeafEdge {
			end = int(p.Nodes[j].EdgeStart)
			break
		}
	}
	return p.Edges[n.EdgeStart:end]
}

// Program is opaque bytecode executed by the VM.
type Program []byte

// StateReader reads num_keys consecutive values from a contract's state,
// starting at startKey. "Consecutive" means startKey treated as a
// big-endian multi-word unsigned integer and incremented by one for each
// subsequent key, wrapping an individual word from its max value back to
// its min value and carrying into the next more significant word. An
// absent value is reported as a zero-length Value, not an error; the
// store itself (on-disk or remote) lives entirely outside this module.
type StateReader interface {
	ReadKeyRange(ctx context.Context, contract ContentAddress, startKey Key, numKeys int) ([]Value, error)
}
