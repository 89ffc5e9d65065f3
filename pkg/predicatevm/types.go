package predicatevm

import (
	"github.com/vybium/predicate-vm/internal/predicatevm/types"
)

// Word, ContentAddress and PredicateAddress are the VM's primitive types:
// a signed 64-bit machine word, a 32-byte content address, and the
// (contract, predicate) address pair a solution entry names.
type (
	Word             = types.Word
	ContentAddress   = types.ContentAddress
	PredicateAddress = types.PredicateAddress
)

// Key, Value and Mutation describe one proposed state write: value at key,
// justified by a predicate. An empty Value denotes "absent".
type (
	Key      = types.Key
	Value    = types.Value
	Mutation = types.Mutation
)

// SolutionData and Solution are the unit a checker validates: one entry
// per predicate being solved, grouped into the solution proposed for a
// whole state transition.
type (
	SolutionData = types.SolutionData
	Solution     = types.Solution
)

// Reads selects which state snapshot a predicate graph node observes.
type Reads = types.Reads

const (
	ReadsPre  = types.ReadsPre
	ReadsPost = types.ReadsPost
)

// LeafEdge marks a node with no outgoing edges, so ChildIndices reports it
// as a leaf (constraint) node.
const LeafEdge = types.LeafEdge

// Node, Predicate and Program describe one predicate's compiled graph:
// Program is the opaque bytecode run at each node, Node names the program
// a vertex runs and the state snapshot it reads, and Predicate is the
// directed acyclic graph of Nodes connected by Edges.
type (
	Node      = types.Node
	Predicate = types.Predicate
	Program   = types.Program
)

// Limits mirror the wire-format bounds the checker's structural validation
// enforces before any predicate is resolved or executed.
const (
	MaxPredicateDataSlots = types.MaxPredicateDataSlots
	MaxSolutions          = types.MaxSolutions
	MaxStateMutations     = types.MaxStateMutations
	MaxValueWords         = types.MaxValueWords
	MaxKeyWords           = types.MaxKeyWords
	MaxNodes              = types.MaxNodes
	MaxEdges              = types.MaxEdges
	MaxProgramBytes       = types.MaxProgramBytes
)
