package predicatevm

// PredicateResolver resolves a predicate address to its compiled graph.
// Implementations are assumed infallible: an address that does not
// resolve is a caller precondition violation, not a runtime error, so
// GetPredicate returns no error. Because Predicate and PredicateAddress
// are aliases of their internal counterparts, any PredicateResolver also
// satisfies the checker package's resolver interface without adaptation.
type PredicateResolver interface {
	GetPredicate(PredicateAddress) *Predicate
}

// ProgramResolver resolves a program's content address to its bytecode.
// Implementations are assumed infallible in the same way as
// PredicateResolver.
type ProgramResolver interface {
	GetProgram(ContentAddress) Program
}
