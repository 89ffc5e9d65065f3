package graph

// Config tunes how Run reports multiple node failures within one
// predicate's evaluation.
type Config struct {
	// CollectAllFailures, when true, awaits every node task to completion
	// and reports every failure it finds. When false, the first node
	// failure cancels its siblings and Run returns as soon as the
	// in-flight tasks unwind.
	CollectAllFailures bool
}
