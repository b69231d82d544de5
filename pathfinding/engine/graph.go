package engine

import "iter"

// WeightedGraph is the capability the search engine depends on.
//
// Neighbors yields the nodes reachable from node in one step. The order is
// the tie-break order during relaxation, so it must be deterministic.
// Cost returns the non-negative cost of moving between two adjacent nodes;
// it is only called for pairs produced by Neighbors.
type WeightedGraph[N comparable] interface {
	Neighbors(node N) iter.Seq[N]
	Cost(from, to N) float64
}
