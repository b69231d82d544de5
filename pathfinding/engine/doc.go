// Package engine provides the A* search core of the pathfinder.
//
// The engine package implements:
//   - Coordinate, the 2D integer key used to identify grid nodes
//   - WeightedGraph, the capability a caller's graph must provide
//   - Frontier, a binary min-heap with insertion-order tie-breaking
//   - Search, the best-first relaxation loop and path reconstruction
//
// Graph Capability:
//
// Any type with Neighbors and Cost methods can be searched. Neighbors must
// yield a finite, deterministic sequence and Cost must be finite and
// non-negative. The engine does not validate either; violating the contract
// leaves the result unspecified.
//
// Usage:
//
//	search := engine.New(engine.Manhattan, engine.WithExpansionLimit(10000))
//	result, err := search.FindPath(graph, engine.Coordinate{X: 0, Y: 0}, engine.Coordinate{X: 9, Y: 5})
//	if errors.Is(err, engine.ErrPathNotFound) {
//		// goal is unreachable
//	}
//
// Heuristics:
//
// Manhattan is admissible only for 4-directional unit-cost grids. Use Octile
// for 8-directional grids, or Zero when nothing is known about the graph.
//
// Concurrency:
//
// A Search owns its bookkeeping and resets it on every FindPath call. It can
// be reused sequentially but must not be shared between goroutines.
package engine
