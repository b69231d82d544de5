package engine

import (
	"fmt"
	"slices"
)

// Result contains the outcome of a successful search
type Result[N comparable] struct {
	Path     []N     `json:"path"`
	Cost     float64 `json:"cost"`
	Expanded int     `json:"expanded"`
}

// Search runs A* over a WeightedGraph.
//
// Its bookkeeping is reset at the start of every FindPath call and stays
// readable through CostSoFar and CameFrom until the next one.
type Search[N comparable] struct {
	heuristic Heuristic[N]
	options   Options

	costSoFar map[N]float64
	cameFrom  map[N]N
	frontier  *Frontier[N]
	expanded  int
}

// New creates a search engine. A nil heuristic falls back to Zero.
func New[N comparable](heuristic Heuristic[N], options ...Option) *Search[N] {
	if heuristic == nil {
		heuristic = Zero[N]
	}

	searchOptions := Options{}
	for _, option := range options {
		option(&searchOptions)
	}

	return &Search[N]{
		heuristic: heuristic,
		options:   searchOptions,
		costSoFar: make(map[N]float64),
		cameFrom:  make(map[N]N),
		frontier:  NewFrontier[N](),
	}
}

// FindPath is a convenience wrapper running a fresh Search once
func FindPath[N comparable](
	graph WeightedGraph[N],
	start N,
	goal N,
	heuristic Heuristic[N],
	options ...Option,
) (Result[N], error) {
	return New(heuristic, options...).FindPath(graph, start, goal)
}

// FindPath computes a lowest-cost path from start to goal.
//
// It returns ErrPathNotFound when the goal is unreachable and
// ErrExpansionLimitExceeded when the configured budget runs out first.
func (s *Search[N]) FindPath(graph WeightedGraph[N], start, goal N) (Result[N], error) {
	s.reset()

	s.costSoFar[start] = 0
	s.cameFrom[start] = start
	s.frontier.Insert(start, 0)

	for s.frontier.Len() > 0 {
		current, _, err := s.frontier.ExtractMin()
		if err != nil {
			break
		}

		if current == goal {
			break
		}

		if limit := s.options.MaxExpansions; limit > 0 && s.expanded >= limit {
			return Result[N]{Expanded: s.expanded},
				fmt.Errorf("%w: %d nodes expanded", ErrExpansionLimitExceeded, s.expanded)
		}
		s.expanded++

		// Stale entries land here too; their relaxation improves nothing.
		currentCost := s.costSoFar[current]
		for next := range graph.Neighbors(current) {
			newCost := currentCost + graph.Cost(current, next)
			if known, seen := s.costSoFar[next]; !seen || newCost < known {
				s.costSoFar[next] = newCost
				s.cameFrom[next] = current
				s.frontier.Insert(next, newCost+s.heuristic(next, goal))
			}
		}
	}

	path, err := s.reconstructPath(start, goal)
	if err != nil {
		return Result[N]{Expanded: s.expanded}, err
	}

	return Result[N]{
		Path:     path,
		Cost:     s.costSoFar[goal],
		Expanded: s.expanded,
	}, nil
}

// CostSoFar returns the best known cost from the last start to node
func (s *Search[N]) CostSoFar(node N) (float64, bool) {
	cost, ok := s.costSoFar[node]
	return cost, ok
}

// CameFrom returns the best known predecessor of node. The start node is its
// own predecessor.
func (s *Search[N]) CameFrom(node N) (N, bool) {
	prev, ok := s.cameFrom[node]
	return prev, ok
}

// Discovered returns how many distinct nodes the last search enqueued
func (s *Search[N]) Discovered() int {
	return len(s.costSoFar)
}

// Expanded returns how many nodes the last search expanded
func (s *Search[N]) Expanded() int {
	return s.expanded
}

func (s *Search[N]) reset() {
	clear(s.costSoFar)
	clear(s.cameFrom)
	s.frontier.Reset()
	s.expanded = 0
}

// reconstructPath walks predecessor links back from goal to start
func (s *Search[N]) reconstructPath(start, goal N) ([]N, error) {
	if _, ok := s.cameFrom[goal]; !ok {
		return nil, ErrPathNotFound
	}

	path := []N{}
	for node := goal; node != start; node = s.cameFrom[node] {
		path = append(path, node)
	}
	path = append(path, start)

	slices.Reverse(path)
	return path, nil
}

// PathCost sums graph.Cost over consecutive pairs of path
func PathCost[N comparable](graph WeightedGraph[N], path []N) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += graph.Cost(path[i-1], path[i])
	}
	return total
}
