package engine

import "errors"

var (
	// ErrEmptyFrontier is returned by ExtractMin on an empty frontier.
	// The search loop never surfaces it to callers.
	ErrEmptyFrontier = errors.New("frontier is empty")

	// ErrPathNotFound means the goal cannot be reached from the start
	ErrPathNotFound = errors.New("path not found")

	// ErrExpansionLimitExceeded means the search gave up after expanding
	// the configured number of nodes
	ErrExpansionLimitExceeded = errors.New("expansion limit exceeded")
)
