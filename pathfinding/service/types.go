package service

import (
	"errors"

	"github.com/wricardo/pathfinder/pathfinding/engine"
)

var (
	ErrInvalidEndpoint  = errors.New("invalid endpoint")
	ErrUnknownHeuristic = errors.New("unknown heuristic")
)

// Outcome describes how a search terminated
type Outcome string

const (
	OutcomeFound                  Outcome = "found"
	OutcomePathNotFound           Outcome = "path_not_found"
	OutcomeExpansionLimitExceeded Outcome = "expansion_limit_exceeded"
)

// PathRequest asks for a path across a stored map. Nil endpoints fall back
// to the map's S and G cells; empty fields fall back to the map settings.
type PathRequest struct {
	Map           string             `json:"map"`
	Start         *engine.Coordinate `json:"start,omitempty"`
	Goal          *engine.Coordinate `json:"goal,omitempty"`
	Heuristic     string             `json:"heuristic,omitempty"`
	Diagonal      *bool              `json:"diagonal,omitempty"`
	MaxExpansions int                `json:"max_expansions,omitempty"`
}

// PathResult contains the result of a path search
type PathResult struct {
	ID         string              `json:"id"`
	Map        string              `json:"map"`
	Start      engine.Coordinate   `json:"start"`
	Goal       engine.Coordinate   `json:"goal"`
	Heuristic  string              `json:"heuristic"`
	Diagonal   bool                `json:"diagonal"`
	Found      bool                `json:"found"`
	Outcome    Outcome             `json:"outcome"`
	Path       []engine.Coordinate `json:"path"`
	Cost       float64             `json:"cost"`
	Steps      int                 `json:"steps"`
	Expanded   int                 `json:"expanded"`
	Rendered   string              `json:"rendered"`
	DurationMS float64             `json:"duration_ms"`
}

// MapInfo provides information about a stored map
type MapInfo struct {
	Filename    string `json:"filename"`
	MapID       string `json:"map_id"` // The identifier used in path requests
	Name        string `json:"name"`   // Display name
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Walls       int    `json:"walls"`
	Diagonal    bool   `json:"diagonal"`
	Heuristic   string `json:"heuristic"`
}
