package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wricardo/pathfinder/pathfinding/engine"
	"github.com/wricardo/pathfinder/pathfinding/grid"
)

// pathServiceImpl implements the PathService interface
type pathServiceImpl struct {
	maps   ConfigManager
	logger *slog.Logger
}

// NewPathService creates a new path service instance
func NewPathService(maps ConfigManager, logger *slog.Logger) PathService {
	if logger == nil {
		logger = slog.Default()
	}
	return &pathServiceImpl{
		maps:   maps,
		logger: logger.With("component", "path_service"),
	}
}

// FindPath runs a single search over the requested map
func (s *pathServiceImpl) FindPath(ctx context.Context, req PathRequest) (*PathResult, error) {
	if err := ctx.Err(); err != nil {
		searchErrors.WithLabelValues("canceled").Inc()
		return nil, err
	}

	mapID, config, err := s.loadMap(req.Map)
	if err != nil {
		searchErrors.WithLabelValues("map").Inc()
		return nil, err
	}

	layout, err := config.Build()
	if err != nil {
		searchErrors.WithLabelValues("map").Inc()
		return nil, fmt.Errorf("failed to build map %s: %w", mapID, err)
	}
	if req.Diagonal != nil {
		layout.Grid.SetDiagonal(*req.Diagonal)
	}

	heuristicName := grid.ResolveHeuristic(req.Heuristic, config.Heuristic, layout.Grid.Diagonal())
	heuristic, err := engine.HeuristicByName(heuristicName)
	if err != nil {
		searchErrors.WithLabelValues("heuristic").Inc()
		return nil, fmt.Errorf("%w: %q", ErrUnknownHeuristic, heuristicName)
	}

	start, err := resolveEndpoint(layout.Grid, "start", req.Start, layout.Start, layout.HasStart)
	if err != nil {
		searchErrors.WithLabelValues("endpoint").Inc()
		return nil, err
	}
	goal, err := resolveEndpoint(layout.Grid, "goal", req.Goal, layout.Goal, layout.HasGoal)
	if err != nil {
		searchErrors.WithLabelValues("endpoint").Inc()
		return nil, err
	}

	limit := req.MaxExpansions
	if limit <= 0 {
		limit = config.MaxExpansions
	}

	began := time.Now()
	search := engine.New(heuristic, engine.WithExpansionLimit(limit))
	found, searchErr := search.FindPath(layout.Grid, start, goal)
	elapsed := time.Since(began)

	result := &PathResult{
		ID:         uuid.NewString(),
		Map:        mapID,
		Start:      start,
		Goal:       goal,
		Heuristic:  heuristicName,
		Diagonal:   layout.Grid.Diagonal(),
		Expanded:   found.Expanded,
		DurationMS: float64(elapsed.Microseconds()) / 1000,
	}

	switch {
	case searchErr == nil:
		result.Found = true
		result.Outcome = OutcomeFound
		result.Path = found.Path
		result.Cost = found.Cost
		result.Steps = len(found.Path) - 1
	case errors.Is(searchErr, engine.ErrPathNotFound):
		result.Outcome = OutcomePathNotFound
	case errors.Is(searchErr, engine.ErrExpansionLimitExceeded):
		result.Outcome = OutcomeExpansionLimitExceeded
	default:
		return nil, fmt.Errorf("search failed: %w", searchErr)
	}
	result.Rendered = grid.Render(layout.Grid, result.Path, start, goal)

	searchesTotal.WithLabelValues(mapID, string(result.Outcome)).Inc()
	searchDuration.WithLabelValues(mapID).Observe(elapsed.Seconds())
	searchExpanded.WithLabelValues(mapID).Observe(float64(result.Expanded))

	s.logger.InfoContext(ctx, "path search finished",
		"id", result.ID,
		"map", mapID,
		"start", start.String(),
		"goal", goal.String(),
		"heuristic", heuristicName,
		"outcome", result.Outcome,
		"cost", result.Cost,
		"expanded", result.Expanded,
		"discovered", search.Discovered(),
		"duration", elapsed,
	)

	return result, nil
}

// RenderPath returns the text drawing of a path search
func (s *pathServiceImpl) RenderPath(ctx context.Context, req PathRequest) (string, error) {
	result, err := s.FindPath(ctx, req)
	if err != nil {
		return "", err
	}
	return result.Rendered, nil
}

// ListMaps returns information about all available maps
func (s *pathServiceImpl) ListMaps(ctx context.Context) ([]*MapInfo, error) {
	return s.maps.ListConfigs()
}

// GetMap returns a stored map, or the default map when name is empty
func (s *pathServiceImpl) GetMap(ctx context.Context, name string) (*grid.MapConfig, error) {
	_, config, err := s.loadMap(name)
	return config, err
}

// SaveMap validates and stores a map
func (s *pathServiceImpl) SaveMap(ctx context.Context, name string, config *grid.MapConfig) error {
	if err := s.maps.SaveConfig(name, config); err != nil {
		return fmt.Errorf("failed to save map %s: %w", name, err)
	}
	s.logger.InfoContext(ctx, "map saved", "map", name)
	return nil
}

// loadMap resolves a map name, falling back to the default map
func (s *pathServiceImpl) loadMap(name string) (string, *grid.MapConfig, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		config := s.maps.GetDefault()
		if config == nil {
			return "", nil, fmt.Errorf("no default map configured")
		}
		return s.maps.DefaultID(), config, nil
	}

	config, err := s.maps.LoadConfig(name)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load map %s: %w", name, err)
	}
	return name, config, nil
}

// resolveEndpoint returns the requested endpoint or the layout marker and
// checks that it is an open cell
func resolveEndpoint(g *grid.SquareGrid, role string, requested *engine.Coordinate, marker engine.Coordinate, hasMarker bool) (engine.Coordinate, error) {
	var c engine.Coordinate
	switch {
	case requested != nil:
		c = *requested
	case hasMarker:
		c = marker
	default:
		return c, fmt.Errorf("%w: map has no %s cell and none was given", ErrInvalidEndpoint, role)
	}

	if !g.InBounds(c) {
		return c, fmt.Errorf("%w: %s %s is outside the %dx%d grid", ErrInvalidEndpoint, role, c, g.Width, g.Height)
	}
	if g.IsWall(c) {
		return c, fmt.Errorf("%w: %s %s is a wall", ErrInvalidEndpoint, role, c)
	}
	return c, nil
}
