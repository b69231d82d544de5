package service

import (
	"context"

	"github.com/wricardo/pathfinder/pathfinding/grid"
)

// PathService defines all path-finding operations
type PathService interface {
	// Search
	FindPath(ctx context.Context, req PathRequest) (*PathResult, error)
	RenderPath(ctx context.Context, req PathRequest) (string, error)

	// Maps
	ListMaps(ctx context.Context) ([]*MapInfo, error)
	GetMap(ctx context.Context, name string) (*grid.MapConfig, error)
	SaveMap(ctx context.Context, name string, config *grid.MapConfig) error
}

// ConfigManager handles map configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*grid.MapConfig, error)
	ListConfigs() ([]*MapInfo, error)
	GetDefault() *grid.MapConfig
	DefaultID() string
	SaveConfig(name string, config *grid.MapConfig) error
}
