// Package config provides map configuration management for the pathfinder.
//
// The config package handles:
//   - Loading map configurations from JSON and YAML files
//   - Configuration validation through grid.ValidateMapConfig
//   - Default map management
//   - Map discovery and listing
//
// Configuration Format:
//
// Maps are stored as .json, .yaml or .yml files in the configs directory.
// Each file defines:
//   - The grid layout (. open, # wall, S start, G goal, 1-9 weighted cell)
//   - Whether diagonal movement is allowed
//   - The default heuristic and expansion budget
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific map
//	demo, err := manager.LoadConfig("demo")
//
//	// Get default map ("demo", else the first valid map, else a built-in one)
//	defaultMap := manager.GetDefault()
//
//	// List available maps
//	maps, err := manager.ListConfigs()
package config
