// Package service provides the path-finding business logic behind every
// outer surface of the pathfinder.
//
// The service package implements:
//   - Map lookup through a ConfigManager
//   - Endpoint and heuristic resolution for a path request
//   - One engine.Search per request, so concurrent callers never share state
//   - Prometheus metrics and structured logging for every search
//
// Core Interfaces:
//
// PathService is the interface used by the REST API, the MCP tools and the
// CLI. ConfigManager is implemented by config.Manager.
//
// Outcomes:
//
// An unreachable goal or an exhausted expansion budget is reported in
// PathResult.Outcome rather than as an error. Errors are reserved for bad
// input (unknown map, unknown heuristic, invalid endpoints).
//
// Usage:
//
//	maps, _ := config.NewManager("configs")
//	paths := service.NewPathService(maps, slog.Default())
//
//	result, err := paths.FindPath(ctx, service.PathRequest{Map: "demo"})
//	if err != nil {
//		return err
//	}
//	fmt.Println(result.Rendered)
package service
