// Package api provides HTTP REST API handlers for the pathfinder.
//
// The api package implements:
//   - Map listing, retrieval and creation
//   - Path search and text rendering
//   - Prometheus metrics exposition
//   - WebSocket upgrade handling for the path feed
//
// Endpoints:
//
// Maps:
//   - GET /api/maps - List available maps
//   - POST /api/maps - Validate and store a map
//   - GET /api/maps/{name} - Get a map configuration
//
// Search:
//   - POST /api/maps/{name}/path - Find a path
//   - GET /api/maps/{name}/render - Find a path and return the drawing
//
// Other:
//   - GET /api/health - Health check
//   - GET /metrics - Prometheus metrics
//   - GET /ws?map={name} - WebSocket feed of computed paths
//
// Request/Response Format:
//
// Path requests are JSON; every field is optional:
//
//	{
//	  "start": {"x": 0, "y": 0},
//	  "goal": {"x": 9, "y": 5},
//	  "heuristic": "manhattan|octile|euclidean|zero",
//	  "diagonal": false,
//	  "max_expansions": 1000
//	}
//
// The render endpoint takes the same settings as query parameters
// (sx, sy, gx, gy, heuristic, diagonal, max_expansions) and answers with
// text/plain.
//
// Errors are returned as {"error": "message"} with 404 for unknown maps,
// 400 for invalid input and 500 otherwise. An unreachable goal is not an
// error: the result carries "found": false and its outcome.
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run(ctx)
//
//	server := api.NewServer(pathService, hub, logger)
//	http.ListenAndServe(":8080", server)
package api
