// Package mcp provides the Model Context Protocol surface of the pathfinder.
//
// The package exposes the following tools for AI agents:
//   - list_maps: List available maps with their size and settings
//   - get_map: Show a map layout
//   - find_path: Compute a lowest-cost path and report cost and steps
//   - render_path: Draw the path on the map
//
// Every tool is a thin proxy over the REST API, so the MCP server can run
// next to the HTTP server (the /mcp endpoint) or as a separate stdio process
// pointed at a running API.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080", version)
//
//	// Stdio mode
//	server.ServeStdio(client.GetMCPServer())
//
//	// HTTP mode
//	http.Handle("/mcp", server.NewStreamableHTTPServer(client.GetMCPServer()))
package mcp
