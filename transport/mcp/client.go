package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/pathfinder/pathfinding/engine"
	"github.com/wricardo/pathfinder/pathfinding/grid"
	"github.com/wricardo/pathfinder/pathfinding/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL, version string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer(version)
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer(version string) {
	c.mcpServer = server.NewMCPServer(
		"Grid Pathfinder",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Grid Pathfinder - MCP Interface

This is a thin client that proxies all requests to the REST API server.

Maps are text grids: '.' open, '#' wall, 'S' start, 'G' goal, '1'-'9' an
open cell that costs that much to enter. Coordinates are (x, y) with (0, 0)
in the top-left corner and y growing downwards.

AVAILABLE TOOLS:
- list_maps: List available maps
- get_map: Show a map layout and settings
- find_path: Compute a lowest-cost path (A*) between two cells
- render_path: Draw a computed path on the map ('*' marks the path)

Start and goal default to the map's S and G cells. Heuristics: manhattan,
octile, euclidean, zero.`),
	)

	c.registerTools()
}

// pathProperties are the search settings shared by find_path and render_path
func pathProperties() map[string]interface{} {
	coordinate := func(description string) map[string]interface{} {
		return map[string]interface{}{
			"type":        "integer",
			"description": description,
		}
	}

	return map[string]interface{}{
		"map_id": map[string]interface{}{
			"type":        "string",
			"description": "Map identifier from list_maps",
		},
		"start_x": coordinate("Start column (optional, defaults to the S cell)"),
		"start_y": coordinate("Start row (optional, defaults to the S cell)"),
		"goal_x":  coordinate("Goal column (optional, defaults to the G cell)"),
		"goal_y":  coordinate("Goal row (optional, defaults to the G cell)"),
		"heuristic": map[string]interface{}{
			"type":        "string",
			"description": "Heuristic to use (optional)",
			"enum":        []string{"manhattan", "octile", "euclidean", "zero"},
		},
		"diagonal": map[string]interface{}{
			"type":        "boolean",
			"description": "Allow diagonal moves (optional, defaults to the map setting)",
		},
		"max_expansions": map[string]interface{}{
			"type":        "integer",
			"description": "Stop after expanding this many nodes (optional, 0 = unbounded)",
		},
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_maps",
		Description: "List all available maps",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListMaps)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_map",
		Description: "Get the layout and settings of a map",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"map_id": map[string]interface{}{
					"type":        "string",
					"description": "Map identifier from list_maps",
				},
			},
			Required: []string{"map_id"},
		},
	}, c.handleGetMap)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "find_path",
		Description: "Find a lowest-cost path between two cells of a map",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: pathProperties(),
			Required:   []string{"map_id"},
		},
	}, c.handleFindPath)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "render_path",
		Description: "Draw the lowest-cost path on the map as text",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: pathProperties(),
			Required:   []string{"map_id"},
		},
	}, c.handleRenderPath)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	data, err := c.apiCallRaw(ctx, method, path, body)
	if err != nil {
		return err
	}

	if result != nil {
		return json.Unmarshal(data, result)
	}
	return nil
}

func (c *Client) apiCallRaw(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		if json.Unmarshal(data, &errResp) == nil {
			if msg, ok := errResp["error"]; ok {
				return nil, fmt.Errorf("%s", msg)
			}
		}
		return nil, fmt.Errorf("API error: %d", resp.StatusCode)
	}

	return data, nil
}

// Tool handlers

func (c *Client) handleListMaps(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count int               `json:"count"`
		Maps  []service.MapInfo `json:"maps"`
	}

	if err := c.apiCall(ctx, "GET", "/api/maps", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMapList(response.Maps)), nil
}

func (c *Client) handleGetMap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	mapID, _ := args["map_id"].(string)
	if mapID == "" {
		return mcp.NewToolResultError("map_id is required"), nil
	}

	var config grid.MapConfig
	if err := c.apiCall(ctx, "GET", "/api/maps/"+url.PathEscape(mapID), nil, &config); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMap(mapID, &config)), nil
}

func (c *Client) handleFindPath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	mapID, req, err := pathRequestFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.PathResult
	if err := c.apiCall(ctx, "POST", "/api/maps/"+url.PathEscape(mapID)+"/path", req, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPathResult(&result)), nil
}

func (c *Client) handleRenderPath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	mapID, req, err := pathRequestFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := c.apiCallRaw(ctx, "GET", "/api/maps/"+url.PathEscape(mapID)+"/render?"+renderQuery(req).Encode(), nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(string(data)), nil
}

// pathRequestFromArgs reads the shared search settings from tool arguments
func pathRequestFromArgs(args map[string]interface{}) (string, service.PathRequest, error) {
	var req service.PathRequest

	mapID, _ := args["map_id"].(string)
	if mapID == "" {
		return "", req, fmt.Errorf("map_id is required")
	}

	var err error
	if req.Start, err = coordinateFromArgs(args, "start_x", "start_y"); err != nil {
		return "", req, err
	}
	if req.Goal, err = coordinateFromArgs(args, "goal_x", "goal_y"); err != nil {
		return "", req, err
	}

	req.Heuristic, _ = args["heuristic"].(string)
	if diagonal, ok := args["diagonal"].(bool); ok {
		req.Diagonal = &diagonal
	}
	if limit, ok := args["max_expansions"].(float64); ok {
		req.MaxExpansions = int(limit)
	}

	return mapID, req, nil
}

func coordinateFromArgs(args map[string]interface{}, xKey, yKey string) (*engine.Coordinate, error) {
	x, hasX := args[xKey].(float64)
	y, hasY := args[yKey].(float64)
	switch {
	case !hasX && !hasY:
		return nil, nil
	case hasX != hasY:
		return nil, fmt.Errorf("%s and %s must be given together", xKey, yKey)
	}
	return &engine.Coordinate{X: int(x), Y: int(y)}, nil
}

func renderQuery(req service.PathRequest) url.Values {
	query := url.Values{}
	if req.Start != nil {
		query.Set("sx", strconv.Itoa(req.Start.X))
		query.Set("sy", strconv.Itoa(req.Start.Y))
	}
	if req.Goal != nil {
		query.Set("gx", strconv.Itoa(req.Goal.X))
		query.Set("gy", strconv.Itoa(req.Goal.Y))
	}
	if req.Heuristic != "" {
		query.Set("heuristic", req.Heuristic)
	}
	if req.Diagonal != nil {
		query.Set("diagonal", strconv.FormatBool(*req.Diagonal))
	}
	if req.MaxExpansions > 0 {
		query.Set("max_expansions", strconv.Itoa(req.MaxExpansions))
	}
	return query
}

// Formatting helpers

func formatMapList(maps []service.MapInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Available Maps (%d):\n\n", len(maps))
	for _, m := range maps {
		fmt.Fprintf(&b, "• %s (%s)\n", m.MapID, m.Name)
		if m.Description != "" {
			fmt.Fprintf(&b, "  %s\n", m.Description)
		}
		fmt.Fprintf(&b, "  Grid: %dx%d, Walls: %d, Diagonal: %t, Heuristic: %s\n\n",
			m.Width, m.Height, m.Walls, m.Diagonal, m.Heuristic)
	}
	return b.String()
}

func formatMap(mapID string, config *grid.MapConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Map: %s (%s)\n", mapID, config.Name)
	if config.Description != "" {
		fmt.Fprintf(&b, "%s\n", config.Description)
	}
	fmt.Fprintf(&b, "Diagonal: %t, Heuristic: %s", config.Diagonal, config.HeuristicName())
	if config.MaxExpansions > 0 {
		fmt.Fprintf(&b, ", Max expansions: %d", config.MaxExpansions)
	}
	b.WriteString("\n\n")
	for _, row := range config.Layout {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	return b.String()
}

func formatPathResult(result *service.PathResult) string {
	var b strings.Builder

	switch result.Outcome {
	case service.OutcomeFound:
		fmt.Fprintf(&b, "✓ Path found on %s from %s to %s\n", result.Map, result.Start, result.Goal)
		fmt.Fprintf(&b, "Cost: %g, Steps: %d, Expanded: %d\n", result.Cost, result.Steps, result.Expanded)
		parts := make([]string, len(result.Path))
		for i, c := range result.Path {
			parts[i] = c.String()
		}
		fmt.Fprintf(&b, "Path: %s\n", strings.Join(parts, " -> "))
	case service.OutcomeExpansionLimitExceeded:
		fmt.Fprintf(&b, "✗ Search on %s stopped after expanding %d nodes (expansion limit)\n", result.Map, result.Expanded)
	default:
		fmt.Fprintf(&b, "✗ No path on %s from %s to %s (expanded %d nodes)\n", result.Map, result.Start, result.Goal, result.Expanded)
	}

	if result.Rendered != "" {
		b.WriteString("\n")
		b.WriteString(result.Rendered)
	}
	return b.String()
}
