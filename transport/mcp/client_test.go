package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/pathfinder/api"
	"github.com/wricardo/pathfinder/pathfinding/config"
	"github.com/wricardo/pathfinder/pathfinding/engine"
	"github.com/wricardo/pathfinder/pathfinding/service"
)

const demoMap = `{
  "name": "demo",
  "description": "Demo grid",
  "layout": [
    "S........#",
    ".#######.#",
    ".#....#..#",
    "...##.#...",
    "#####.###.",
    "#####....G"
  ]
}`

const walledMap = `{
  "name": "walled",
  "layout": ["..#..", "S.#.G", "..#.."]
}`

// newTestAPI runs the real REST API over a temporary config directory
func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "demo.json"), []byte(demoMap), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "walled.json"), []byte(walledMap), 0644))

	manager, err := config.NewManager(dir)
	require.NoError(t, err)

	server := httptest.NewServer(api.NewServer(service.NewPathService(manager, nil), nil, nil))
	t.Cleanup(server.Close)
	return server
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), name string, args map[string]interface{}) (string, bool) {
	t.Helper()

	result, err := handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "Expected text content in result")
	return text.Text, result.IsError
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/", "test")

	require.NotNil(t, client)
	assert.Equal(t, "http://localhost:8080", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.GetMCPServer())
}

func TestClient_apiCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "healthy"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test")

	var response map[string]interface{}
	require.NoError(t, client.apiCall(context.Background(), "GET", "/api/health", nil, &response))
	assert.Equal(t, "healthy", response["status"])
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999", "test")

	err := client.apiCall(context.Background(), "GET", "/api/health", nil, nil)
	assert.Error(t, err)
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/json" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "map not here"}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test")

	err := client.apiCall(context.Background(), "GET", "/plain", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error: 500")

	err = client.apiCall(context.Background(), "GET", "/json", nil, nil)
	require.Error(t, err)
	assert.Equal(t, "map not here", err.Error())
}

func TestClient_ListMaps(t *testing.T) {
	client := NewClient(newTestAPI(t).URL, "test")

	text, isError := callTool(t, client.handleListMaps, "list_maps", map[string]interface{}{})

	assert.False(t, isError)
	assert.Contains(t, text, "Available Maps (2)")
	assert.Contains(t, text, "• demo (demo)")
	assert.Contains(t, text, "Grid: 10x6, Walls: 28")
}

func TestClient_GetMap(t *testing.T) {
	client := NewClient(newTestAPI(t).URL, "test")

	text, isError := callTool(t, client.handleGetMap, "get_map", map[string]interface{}{"map_id": "walled"})
	assert.False(t, isError)
	assert.Contains(t, text, "Map: walled")
	assert.Contains(t, text, "S.#.G")

	text, isError = callTool(t, client.handleGetMap, "get_map", map[string]interface{}{"map_id": "nope"})
	assert.True(t, isError)
	assert.Contains(t, text, "configuration not found")

	_, isError = callTool(t, client.handleGetMap, "get_map", nil)
	assert.True(t, isError)
}

func TestClient_FindPath(t *testing.T) {
	client := NewClient(newTestAPI(t).URL, "test")

	text, isError := callTool(t, client.handleFindPath, "find_path", map[string]interface{}{"map_id": "demo"})
	assert.False(t, isError)
	assert.Contains(t, text, "✓ Path found on demo from (0, 0) to (9, 5)")
	assert.Contains(t, text, "Cost: 14, Steps: 14")
	assert.Contains(t, text, "(0, 0) -> (1, 0)")
	assert.Contains(t, text, "S********#")

	text, isError = callTool(t, client.handleFindPath, "find_path", map[string]interface{}{
		"map_id":  "demo",
		"start_x": float64(0),
		"start_y": float64(3),
		"goal_x":  float64(2),
		"goal_y":  float64(3),
	})
	assert.False(t, isError)
	assert.Contains(t, text, "Path: (0, 3) -> (1, 3) -> (2, 3)")
}

func TestClient_FindPath_Outcomes(t *testing.T) {
	client := NewClient(newTestAPI(t).URL, "test")

	text, isError := callTool(t, client.handleFindPath, "find_path", map[string]interface{}{"map_id": "walled"})
	assert.False(t, isError)
	assert.Contains(t, text, "✗ No path on walled")

	text, isError = callTool(t, client.handleFindPath, "find_path", map[string]interface{}{
		"map_id":         "demo",
		"max_expansions": float64(2),
	})
	assert.False(t, isError)
	assert.Contains(t, text, "expansion limit")

	text, isError = callTool(t, client.handleFindPath, "find_path", map[string]interface{}{
		"map_id": "demo",
		"goal_x": float64(9),
		"goal_y": float64(0),
	})
	assert.True(t, isError)
	assert.Contains(t, text, "is a wall")

	text, isError = callTool(t, client.handleFindPath, "find_path", map[string]interface{}{
		"map_id":  "demo",
		"start_x": float64(1),
	})
	assert.True(t, isError)
	assert.Contains(t, text, "must be given together")
}

func TestClient_RenderPath(t *testing.T) {
	client := NewClient(newTestAPI(t).URL, "test")

	text, isError := callTool(t, client.handleRenderPath, "render_path", map[string]interface{}{
		"map_id":    "demo",
		"heuristic": "zero",
	})

	assert.False(t, isError)
	assert.Equal(t, "S********#\n.#######*#\n.#....#.*#\n...##.#.**\n#####.###*\n#####....G\n", text)
}

func TestPathRequestFromArgs(t *testing.T) {
	mapID, req, err := pathRequestFromArgs(map[string]interface{}{
		"map_id":         "demo",
		"start_x":        float64(1),
		"start_y":        float64(2),
		"heuristic":      "octile",
		"diagonal":       true,
		"max_expansions": float64(40),
	})
	require.NoError(t, err)

	assert.Equal(t, "demo", mapID)
	assert.Equal(t, &engine.Coordinate{X: 1, Y: 2}, req.Start)
	assert.Nil(t, req.Goal)
	assert.Equal(t, "octile", req.Heuristic)
	require.NotNil(t, req.Diagonal)
	assert.True(t, *req.Diagonal)
	assert.Equal(t, 40, req.MaxExpansions)

	query := renderQuery(req)
	assert.Equal(t, "1", query.Get("sx"))
	assert.Equal(t, "", query.Get("gx"))
	assert.Equal(t, "true", query.Get("diagonal"))
	assert.Equal(t, "40", query.Get("max_expansions"))

	_, _, err = pathRequestFromArgs(map[string]interface{}{})
	assert.Error(t, err)
}

func TestFormatPathResult(t *testing.T) {
	text := formatPathResult(&service.PathResult{
		Map:      "demo",
		Start:    engine.Coordinate{X: 0, Y: 0},
		Goal:     engine.Coordinate{X: 1, Y: 0},
		Outcome:  service.OutcomeFound,
		Path:     []engine.Coordinate{{X: 0, Y: 0}, {X: 1, Y: 0}},
		Cost:     1.5,
		Steps:    1,
		Expanded: 1,
	})

	assert.Contains(t, text, "Cost: 1.5, Steps: 1, Expanded: 1")
	assert.Contains(t, text, "Path: (0, 0) -> (1, 0)")
}
