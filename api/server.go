package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wricardo/pathfinder/pathfinding/config"
	"github.com/wricardo/pathfinder/pathfinding/engine"
	"github.com/wricardo/pathfinder/pathfinding/grid"
	"github.com/wricardo/pathfinder/pathfinding/service"
	"github.com/wricardo/pathfinder/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.PathService
	hub     *websocket.Hub
	router  *mux.Router
	logger  *slog.Logger
}

// NewServer creates a new API server. hub may be nil, which disables the
// websocket feed.
func NewServer(pathService service.PathService, hub *websocket.Hub, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		service: pathService,
		hub:     hub,
		router:  mux.NewRouter(),
		logger:  logger.With("component", "api"),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.Use(s.logRequests)

	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Maps
	api.HandleFunc("/maps", s.handleListMaps).Methods("GET")
	api.HandleFunc("/maps", s.handleCreateMap).Methods("POST")
	api.HandleFunc("/maps/{name}", s.handleGetMap).Methods("GET")

	// Search
	api.HandleFunc("/maps/{name}/path", s.handleFindPath).Methods("POST")
	api.HandleFunc("/maps/{name}/render", s.handleRenderPath).Methods("GET")

	s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return http.StatusNotFound
	case errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, service.ErrInvalidEndpoint),
		errors.Is(err, service.ErrUnknownHeuristic):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Map Handlers

func (s *Server) handleListMaps(w http.ResponseWriter, r *http.Request) {
	maps, err := s.service.ListMaps(r.Context())
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	if maps == nil {
		maps = []*service.MapInfo{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(maps),
		"maps":  maps,
	})
}

func (s *Server) handleGetMap(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	mapConfig, err := s.service.GetMap(r.Context(), name)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, mapConfig)
}

func (s *Server) handleCreateMap(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MapID string `json:"map_id,omitempty"`
		grid.MapConfig
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid map JSON: "+err.Error())
		return
	}

	mapID := req.MapID
	if mapID == "" {
		mapID = req.Name
	}
	if mapID == "" {
		respondError(w, http.StatusBadRequest, "Map name is required")
		return
	}

	if err := s.service.SaveMap(r.Context(), mapID, &req.MapConfig); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"message": "Map saved successfully",
		"map_id":  mapID,
	})
}

// Search Handlers

func (s *Server) handleFindPath(w http.ResponseWriter, r *http.Request) {
	var req service.PathRequest

	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			respondError(w, http.StatusBadRequest, "Invalid request JSON: "+err.Error())
			return
		}
	}
	req.Map = mux.Vars(r)["name"]

	result, err := s.service.FindPath(r.Context(), req)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastPath(result)
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleRenderPath(w http.ResponseWriter, r *http.Request) {
	req, err := pathRequestFromQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Map = mux.Vars(r)["name"]

	rendered, err := s.service.RenderPath(r.Context(), req)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, rendered)
}

// pathRequestFromQuery reads sx, sy, gx, gy, heuristic, diagonal and
// max_expansions. Endpoints are only set when both coordinates are given.
func pathRequestFromQuery(r *http.Request) (service.PathRequest, error) {
	query := r.URL.Query()
	req := service.PathRequest{Heuristic: query.Get("heuristic")}

	var err error
	if req.Start, err = coordinateFromQuery(query.Get("sx"), query.Get("sy")); err != nil {
		return req, fmt.Errorf("invalid start: %w", err)
	}
	if req.Goal, err = coordinateFromQuery(query.Get("gx"), query.Get("gy")); err != nil {
		return req, fmt.Errorf("invalid goal: %w", err)
	}

	if v := query.Get("diagonal"); v != "" {
		diagonal, err := strconv.ParseBool(v)
		if err != nil {
			return req, fmt.Errorf("invalid diagonal: %q", v)
		}
		req.Diagonal = &diagonal
	}

	if v := query.Get("max_expansions"); v != "" {
		if req.MaxExpansions, err = strconv.Atoi(v); err != nil {
			return req, fmt.Errorf("invalid max_expansions: %q", v)
		}
	}

	return req, nil
}

func coordinateFromQuery(xs, ys string) (*engine.Coordinate, error) {
	if xs == "" && ys == "" {
		return nil, nil
	}
	x, err := strconv.Atoi(xs)
	if err != nil {
		return nil, fmt.Errorf("x must be an integer, got %q", xs)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return nil, fmt.Errorf("y must be an integer, got %q", ys)
	}
	return &engine.Coordinate{X: x, Y: y}, nil
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "websocket feed disabled", http.StatusServiceUnavailable)
		return
	}

	mapName := r.URL.Query().Get("map")
	if mapName == "" {
		http.Error(w, "map parameter required", http.StatusBadRequest)
		return
	}

	// Verify map exists
	if _, err := s.service.GetMap(r.Context(), mapName); err != nil {
		http.Error(w, "Unknown map", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, mapName)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		began := time.Now()
		next.ServeHTTP(w, r)
		s.logger.DebugContext(r.Context(), "request served",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(began),
		)
	})
}
