// Command pathfinder serves the grid pathfinder.
//
// It supports three modes:
//  1. "serve" (default) – runs the HTTP server exposing the REST API, the
//     WebSocket path feed, Prometheus metrics and an /mcp HTTP endpoint
//  2. "mcp" – runs an MCP stdio server and spins up an internal HTTP API if
//     none is available
//  3. "solve" – computes one path and prints the rendered grid
//
// Flags control host/port, config directory, debug logging and optional
// ngrok tunneling for easy external access during development.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
	"golang.org/x/sync/errgroup"

	"github.com/wricardo/pathfinder/api"
	"github.com/wricardo/pathfinder/pathfinding/config"
	"github.com/wricardo/pathfinder/pathfinding/engine"
	"github.com/wricardo/pathfinder/pathfinding/service"
	"github.com/wricardo/pathfinder/transport/mcp"
	"github.com/wricardo/pathfinder/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Grid Pathfinder"
)

// externalURL is probed by the mcp mode before starting an internal API
const externalURL = "http://localhost:8080"

// exitNoPath is the solve exit status when the goal cannot be reached
const exitNoPath = 2

// main loads .env, then runs the selected command.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("error loading .env file", "error", err)
	}

	app := newApp()
	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", app.Name, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "pathfinder",
		Usage:   "A* grid pathfinder server",
		Version: Version,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "host",
				Value:   "localhost",
				Usage:   "HTTP server host",
				Sources: cli.EnvVars("HOST"),
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing map configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "enable ngrok tunnel",
				Sources: cli.EnvVars("NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "ngrok-auth",
				Usage:   "ngrok auth token",
				Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "custom ngrok domain (optional)",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		},
		Action: runServe,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server with API, WebSocket, metrics and MCP endpoint",
				Action: runServe,
			},
			{
				Name:   "mcp",
				Usage:  "run an MCP stdio server, starting an internal HTTP API if needed",
				Action: runMCP,
			},
			{
				Name:  "solve",
				Usage: "compute one path and print the rendered grid",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "map", Value: config.DefaultMapName, Usage: "map ID"},
					&cli.IntFlag{Name: "sx", Usage: "start X (defaults to the map's S)"},
					&cli.IntFlag{Name: "sy", Usage: "start Y (defaults to the map's S)"},
					&cli.IntFlag{Name: "gx", Usage: "goal X (defaults to the map's G)"},
					&cli.IntFlag{Name: "gy", Usage: "goal Y (defaults to the map's G)"},
					&cli.StringFlag{Name: "heuristic", Usage: "manhattan, octile, euclidean or zero"},
					&cli.BoolFlag{Name: "diagonal", Usage: "allow diagonal moves"},
					&cli.IntFlag{Name: "max-expansions", Usage: "expansion budget (0 uses the map's)"},
				},
				Action: runSolve,
			},
		},
	}
}

// newLogger builds the process logger. Logs go to stderr so stdout stays
// free for the MCP stdio protocol and solve output.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// initializeServices wires the config manager and the path service.
func initializeServices(configDir string, logger *slog.Logger) (service.PathService, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}
	logger.Info("maps loaded", "dir", configDir, "count", configManager.Count())

	return service.NewPathService(configManager, logger), nil
}

// newRouter combines the API server with the /mcp endpoint
func newRouter(apiServer http.Handler, mcpClient *mcp.Client) *http.ServeMux {
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)

	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(responseData)
	})

	return mainRouter
}

// runServe starts the HTTP server with REST API, WebSocket hub, metrics and
// an /mcp endpoint. If ngrok is enabled it also provisions a public tunnel.
func runServe(ctx context.Context, cmd *cli.Command) error {
	logger := newLogger(os.Stderr, cmd.Bool("debug"))
	slog.SetDefault(logger)

	pathService, err := initializeServices(cmd.String("config-dir"), logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), int(cmd.Int("port")))
	hub := websocket.NewHub(logger)
	apiServer := api.NewServer(pathService, hub, logger)
	mainRouter := newRouter(apiServer, mcp.NewClient("http://"+addr, Version))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		logger.Info("HTTP server listening",
			"addr", addr,
			"api", "http://"+addr+"/api",
			"ws", "ws://"+addr+"/ws?map=<map_id>",
			"mcp", "http://"+addr+"/mcp",
			"metrics", "http://"+addr+"/metrics",
			"version", Version)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})

	if cmd.Bool("ngrok") {
		g.Go(func() error {
			serveNgrok(gctx, logger, cmd.String("ngrok-auth"), cmd.String("ngrok-domain"), mainRouter)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// serveNgrok exposes handler through an ngrok tunnel until ctx ends.
// Tunnel failures are logged; the local server keeps running.
func serveNgrok(ctx context.Context, logger *slog.Logger, authToken, domain string, handler http.Handler) {
	if authToken == "" {
		logger.Warn("ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN)")
		return
	}

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		logger.Info("using custom ngrok domain", "domain", domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		logger.Error("failed to start ngrok tunnel", "error", err)
		return
	}

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			logger.Error("failed to close ngrok tunnel", "error", err)
		}
	}()

	url := tun.URL()
	logger.Info("ngrok tunnel established",
		"url", url,
		"api", url+"/api",
		"ws", url+"/ws?map=<map_id>",
		"mcp", url+"/mcp")

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
		logger.Error("ngrok server error", "error", err)
	}
	logger.Info("ngrok tunnel closed")
}

// externalAPIAvailable reports whether an API answers at baseURL
func externalAPIAvailable(baseURL string) bool {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/api/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 500
}

// startInternalAPI serves the API on a random loopback port and returns its
// base URL. The server stops when ctx ends.
func startInternalAPI(ctx context.Context, pathService service.PathService, logger *slog.Logger) (string, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("failed to get available port: %w", err)
	}

	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	httpServer := &http.Server{Handler: api.NewServer(pathService, hub, logger)}
	go func() {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("internal HTTP server error", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		httpServer.Close()
	}()

	baseURL := "http://" + listener.Addr().String()
	logger.Info("internal HTTP server started", "url", baseURL)
	return baseURL, nil
}

// runMCP runs an MCP stdio server. It reuses an external API at
// localhost:8080 when one answers, otherwise it starts an internal one.
func runMCP(ctx context.Context, cmd *cli.Command) error {
	logger := newLogger(os.Stderr, cmd.Bool("debug"))
	slog.SetDefault(logger)

	baseURL := externalURL
	if externalAPIAvailable(externalURL) {
		logger.Info("external API server found, using it for MCP", "url", externalURL)
	} else {
		logger.Info("no external API server found, starting internal HTTP server")

		pathService, err := initializeServices(cmd.String("config-dir"), logger)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		baseURL, err = startInternalAPI(ctx, pathService, logger)
		if err != nil {
			return err
		}
	}

	mcpClient := mcp.NewClient(baseURL, Version)
	logger.Info("MCP stdio server ready", "api", baseURL)

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// runSolve computes a single path and prints it
func runSolve(ctx context.Context, cmd *cli.Command) error {
	logger := newLogger(os.Stderr, cmd.Bool("debug"))

	pathService, err := initializeServices(cmd.String("config-dir"), logger)
	if err != nil {
		return err
	}

	req := service.PathRequest{
		Map:           cmd.String("map"),
		Heuristic:     cmd.String("heuristic"),
		MaxExpansions: int(cmd.Int("max-expansions")),
	}
	if cmd.IsSet("sx") || cmd.IsSet("sy") {
		req.Start = &engine.Coordinate{X: int(cmd.Int("sx")), Y: int(cmd.Int("sy"))}
	}
	if cmd.IsSet("gx") || cmd.IsSet("gy") {
		req.Goal = &engine.Coordinate{X: int(cmd.Int("gx")), Y: int(cmd.Int("gy"))}
	}
	if cmd.IsSet("diagonal") {
		diagonal := cmd.Bool("diagonal")
		req.Diagonal = &diagonal
	}

	found, err := solve(ctx, os.Stdout, pathService, req)
	if err != nil {
		return err
	}
	if !found {
		return cli.Exit("", exitNoPath)
	}
	return nil
}

// solve prints the rendered grid, the path and its cost to w. It reports
// whether a path was found.
func solve(ctx context.Context, w io.Writer, pathService service.PathService, req service.PathRequest) (bool, error) {
	result, err := pathService.FindPath(ctx, req)
	if err != nil {
		return false, err
	}

	fmt.Fprintln(w, result.Rendered)

	if !result.Found {
		fmt.Fprintf(w, "No path from %s to %s (%s, expanded %d)\n",
			result.Start, result.Goal, result.Outcome, result.Expanded)
		return false, nil
	}

	steps := make([]string, len(result.Path))
	for i, c := range result.Path {
		steps[i] = c.String()
	}
	fmt.Fprintf(w, "Path: %s\n", strings.Join(steps, " -> "))
	fmt.Fprintf(w, "Cost: %g, Steps: %d, Expanded: %d, Heuristic: %s\n",
		result.Cost, result.Steps, result.Expanded, result.Heuristic)
	return true, nil
}
