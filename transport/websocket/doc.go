// Package websocket provides the WebSocket feed of computed paths.
//
// The websocket package implements:
//   - Map-scoped WebSocket connections
//   - Broadcasting of every successful path search to followers of its map
//   - Connection lifecycle management with ping/pong keepalive
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a reader and
// a writer goroutine; the hub drops clients whose send buffer fills up.
//
// Message Protocol:
//
// Outgoing frames are JSON, one message per frame:
//
//	{"map": "demo", "event": "path_computed", "result": {...}}
//
// Incoming frames are read and discarded.
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run(ctx)
//
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("map"))
//	})
//
//	hub.BroadcastPath(result)
package websocket
