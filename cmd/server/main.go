// mazecrawl-server hosts the simulation for a browser renderer. Build:
//
//	go build -o mazecrawl-server ./cmd/server
//
// Usage:
//
//	./mazecrawl-server [--addr :8080] [--width 31] [--height 31]
//
// The browser connects to ws://<host>/ws and receives per-tick JSON state
// frames; it sends input, bonus-choice, restart, and demo-spawn messages
// back. One independent single-player session runs per connection.
package main

import (
	"encoding/json"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"mazecrawl/internal/web"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	width := flag.Int("width", 31, "maze width in tiles")
	height := flag.Int("height", 31, "maze height in tiles")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	mux := http.NewServeMux()
	mux.Handle("/ws", web.NewHandler(logger, *width, *height))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(struct {
			Status     string `json:"status"`
			ServerTime int64  `json:"serverTime"`
		}{Status: "ok", ServerTime: time.Now().UnixMilli()})
	})

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("mazecrawl server listening", "addr", *addr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
