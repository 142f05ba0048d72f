package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"mazecrawl/internal/term"
)

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "world seed")
	width := flag.Int("width", 31, "maze width in tiles")
	height := flag.Int("height", 31, "maze height in tiles")
	logFile := flag.String("log", "", "write logs to this file (default: discard)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, nil))
	}

	g, err := term.New(term.Config{
		Seed:   *seed,
		Width:  *width,
		Height: *height,
		Logger: logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	g.Run()
}
