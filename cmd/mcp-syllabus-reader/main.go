package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/a3tai/mcp-syllabus-reader/internal/config"
	"github.com/a3tai/mcp-syllabus-reader/internal/documents"
	"github.com/a3tai/mcp-syllabus-reader/internal/mcp"
)

var (
	version   = "dev"     // set by build flags
	buildTime = "unknown" // set by build flags
	gitCommit = "unknown" // set by build flags
)

// setupLogging configures logging based on the server mode
func setupLogging(cfg *config.Config) {
	if cfg.IsStdioMode() {
		// stdout carries the MCP protocol
		log.SetOutput(os.Stderr)
		if !cfg.IsDebug() {
			log.SetOutput(io.Discard)
		}
		return
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

// runServerMode runs the server until it fails or a termination signal arrives
func runServerMode(ctx context.Context, cancel context.CancelFunc, server *mcp.Server) int {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signalCh)

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.Run(ctx)
	}()

	select {
	case sig := <-signalCh:
		log.Printf("Received signal: %s", sig)
		log.Println("Initiating graceful shutdown...")
		cancel()

		if err := <-serverErrCh; err != nil {
			log.Printf("Server shutdown with error: %v", err)
			return 1
		}

	case err := <-serverErrCh:
		if err != nil {
			log.Printf("Server error: %v", err)
			return 1
		}
	}

	log.Println("Server stopped successfully")
	return 0
}

// runStdioMode serves until the client closes stdin
func runStdioMode(ctx context.Context, server *mcp.Server) int {
	if err := server.Run(ctx); err != nil {
		log.Printf("Server error: %v", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadFromFlags()
	if errors.Is(err, config.ErrVersionRequested) {
		printVersion(os.Stdout)
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	setupLogging(cfg)

	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	service, err := documents.NewService(cfg.MaxFileSize, cfg.SyllabusDirectory, cfg.Timezone, cfg.TermStart)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create document service: %v\n", err)
		return 1
	}

	server, err := mcp.NewServer(cfg, service)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create MCP server: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.IsServerMode() {
		return runServerMode(ctx, cancel, server)
	}
	return runStdioMode(ctx, server)
}

// printVersion prints version information
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "MCP Syllabus Reader\n")
	fmt.Fprintf(w, "Version: %s\n", version)
	fmt.Fprintf(w, "Build Time: %s\n", buildTime)
	fmt.Fprintf(w, "Git Commit: %s\n", gitCommit)
	fmt.Fprintf(w, "Built with: %s\n", runtime.Version())
}
