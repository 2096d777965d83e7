package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/ironsheep/region-overlay-mcp/internal/config"
	"github.com/ironsheep/region-overlay-mcp/internal/detect"
	"github.com/ironsheep/region-overlay-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func usage() {
	fmt.Println("region-overlay-mcp - MCP server that detects and composites image regions")
	fmt.Println()
	fmt.Println("Usage: region-overlay-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config PATH     Load settings from a YAML file")
	fmt.Println("  --version, -v     Print version information")
	fmt.Println("  --help, -h        Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Printf("  %s=PATH          Classifier cascade file\n", config.EnvCascade)
	fmt.Printf("  %s=attenuate|edge|mask|circle\n", config.EnvPolicy)
	fmt.Printf("  %s=debug         Log level\n", config.EnvLogLevel)
	fmt.Println()
	fmt.Printf("Detectors compiled in: %s\n", strings.Join(detect.Names(), ", "))
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
}

func main() {
	var configPath string
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; {
		case arg == "--version" || arg == "-v" || arg == "version":
			fmt.Printf("region-overlay-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case arg == "--help" || arg == "-h" || arg == "help":
			usage()
			return
		case arg == "--config":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "--config requires a path")
				os.Exit(2)
			}
			i++
			configPath = args[i]
		case strings.HasPrefix(arg, "--config="):
			configPath = strings.TrimPrefix(arg, "--config=")
		default:
			fmt.Fprintf(os.Stderr, "unknown argument: %s\n", arg)
			os.Exit(2)
		}
	}

	// stdout is reserved for the MCP protocol
	log.SetOutput(os.Stderr)

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			log.Fatalf("Config error: %v", err)
		}
		cfg = loaded
	}
	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	logger.Debug("starting region overlay server",
		"version", Version,
		"built", BuildTime,
		"commit", GitCommit,
		"policy", cfg.Policy,
		"detector", cfg.Detector,
		"cascade", cfg.CascadeFile)

	srv := server.New(cfg, server.WithLogger(logger))
	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
