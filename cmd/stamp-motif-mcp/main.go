package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gg"

	"github.com/ironsheep/stamp-motif-mcp/internal/motif"
	"github.com/ironsheep/stamp-motif-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("stamp-motif-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		case "inspect":
			configureLogging()
			if err := runInspect(os.Args[2:], os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "inspect: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	configureLogging()
	if os.Getenv("STAMP_MOTIF_LOG_LEVEL") == "debug" {
		log.Printf("Stamp Motif MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	server.ServerVersion = Version
	srv := server.New()
	defer srv.Close()
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printHelp() {
	fmt.Println("stamp-motif-mcp - MCP server that turns images into stamp motif solids")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  stamp-motif-mcp [options]           Serve MCP over stdin/stdout")
	fmt.Println("  stamp-motif-mcp inspect [flags] IMG Print a motif report for an image")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  STAMP_MOTIF_LOG_LEVEL=debug    Enable debug logging")
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}

// configureLogging sends logs to stderr (stdout is for MCP protocol) and
// enables library debug output when requested.
func configureLogging() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if os.Getenv("STAMP_MOTIF_LOG_LEVEL") == "debug" {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		motif.SetLogger(logger)
		gg.SetLogger(logger)
	}
}
