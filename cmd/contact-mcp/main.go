package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/contact-extract-mcp/internal/config"
	"github.com/ironsheep/contact-extract-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := ""

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version", "-v", "version":
			fmt.Printf("contact-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		case "--config", "-c":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "--config requires a file path")
				os.Exit(2)
			}
			i++
			configPath = args[i]
		default:
			fmt.Fprintf(os.Stderr, "unknown argument: %s\n\n", args[i])
			printUsage()
			os.Exit(2)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	// Logs go to stderr; stdout is for the MCP protocol
	logger, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		logrus.Fatalf("Failed to create logger: %v", err)
	}

	logger.WithFields(logrus.Fields{
		"version":     Version,
		"build_time":  BuildTime,
		"git_commit":  GitCommit,
		"config":      configPath,
		"ocr_mode":    cfg.Recognizer.Mode,
		"max_workers": cfg.Server.MaxWorkers,
	}).Debug("Contact MCP server starting")

	srv := server.NewWithConfig(cfg, logger)
	if err := srv.Run(); err != nil {
		logger.Fatalf("Server error: %v", err)
	}
}

func printUsage() {
	fmt.Println("contact-mcp - MCP server that turns business card images into structured contacts")
	fmt.Println()
	fmt.Println("Usage: contact-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config, -c <file>   Load settings from a YAML file")
	fmt.Println("  --version, -v         Print version information")
	fmt.Println("  --help, -h            Print this help message")
	fmt.Println()
	fmt.Println("Environment variables (override the config file):")
	fmt.Println("  CONTACT_MCP_LOG_LEVEL=debug           Enable debug logging")
	fmt.Println("  CONTACT_MCP_LOG_FORMAT=json           Log as JSON")
	fmt.Println("  CONTACT_MCP_RECOGNIZER_LANGUAGE=eng   Tesseract language")
	fmt.Println("  CONTACT_MCP_RECOGNIZER_MODE=regions   OCR mode (words or regions)")
	fmt.Println("  CONTACT_MCP_PARSER_ROW_MARGIN=12      Row clustering margin in pixels")
	fmt.Println("  CONTACT_MCP_SERVER_MAX_WORKERS=4      Concurrent cards in a batch")
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}
