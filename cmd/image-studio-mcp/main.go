package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jamiealquiza/envy"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pixeldesk/image-studio/internal/logger"
	"github.com/pixeldesk/image-studio/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-studio-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	loglevel := zap.LevelFlag("log-level", zapcore.InfoLevel, "log level for the application")
	historyLimit := flag.Int("history-limit", 0, "undo snapshots kept per session, 0 uses the default")
	envy.Parse("STUDIO")
	flag.Parse()

	// stdout carries the MCP protocol; the logger writes to stderr only.
	log := logger.New(*loglevel)
	defer log.Sync()

	log.Infow("Starting image-studio-mcp",
		"version", Version,
		"commit", GitCommit,
	)

	srv := server.New(*historyLimit, log)
	if err := srv.Run(); err != nil {
		log.Fatalw("Server error",
			"error", err,
		)
	}
}
