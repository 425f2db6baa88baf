package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/infopirate/gibson/pkg/apps"
	"github.com/infopirate/gibson/pkg/config"
	"github.com/infopirate/gibson/pkg/control"
	"github.com/infopirate/gibson/pkg/torrent"
	"github.com/infopirate/gibson/pkg/wm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server driving a headless desktop",
	Long: `Start a Model Context Protocol (MCP) server around a desktop session with
no screen attached. Agents can open, move, stack and close windows and
manage simulated torrents through tools.

Supported transports:
  stdio             Standard I/O (default)
  streamable-http   Streamable HTTP transport

Examples:
  gibson serve
  gibson serve --transport streamable-http --port 8080
  gibson serve --width 1920 --height 1080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("width", 1280, "Desktop width in units")
	serveCmd.Flags().Int("height", 800, "Desktop height in units, dock included")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	debug, _ := cmd.Flags().GetBool("debug")

	cfg, err := config.LoadOrDefault(configPath(cmd))
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg, debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gibson: logging disabled: %v\n", err)
	}
	defer closeLog()
	initCrashLog()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	catalog := apps.DefaultCatalog()
	sim := torrent.NewSimulator()
	srv := control.New(control.Config{
		Manager: wm.NewManager(wm.Config{
			Registry: catalog,
			Bounds:   wm.FixedBounds{Width: width, Height: height, Chrome: cfg.Desktop.DockHeight},
			Rand:     rng,
		}),
		Catalog:  catalog,
		Torrents: sim,
		Log:      log,
		Version:  version,
	})

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()
	go runSwarm(ctx, sim, rand.New(rand.NewSource(rng.Int63())), log)

	log.WithFields(logrus.Fields{"transport": transport, "width": width, "height": height}).Info("mcp server starting")
	switch transport {
	case "stdio":
		return srv.ServeStdio()
	case "streamable-http":
		return mcpserver.NewStreamableHTTPServer(srv.MCP()).Start(fmt.Sprintf(":%d", port))
	default:
		return fmt.Errorf("unknown transport %q (use stdio or streamable-http)", transport)
	}
}

// runSwarm advances the simulated transfers once a second until ctx ends.
func runSwarm(ctx context.Context, sim *torrent.Simulator, rng *rand.Rand, log logrus.FieldLogger) {
	defer recoverAndLog("swarm")
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Debug("swarm stopped")
			return
		case <-t.C:
			sim.Tick(rng)
		}
	}
}
