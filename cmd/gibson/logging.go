package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/infopirate/gibson/pkg/config"
	"github.com/infopirate/gibson/pkg/paths"
)

// newLogger opens the application log. The terminal belongs to the UI (or
// to the MCP transport), so nothing is ever written to stdout.
func newLogger(cfg *config.Config, debug bool) (*logrus.Logger, func(), error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	if debug {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	if _, err := paths.EnsureStateDir(); err != nil {
		log.SetOutput(io.Discard)
		return log, func() {}, err
	}
	f, err := os.OpenFile(paths.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return log, func() {}, fmt.Errorf("open log: %w", err)
	}
	log.SetOutput(f)
	return log, func() { f.Close() }, nil
}
