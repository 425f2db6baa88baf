package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/infopirate/gibson/pkg/cerebro"
	"github.com/infopirate/gibson/pkg/colors"
	"github.com/infopirate/gibson/pkg/config"
	"github.com/infopirate/gibson/pkg/paths"
	"github.com/infopirate/gibson/pkg/ui"
)

var errNoTTY = errors.New("gibson needs an interactive terminal; use 'gibson serve' for headless control")

var rootCmd = &cobra.Command{
	Use:   "gibson",
	Short: "A retro hacker desktop in your terminal",
	Long: `GIBSON is a mouse-driven desktop that runs inside a terminal: draggable
windows, a dock with a clock, a fake shell, a torrent client and an AI
assistant called CEREBRO.

Configuration is read from ~/.config/gibson/config.yaml (override the
directory with GIBSON_CONFIG_DIR) and reloaded when the file changes.`,
	SilenceUsage: true,
	RunE:         runDesktop,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", version, commit)
	rootCmd.PersistentFlags().String("config", "", "Config file (default: "+paths.ConfigPath()+")")
	rootCmd.PersistentFlags().Bool("debug", false, "Log at debug level")
	rootCmd.Flags().String("theme", "", "Theme override, see 'gibson themes'")
}

func configPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p
	}
	return paths.ConfigPath()
}

func runDesktop(cmd *cobra.Command, args []string) (err error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTTY
	}

	path := configPath(cmd)
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return err
	}
	theme, _ := cmd.Flags().GetString("theme")
	if theme != "" {
		cfg.Theme = theme
	}

	debug, _ := cmd.Flags().GetBool("debug")
	log, closeLog, err := newLogger(cfg, debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gibson: logging disabled: %v\n", err)
	}
	defer closeLog()

	initCrashLog()
	defer recoverToError("desktop", &err)

	lipgloss.SetColorProfile(colors.Profile())

	brain, err := cerebro.New(cerebro.Options{
		Provider: cfg.AI.Provider,
		Model:    cfg.AI.Model,
		APIKey:   cfg.AI.APIKey,
		Timeout:  cfg.AI.Timeout(),
	}, log)
	if err != nil {
		log.WithError(err).Warn("cerebro offline")
	}

	model := ui.New(ui.Options{Config: cfg, Cerebro: brain, Log: log})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	stop, err := config.Watch(path, func(next *config.Config, err error) {
		if next != nil && theme != "" {
			next.Theme = theme
		}
		p.Send(ui.ConfigReloadedMsg{Config: next, Err: err})
	})
	if err != nil {
		log.WithError(err).WithField("path", path).Info("config watch disabled")
	} else {
		defer stop()
	}

	log.WithField("version", version).Info("desktop starting")
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("desktop: %w", err)
	}
	return nil
}
