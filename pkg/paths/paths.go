// Package paths resolves where gibson keeps its files.
//
//	Config: ~/.config/gibson/config.yaml  (override: GIBSON_CONFIG_DIR)
//	State:  ~/.local/state/gibson/        (override: GIBSON_STATE_DIR)
//
// The state directory holds gibson.log, crash.log and perf.log.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	ConfigDirEnv = "GIBSON_CONFIG_DIR"
	StateDirEnv  = "GIBSON_STATE_DIR"
)

type cachedDir struct {
	once sync.Once
	dir  string
}

func (c *cachedDir) get(env string, homeParts ...string) string {
	c.once.Do(func() {
		if v := os.Getenv(env); v != "" {
			c.dir = v
			return
		}
		home, err := os.UserHomeDir()
		if err != nil {
			c.dir = "."
			return
		}
		c.dir = filepath.Join(append([]string{home}, homeParts...)...)
	})
	return c.dir
}

var (
	configDir = &cachedDir{}
	stateDir  = &cachedDir{}
)

// ConfigDir returns $GIBSON_CONFIG_DIR or ~/.config/gibson.
func ConfigDir() string {
	return configDir.get(ConfigDirEnv, ".config", "gibson")
}

// StateDir returns $GIBSON_STATE_DIR or ~/.local/state/gibson.
func StateDir() string {
	return stateDir.get(StateDirEnv, ".local", "state", "gibson")
}

// ConfigPath returns the config file path.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// StatePath returns the path of a file in the state directory.
func StatePath(name string) string {
	return filepath.Join(StateDir(), name)
}

// LogPath is the application log.
func LogPath() string { return StatePath("gibson.log") }

// CrashLogPath collects recovered panics.
func CrashLogPath() string { return StatePath("crash.log") }

// EnsureConfigDir creates the config directory and returns it.
func EnsureConfigDir() (string, error) {
	return ensure(ConfigDir(), "config")
}

// EnsureStateDir creates the state directory and returns it.
func EnsureStateDir() (string, error) {
	return ensure(StateDir(), "state")
}

func ensure(dir, what string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s dir %s: %w", what, dir, err)
	}
	return dir, nil
}

// ResetForTest forgets resolved directories. Tests only.
func ResetForTest() {
	configDir = &cachedDir{}
	stateDir = &cachedDir{}
}
