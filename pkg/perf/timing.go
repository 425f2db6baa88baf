// Package perf records render and update timings when GIBSON_PERF=1.
// Output goes to perf.log in the state directory.
package perf

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/infopirate/gibson/pkg/paths"
)

// EnvVar switches timing on.
const EnvVar = "GIBSON_PERF"

var (
	mu      sync.Mutex
	out     io.Writer
	enabled bool
	once    sync.Once
)

func setup() {
	once.Do(func() {
		if os.Getenv(EnvVar) != "1" {
			return
		}
		if _, err := paths.EnsureStateDir(); err != nil {
			return
		}
		f, err := os.OpenFile(paths.StatePath("perf.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return
		}
		out = f
		enabled = true
	})
}

// SetOutput redirects timings to w and enables them. A nil w disables.
func SetOutput(w io.Writer) {
	once.Do(func() {})
	mu.Lock()
	defer mu.Unlock()
	out = w
	enabled = w != nil
}

// Timer measures one named operation.
type Timer struct {
	name  string
	start time.Time
}

// Start begins timing name.
func Start(name string) *Timer {
	return &Timer{name: name, start: time.Now()}
}

// Stop logs and returns the elapsed time.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Log("%s: %v", t.name, elapsed)
	return elapsed
}

// Track times fn.
func Track(name string, fn func()) time.Duration {
	t := Start(name)
	fn()
	return t.Stop()
}

// Log writes a timestamped line.
func Log(format string, args ...any) {
	setup()
	mu.Lock()
	defer mu.Unlock()
	if !enabled || out == nil {
		return
	}
	fmt.Fprintf(out, "%s: %s\n", time.Now().Format("15:04:05.000"), fmt.Sprintf(format, args...))
}

// IsEnabled reports whether timings are recorded.
func IsEnabled() bool {
	setup()
	mu.Lock()
	defer mu.Unlock()
	return enabled
}
