package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/infopirate/gibson/pkg/paths"
)

var crashLog = log.New(os.Stderr, "[CRASH] ", log.LstdFlags)

func initCrashLog() {
	if _, err := paths.EnsureStateDir(); err != nil {
		return
	}
	f, err := os.OpenFile(paths.CrashLogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	crashLog = log.New(f, "", log.LstdFlags|log.Lmicroseconds)
}

func logCrash(context string, r any) {
	crashLog.Printf("=== CRASH in %s ===", context)
	crashLog.Printf("Panic: %v", r)
	crashLog.Printf("Stack trace:\n%s", debug.Stack())
	crashLog.Printf("=== END CRASH ===\n")
}

// recoverAndLog must be deferred directly.
func recoverAndLog(context string) {
	if r := recover(); r != nil {
		logCrash(context, r)
	}
}

// recoverToError is recoverAndLog for functions with a named error result:
// the panic is logged and turned into *err so the process exits non-zero.
// It must be deferred directly.
func recoverToError(context string, err *error) {
	if r := recover(); r != nil {
		logCrash(context, r)
		*err = fmt.Errorf("%s crashed: %v (see %s)", context, r, paths.CrashLogPath())
	}
}
