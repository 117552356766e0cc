package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// EnableDebug can be overridden at build time:
// go build -ldflags "-X rbxnav/internal/debug.EnableDebug=true"
var EnableDebug = "false"

var (
	debugMutex  sync.Mutex
	debugOutput io.Writer
)

// SetOutput sets the writer for debug output. Pass nil to disable output.
func SetOutput(w io.Writer) {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	debugOutput = w
}

// Enabled reports whether debug logging is active.
func Enabled() bool {
	if EnableDebug == "true" {
		return true
	}
	return os.Getenv("DEBUG") == "1" || os.Getenv("DEBUG") == "true"
}

func writer() io.Writer {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	return debugOutput
}

// Logf provides structured debug logging with component names.
func Logf(component, format string, args ...interface{}) {
	if !Enabled() {
		return
	}
	w := writer()
	if w == nil {
		return
	}
	fmt.Fprintf(w, "[%s] "+format, append([]interface{}{component}, args...)...)
	if len(format) == 0 || format[len(format)-1] != '\n' {
		fmt.Fprintln(w)
	}
}

// LogResolve logs path-resolution activity.
func LogResolve(format string, args ...interface{}) {
	Logf("RESOLVE", format, args...)
}

// LogIndex logs scanner and watcher activity.
func LogIndex(format string, args ...interface{}) {
	Logf("INDEX", format, args...)
}

// LogQuery logs ranking activity.
func LogQuery(format string, args ...interface{}) {
	Logf("QUERY", format, args...)
}
