// Package core holds process-wide crash handling shared by every goroutine
package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

var (
	cleanupMu sync.Mutex
	cleanup   func()
)

// SetCrashCleanup registers the terminal restore run before a crash report
func SetCrashCleanup(fn func()) {
	cleanupMu.Lock()
	cleanup = fn
	cleanupMu.Unlock()
}

// runCleanup runs the registered cleanup at most once
func runCleanup() {
	cleanupMu.Lock()
	fn := cleanup
	cleanup = nil
	cleanupMu.Unlock()
	if fn != nil {
		fn()
	}
}

// report writes the panic value and stack; raw mode needs explicit carriage returns
func report(w io.Writer, r any, stack []byte) {
	fmt.Fprintf(w, "\r\n\x1b[31mluna crashed: %v\x1b[0m\r\n", r)
	fmt.Fprintf(w, "stack:\r\n%s\r\n", stack)
}

// HandleCrash restores the terminal, prints the panic and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}
	runCleanup()
	report(os.Stderr, r, debug.Stack())
	_ = os.Stderr.Sync()
	os.Exit(1)
}

// Go runs fn on a new goroutine whose panic goes through HandleCrash
// Use it instead of the go keyword so a crash never leaves the terminal in raw mode
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
