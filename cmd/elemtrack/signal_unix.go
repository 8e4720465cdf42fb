//go:build !windows

package main

import (
	"os"
	"syscall"
)

// interruptSignals are the signals that cancel a run.
var interruptSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
