//go:build windows

package main

import "os"

// interruptSignals are the signals that cancel a run.
var interruptSignals = []os.Signal{os.Interrupt}
