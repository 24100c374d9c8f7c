//go:build !windows

package main

import (
	"os"
	"syscall"
)

// stopSignals cancel a running conversion. SIGHUP covers a closed terminal.
var stopSignals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}
