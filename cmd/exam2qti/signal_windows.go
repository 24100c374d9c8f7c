//go:build windows

package main

import "os"

// stopSignals cancel a running conversion.
var stopSignals = []os.Signal{os.Interrupt}
