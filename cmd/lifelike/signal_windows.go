//go:build windows

package main

import "os"

// shutdownSignals lists the signals that cancel the command context.
func shutdownSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
