// Command cardmail runs the send-card HTTP service and sends single cards
// from the command line.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
