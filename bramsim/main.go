// Command bramsim simulates a synchronous block RAM cycle by cycle.
package main

import (
	"github.com/tebeka/atexit"

	"github.com/sarchlab/bram/bramsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
