package config

import (
	"fmt"
	"os"
)

// Exitf prints the message to stderr and terminates the process with a
// failing status. Commands call it for fatal startup errors; nothing else
// should, since deferred cleanup does not run.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
