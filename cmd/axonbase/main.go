// Command axonbase generates <Interface>Base types for route-annotated
// interfaces. Every annotated method without a default body, declared or
// inherited, gets a stub failing with 501 Not Implemented.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
