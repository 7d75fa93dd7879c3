// Command regdbd authenticates the wireless regulatory database and sends
// the requested country's rules to the kernel.
package main

import (
	"fmt"
	"os"

	"github.com/nlreg/regdbd/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:], os.Getenv, cli.DialKernel); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
