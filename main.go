// main is the entry point for the cogload CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/huangsam/cogload/cmd"
	"github.com/huangsam/cogload/internal/contract"
)

func main() {
	err := cmd.Execute()
	if err != nil && !errors.Is(err, contract.ErrViolations) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cmd.ExitCode(err))
}
