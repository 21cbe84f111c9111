package main

import (
	"os"
	"strings"

	"github.com/flarebyte/ptah-forge/cmd/ptah/root"
)

type exitCoder interface {
	ExitCode() int
}

func main() {
	if err := root.Execute(os.Args[1:]); err != nil {
		// Print a short, single-line error to stderr on failures. Errors with
		// an empty message propagate a helper's exit code silently: the
		// helper already wrote its own output.
		msg := strings.Join(strings.Fields(err.Error()), " ")
		code := 1
		if ec, ok := err.(exitCoder); ok {
			if c := ec.ExitCode(); c != 0 {
				code = c
			}
		}
		if msg != "" {
			_, _ = os.Stderr.WriteString(msg + "\n")
		}
		os.Exit(code)
	}
}
