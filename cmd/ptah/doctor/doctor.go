// Package doctor implements `ptah doctor`, an environment check for the
// dispatcher: tools directory, helper scripts, config file and git context.
package doctor

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	flagTools  string
	flagPretty bool
	flagStrict bool
)

// Cmd implements `ptah doctor`.
var Cmd = &cobra.Command{
	Use:           "doctor",
	Short:         "Check the tools directory, helpers and configuration",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, err := inspect(flagTools)
		if err != nil {
			return err
		}
		if err := printChecks(os.Stdout, rep, flagPretty); err != nil {
			return err
		}
		if flagStrict && !rep.OK {
			return strictExitError{}
		}
		return nil
	},
}

type strictExitError struct{}

func (strictExitError) Error() string { return "doctor checks failed" }
func (strictExitError) ExitCode() int { return 1 }

func init() {
	Cmd.Flags().StringVar(&flagTools, "tools", "", "Tools directory to check (default: resolved next to the executable)")
	Cmd.Flags().BoolVar(&flagPretty, "pretty", false, "Pretty JSON")
	Cmd.Flags().BoolVar(&flagStrict, "strict", false, "Exit non-zero when any helper check fails")
}
