package root

import (
	"github.com/flarebyte/ptah-forge/cmd/ptah/doctor"
	"github.com/flarebyte/ptah-forge/cmd/ptah/task"
	"github.com/flarebyte/ptah-forge/cmd/ptah/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for ptah.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ptah",
		Short: "Forge master for project rituals: routes one subcommand to its helper script in the tools directory",
		// An unrecognized subcommand is not an error: show usage and exit 0,
		// same as running with no arguments. Flag parsing stays off so
		// flag-looking tokens after an unknown name land here too.
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Task subcommands come straight from the command table.
	for _, c := range task.Commands() {
		cmd.AddCommand(c)
	}
	cmd.AddCommand(version.VersionCmd)
	cmd.AddCommand(doctor.Cmd)

	return cmd
}

// Execute runs the root command with provided args.
func Execute(args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}
