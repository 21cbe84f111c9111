// Package task exposes one cobra command per entry in the command table.
package task

import (
	"github.com/flarebyte/ptah-forge/internal/tasktable"
	"github.com/spf13/cobra"
)

// Commands builds the task subcommands in usage order.
func Commands() []*cobra.Command {
	tasks := tasktable.Builtin()
	out := make([]*cobra.Command, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, newTaskCmd(t))
	}
	return out
}

func newTaskCmd(t tasktable.Task) *cobra.Command {
	return &cobra.Command{
		Use:   t.Name,
		Short: t.Description,
		// Only the subcommand itself is consulted; anything after it is
		// ignored and never forwarded to the helper.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(cmd.Context(), t.Name)
		},
	}
}
