package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/leftmike/setsession/execute"
	"github.com/leftmike/setsession/repl"
	"github.com/leftmike/setsession/session"
)

var (
	showCmd = &cobra.Command{
		Use:   "show",
		Short: "Show the session properties and their defaults",
		RunE:  showRun,
	}

	showAll = false
)

func init() {
	showCmd.Flags().BoolVar(&showAll, "all", showAll, "include hidden properties")

	setsessionCmd.AddCommand(showCmd)
}

func showRun(cmd *cobra.Command, args []string) error {
	r := repl.Runner{
		Registry: registry,
		Executor: execute.GoExecutor{},
	}
	return r.Run(context.Background(), session.NewSession(user, "show", ""),
		&execute.ShowSession{Hidden: showAll}, os.Stdout)
}
