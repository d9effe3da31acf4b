package cmd

import (
	"github.com/spf13/cobra"

	"github.com/leftmike/setsession/session"
)

var (
	replCmd = &cobra.Command{
		Use:   "repl [file ...]",
		Short: "Run with an interactive console session",
		RunE:  replRun,
	}
)

func init() {
	initRunFlags(replCmd.Flags())

	setsessionCmd.AddCommand(replCmd)
}

func replRun(cmd *cobra.Command, args []string) error {
	r, err := newRunner()
	if err != nil {
		return err
	}

	ctx, cancel := interruptContext()
	defer cancel()

	ses := session.NewSession(user, "console", "")
	err = runStatements(ctx, r, ses, args)
	if err != nil {
		return err
	}

	if len(args) == 0 && len(sqlArgs) == 0 {
		r.Interact(ctx, ses)
	}
	return nil
}
