package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leftmike/setsession/sql"
)

func init() {
	setsessionCmd.AddCommand(
		&cobra.Command{
			Use:   "version",
			Short: "Print the version number of SetSession",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Println(sql.Version())
			},
		})
}
