package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/searchview/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of searchctl",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "searchctl %s\n", version.String())
		},
	}
}
