package main

import (
	"github.com/spf13/cobra"
)

func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <file|->",
		Short: "Print the normalized page of a raw response as JSON",
		Long: `Normalize reads one raw search response and prints the document views and
summary as JSON. Malformed input never fails: missing or mistyped fields
become empty strings, empty lists or "?".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := normalizerFromFlags(cmd)
			if err != nil {
				return err
			}
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			page := n.NormalizeBytes(data)
			return writePage(cmd.OutOrStdout(), &page, formatJSON, "", true)
		},
	}
}
