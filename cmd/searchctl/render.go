package main

import (
	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <file|->",
		Short: "Render a raw response as terminal text or an HTML page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := normalizerFromFlags(cmd)
			if err != nil {
				return err
			}
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			title, _ := cmd.Flags().GetString("title")
			noColor, _ := cmd.Flags().GetBool("no-color")

			page := n.NormalizeBytes(data)
			return writePage(cmd.OutOrStdout(), &page, format, title, noColor)
		},
	}
	cmd.Flags().String("format", formatText, "output format: text or html")
	cmd.Flags().String("title", "Document Search", "HTML page title")
	cmd.Flags().Bool("no-color", false, "disable colored text output")
	return cmd
}
