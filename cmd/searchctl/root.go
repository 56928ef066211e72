package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/searchview/internal/usecase/normalize"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "searchctl",
		Short: "Normalize and render search responses",
		Long: `searchctl turns raw search responses into flat document views.

A response can come from a file, from stdin ("-"), or from a live search
against the backend configured in config/<ENV>.yaml.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("policy", normalize.PolicyFirstGroup,
		"reference policy: first_group or per_document")
	root.PersistentFlags().String("placeholder", normalize.DefaultSummaryPlaceholder,
		"summary text shown when the response has none")

	root.AddCommand(
		newNormalizeCmd(),
		newRenderCmd(),
		newQueryCmd(),
		newVersionCmd(),
	)
	return root
}

// normalizerFromFlags builds a Normalizer from the persistent flags.
func normalizerFromFlags(cmd *cobra.Command) (*normalize.Normalizer, error) {
	name, _ := cmd.Flags().GetString("policy")
	policy, err := normalize.PolicyByName(name)
	if err != nil {
		return nil, err
	}
	placeholder, _ := cmd.Flags().GetString("placeholder")
	return normalize.New(policy).WithSummaryPlaceholder(placeholder), nil
}

// readInput reads a file, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
