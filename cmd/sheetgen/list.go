package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/sheetgen/internal/services/throws"
)

func newListCmd() *cobra.Command {
	var sorted bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the throws on the sheet",
		Long: `List every throw with its section and roll formula. Examples:

  list
  list --sort`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list := throws.Catalog()
			if sorted {
				list = throws.Sorted(list)
			}

			out := cmd.OutOrStdout()
			for _, t := range list {
				if _, err := fmt.Fprintf(out, "%-26s %-12s %s\n", t.String(), t.Section, t.Roll); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&sorted, "sort", false, "Sort throws by name")

	return cmd
}
