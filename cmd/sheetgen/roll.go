package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/sheetgen/internal/errors"
	"github.com/KirkDiggler/sheetgen/internal/orchestrators/dice"
	"github.com/KirkDiggler/sheetgen/internal/services/throws"
)

func newRollCmd() *cobra.Command {
	var modifier int

	cmd := &cobra.Command{
		Use:   "roll [throw]",
		Short: "Roll a d20 for one throw",
		Long: `Roll a throw's formula with a modifier. Examples:

  roll reflex --modifier 3
  roll stealth --modifier=-1
  roll lore-a`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := dice.NewOrchestrator(&dice.Config{
				Roller: dice.NewToolkitRoller(),
				Throws: throws.Catalog(),
			})
			if err != nil {
				return errors.Wrap(err, "failed to create dice orchestrator")
			}

			result, err := service.RollThrow(cmd.Context(), &dice.RollThrowInput{
				Name:     args[0],
				Modifier: modifier,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n  d20: %d  modifier: %+d  (%s)\n",
				result.Label, result.Natural, result.Modifier, result.Description)

			return err
		},
	}

	cmd.Flags().IntVarP(&modifier, "modifier", "m", 0, "Bonus added to the d20")

	return cmd
}
