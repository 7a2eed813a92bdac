package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/sheetgen/internal/errors"
	"github.com/KirkDiggler/sheetgen/internal/orchestrators/sheet"
	"github.com/KirkDiggler/sheetgen/internal/templating"
)

func runRender(cmd *cobra.Command, opts *rootOptions) error {
	service, err := sheet.NewOrchestrator(&sheet.Config{
		Renderer: templating.NewRenderer(),
		Stdout:   cmd.OutOrStdout(),
	})
	if err != nil {
		return errors.Wrap(err, "failed to create sheet orchestrator")
	}

	_, err = service.Generate(cmd.Context(), &sheet.GenerateInput{
		TemplatePath: opts.templatePath,
		OutputPath:   opts.outputPath,
		SortByName:   opts.sortByName,
	})

	return err
}
