package main

import (
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/sheetgen/internal/config"
	"github.com/KirkDiggler/sheetgen/internal/errors"
)

// rootOptions holds flag values shared by the command tree
type rootOptions struct {
	templatePath string
	outputPath   string
	sortByName   bool
	logLevel     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "sheetgen",
		Short: "Render a character sheet from the throw catalog",
		Long: `sheetgen fills a Jinja-style template with the saving throws, skills and
perception check of the character sheet and writes the result.

Settings fall back to SHEETGEN_TEMPLATE, SHEETGEN_OUTPUT, SHEETGEN_SORT and
SHEETGEN_LOG_LEVEL, read from the environment or a .env file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.templatePath, "template", "t", "", "Template file to use as input (default: bundled character sheet)")
	flags.StringVarP(&opts.outputPath, "output", "o", "", "File to use as output (default: stdout)")
	flags.BoolVar(&opts.sortByName, "sort", false, "Sort throws by name instead of declaration order")

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error (default warn)")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid flags")
	})

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newRollCmd())

	return cmd
}

// setup passes explicitly set flags to config as overrides, so the
// environment only fills what the command line left out, then installs
// the logger
func (o *rootOptions) setup(cmd *cobra.Command) error {
	overrides := config.Overrides{}

	rootFlags := cmd.Root().Flags()
	if rootFlags.Changed("template") {
		overrides[config.EnvTemplate] = o.templatePath
	}
	if rootFlags.Changed("output") {
		overrides[config.EnvOutput] = o.outputPath
	}
	if rootFlags.Changed("sort") {
		overrides[config.EnvSort] = strconv.FormatBool(o.sortByName)
	}
	if cmd.Flags().Changed("log-level") {
		overrides[config.EnvLogLevel] = o.logLevel
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		return err
	}

	o.templatePath = cfg.TemplatePath
	o.outputPath = cfg.OutputPath
	o.sortByName = cfg.SortByName
	o.logLevel = cfg.LogLevel

	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	return nil
}
