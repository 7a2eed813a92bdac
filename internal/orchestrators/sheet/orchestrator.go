// Package sheet renders the throw catalog through a template into a character sheet
package sheet

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/KirkDiggler/sheetgen/internal/entities"
	"github.com/KirkDiggler/sheetgen/internal/errors"
	"github.com/KirkDiggler/sheetgen/internal/services/throws"
	"github.com/KirkDiggler/sheetgen/internal/templates"
	"github.com/KirkDiggler/sheetgen/internal/templating"
)

const (
	stdoutName = "<stdout>"

	outputFileMode = 0o644
)

// Service defines the interface for sheet generation
type Service interface {
	Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error)
}

// Config holds the dependencies for the sheet orchestrator
type Config struct {
	Renderer templating.Renderer

	// Stdout receives the sheet when no output path is given
	Stdout io.Writer
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Renderer == nil {
		vb.RequiredField("Renderer")
	}
	if c.Stdout == nil {
		vb.RequiredField("Stdout")
	}

	return vb.Build()
}

type orchestrator struct {
	renderer templating.Renderer
	stdout   io.Writer
}

// NewOrchestrator creates a new sheet orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		renderer: cfg.Renderer,
		stdout:   cfg.Stdout,
	}, nil
}

type templateSource struct {
	name    string
	source  string
	baseDir string
}

// Generate reads the template, renders the throw catalog through it and
// writes the result. Nothing is written unless rendering succeeds.
func (o *orchestrator) Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	tpl, err := o.loadTemplate(input.TemplatePath)
	if err != nil {
		return nil, err
	}

	list, err := o.buildThrows(input.SortByName)
	if err != nil {
		return nil, err
	}

	autoescape := templating.AutoescapeFor(tpl.name)
	slog.DebugContext(ctx, "rendering sheet",
		"template", tpl.name,
		"throws", len(list),
		"sorted", input.SortByName,
		"autoescape", autoescape,
	)

	rendered, err := o.renderer.Render(ctx, &templating.RenderInput{
		Name:       tpl.name,
		Source:     tpl.source,
		Variables:  BuildVariables(list),
		BaseDir:    tpl.baseDir,
		Autoescape: autoescape,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to render template %s", tpl.name)
	}

	destination, err := o.write(input.OutputPath, rendered.Text)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Sheet generated",
		"template", tpl.name,
		"destination", destination,
		"throws", len(list),
		"bytes", len(rendered.Text),
	)

	return &GenerateOutput{
		Template:    tpl.name,
		Destination: destination,
		ThrowCount:  len(list),
		Bytes:       len(rendered.Text),
	}, nil
}

func (o *orchestrator) loadTemplate(path string) (*templateSource, error) {
	if path == "" {
		return &templateSource{
			name:   templates.DefaultName,
			source: templates.Default(),
		}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeInput, "failed to read template %s", path).
			WithMeta("path", path)
	}

	return &templateSource{
		name:    path,
		source:  string(data),
		baseDir: filepath.Dir(path),
	}, nil
}

func (o *orchestrator) buildThrows(sortByName bool) ([]*entities.Throw, error) {
	list := throws.Catalog()
	if err := throws.Validate(list); err != nil {
		return nil, errors.Wrap(err, "invalid throw catalog")
	}

	if sortByName {
		list = throws.Sorted(list)
	}

	return list, nil
}

func (o *orchestrator) write(path, text string) (string, error) {
	if path == "" {
		if _, err := io.WriteString(o.stdout, text); err != nil {
			return "", errors.WrapWithCode(err, errors.CodeOutput, "failed to write to stdout")
		}
		return stdoutName, nil
	}

	if err := os.WriteFile(path, []byte(text), outputFileMode); err != nil {
		return "", errors.WrapWithCodef(err, errors.CodeOutput, "failed to write output %s", path).
			WithMeta("path", path)
	}

	return path, nil
}
