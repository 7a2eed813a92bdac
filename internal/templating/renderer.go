// Package templating wraps the Jinja-style template engine used to render sheets
package templating

//go:generate mockgen -destination=mock/mock_renderer.go -package=templatingmock github.com/KirkDiggler/sheetgen/internal/templating Renderer

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/KirkDiggler/sheetgen/internal/errors"
)

// RenderInput carries a template source and the variables it is executed with
type RenderInput struct {
	// Name identifies the template in logs and error metadata
	Name string

	Source    string
	Variables map[string]any

	// BaseDir resolves {% include %} and {% extends %}; empty uses the
	// working directory
	BaseDir string

	// Autoescape HTML-escapes every printed string not marked safe
	Autoescape bool
}

// RenderOutput is the rendered text
type RenderOutput struct {
	Text string
}

// Renderer executes a template against a set of variables
type Renderer interface {
	Render(ctx context.Context, input *RenderInput) (*RenderOutput, error)
}

var (
	markupExtensions   = []string{".html", ".htm", ".xhtml", ".xml"}
	templateExtensions = []string{".j2", ".jinja", ".jinja2", ".tmpl"}
)

// AutoescapeFor reports whether a template name denotes markup. A trailing
// template extension is looked through, so sheet.html.j2 escapes and
// sheet.txt.j2 does not.
func AutoescapeFor(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if slices.Contains(templateExtensions, ext) {
		ext = strings.ToLower(filepath.Ext(name[:len(name)-len(ext)]))
	}
	return slices.Contains(markupExtensions, ext)
}

// pongo2 reads its autoescape switch from a package variable when
// execution starts
var autoescapeMu sync.Mutex

type pongoRenderer struct{}

// NewRenderer returns a Renderer backed by pongo2
func NewRenderer() Renderer {
	return &pongoRenderer{}
}

// Ensure pongoRenderer implements Renderer
var _ Renderer = (*pongoRenderer)(nil)

// Render parses and executes the template. Parse and execution failures,
// and references to variables or fields the input does not define, are
// TEMPLATE errors carrying line and column metadata when known.
func (r *pongoRenderer) Render(ctx context.Context, input *RenderInput) (*RenderOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	loader, err := pongo2.NewLocalFileSystemLoader(input.BaseDir)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeInput, "invalid template directory %q", input.BaseDir).
			WithMeta("base_dir", input.BaseDir)
	}
	set := pongo2.NewSet(setName(input.Name), loader)

	tpl, err := set.FromString(input.Source)
	if err != nil {
		return nil, templateError(err, input.Name, "failed to parse template")
	}

	if ref := findUndefined(input.Source, input.Variables); ref != nil {
		return nil, undefinedError(ref, input.Name)
	}

	text, err := execute(tpl, pongo2.Context(input.Variables), input.Autoescape)
	if err != nil {
		return nil, templateError(err, input.Name, "failed to execute template")
	}

	slog.DebugContext(ctx, "template rendered",
		"template", input.Name,
		"bytes", len(text),
	)

	return &RenderOutput{Text: text}, nil
}

func execute(tpl *pongo2.Template, ctx pongo2.Context, autoescape bool) (string, error) {
	autoescapeMu.Lock()
	defer autoescapeMu.Unlock()

	pongo2.SetAutoescape(autoescape)
	defer pongo2.SetAutoescape(true)

	return tpl.Execute(ctx)
}

func setName(name string) string {
	if name == "" {
		return "sheetgen"
	}
	return name
}

func templateError(err error, name, message string) error {
	wrapped := errors.WrapWithCode(err, errors.CodeTemplate, message)
	if name != "" {
		wrapped.WithMeta("template", name)
	}

	var perr *pongo2.Error
	if stderrors.As(err, &perr) {
		if perr.Line > 0 {
			wrapped.WithMeta("line", perr.Line)
		}
		if perr.Column > 0 {
			wrapped.WithMeta("column", perr.Column)
		}
	}

	return wrapped
}

func undefinedError(ref *undefinedRef, name string) error {
	err := errors.Template(fmt.Sprintf("undefined variable %q", ref.path)).
		WithMeta("variable", ref.path).
		WithMeta("line", ref.line).
		WithMeta("column", ref.column)
	if name != "" {
		err.WithMeta("template", name)
	}

	return err
}
