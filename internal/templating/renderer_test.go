package templating_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/sheetgen/internal/errors"
	"github.com/KirkDiggler/sheetgen/internal/templating"
)

type RendererTestSuite struct {
	suite.Suite
	renderer templating.Renderer
	ctx      context.Context
	vars     map[string]any
}

func TestRendererSuite(t *testing.T) {
	suite.Run(t, new(RendererTestSuite))
}

func (s *RendererTestSuite) SetupTest() {
	s.renderer = templating.NewRenderer()
	s.ctx = context.Background()
	s.vars = map[string]any{
		"throws": []map[string]any{
			{"name": "reflex", "roll": "Reflex save: {1d20 + reflex}", "value": 0},
			{"name": "stealth", "roll": "Stealth roll: {1d20 + stealth}", "value": 0, "is_armor_dependant": true},
			{"name": "arcana", "roll": "Arcana roll: {1d20 + arcana}", "value": 0},
		},
		"blacklistedKeys": []string{"name", "is_armor_dependant"},
	}
}

func (s *RendererTestSuite) render(source string) (*templating.RenderOutput, error) {
	return s.renderer.Render(s.ctx, &templating.RenderInput{
		Name:      "test",
		Source:    source,
		Variables: s.vars,
	})
}

func (s *RendererTestSuite) TestLength() {
	out, err := s.render("{{ throws | length }}")
	s.Require().NoError(err)
	s.Equal("3", out.Text)
}

func (s *RendererTestSuite) TestLoop() {
	out, err := s.render("{% for t in throws %}{{ t.name }},{% endfor %}")
	s.Require().NoError(err)
	s.Equal("reflex,stealth,arcana,", out.Text)
}

func (s *RendererTestSuite) TestGuardedMissingKey() {
	out, err := s.render("{% for t in throws %}{% if t.is_armor_dependant|default:false %}A{% else %}-{% endif %}{% endfor %}")
	s.Require().NoError(err)
	s.Equal("-A-", out.Text)
}

func (s *RendererTestSuite) TestGuardedUndefinedVariable() {
	out, err := s.render(`[{{ nothing_here|default:"-" }}]`)
	s.Require().NoError(err)
	s.Equal("[-]", out.Text)
}

func (s *RendererTestSuite) TestUndefinedReferences() {
	testCases := []struct {
		name     string
		source   string
		variable string
	}{
		{"variable", "{{ nosuch }}", "nosuch"},
		{"field of undefined", "{{ nosuch.field }}", "nosuch"},
		{"nested missing field", "{% for t in throws %}{{ t.missing.deeper }}{% endfor %}", "t.missing"},
		{"field only some records have", "{% for t in throws %}{{ t.is_armor_dependant }}{% endfor %}", "t.is_armor_dependant"},
		{"condition", "{% if nosuch %}x{% endif %}", "nosuch"},
		{"loop collection", "{% for t in nosuch %}{% endfor %}", "nosuch"},
		{"filter input", "{{ nosuch|upper }}", "nosuch"},
		{"loop variable out of scope", "{% for t in throws %}{% endfor %}{{ t.name }}", "t"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.render(tc.source)
			s.Require().Error(err)
			s.Nil(out)
			s.True(errors.IsTemplate(err), "got %v", err)
			s.Equal(tc.variable, errors.GetMeta(err)["variable"])
			s.Equal("test", errors.GetMeta(err)["template"])
		})
	}
}

func (s *RendererTestSuite) TestUndefinedReferencePosition() {
	_, err := s.render("header\n\n  {{ throws|length }} {{ nosuch }}")
	s.Require().Error(err)
	s.Equal(3, errors.GetMeta(err)["line"])
	s.Equal(23, errors.GetMeta(err)["column"])
}

func (s *RendererTestSuite) TestDefinedReferences() {
	testCases := []struct {
		name     string
		source   string
		expected string
	}{
		{"index", "{{ throws.0.name }}", "reflex"},
		{"nested loop over record", `{% for t in throws %}{% if forloop.First %}{% for key, val in t sorted %}{{ key }}={{ val }};{% endfor %}{% endif %}{% endfor %}`, "name=reflex;roll=Reflex save: {1d20 + reflex};value=0;"},
		{"set", `{% set label = "Saves" %}{{ label }}`, "Saves"},
		{"comment", "{# {{ nosuch }} #}ok", "ok"},
		{"comment block", "{% comment %}{{ nosuch }}{% endcomment %}ok", "ok"},
		{"string literal", `{{ "nosuch" }}`, "nosuch"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.render(tc.source)
			s.Require().NoError(err)
			s.Equal(tc.expected, out.Text)
		})
	}
}

func (s *RendererTestSuite) TestAutoescape() {
	s.vars["label"] = `<b>"Reflex"</b>`

	out, err := s.render("{{ label }}")
	s.Require().NoError(err)
	s.Equal(`<b>"Reflex"</b>`, out.Text)

	out, err = s.renderer.Render(s.ctx, &templating.RenderInput{
		Name:       "test.html",
		Source:     "{{ label }}",
		Variables:  s.vars,
		Autoescape: true,
	})
	s.Require().NoError(err)
	s.Equal("&lt;b&gt;&quot;Reflex&quot;&lt;/b&gt;", out.Text)
}

func (s *RendererTestSuite) TestBlacklistMembership() {
	out, err := s.render(`{% if "name" in blacklistedKeys %}hidden{% endif %}`)
	s.Require().NoError(err)
	s.Equal("hidden", out.Text)
}

func (s *RendererTestSuite) TestStaticText() {
	out, err := s.render("plain text, no tags")
	s.Require().NoError(err)
	s.Equal("plain text, no tags", out.Text)
}

func (s *RendererTestSuite) TestParseErrors() {
	testCases := []struct {
		name   string
		source string
	}{
		{"unclosed block", "{% for t in throws %}{{ t.name }}"},
		{"unknown filter", "{{ throws|no_such_filter }}"},
		{"unknown tag", "{% frobnicate %}"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.render(tc.source)
			s.Require().Error(err)
			s.Nil(out)
			s.True(errors.IsTemplate(err), "got %v", err)
			s.Equal("test", errors.GetMeta(err)["template"])
		})
	}
}

func (s *RendererTestSuite) TestInvalidBaseDir() {
	_, err := s.renderer.Render(s.ctx, &templating.RenderInput{
		Source:  "{{ throws | length }}",
		BaseDir: filepath.Join(s.T().TempDir(), "missing"),
	})
	s.Require().Error(err)
	s.True(errors.IsInput(err))
}

func (s *RendererTestSuite) TestNilInput() {
	_, err := s.renderer.Render(s.ctx, nil)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func TestAutoescapeFor(t *testing.T) {
	testCases := []struct {
		name     string
		expected bool
	}{
		{"charactersheet_pc.html.j2", true},
		{"sheet.HTML", true},
		{"sheet.xml.jinja2", true},
		{"sheet.txt.j2", false},
		{"sheet.j2", false},
		{"sheet.md", false},
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, templating.AutoescapeFor(tc.name))
		})
	}
}
