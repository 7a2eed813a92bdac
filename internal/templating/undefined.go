package templating

import (
	"reflect"
	"strings"
	"text/scanner"
)

const (
	tagVariable byte = '{'
	tagBlock    byte = '%'
	tagComment  byte = '#'
)

// guardFilters accept an undefined input and substitute a fallback
var guardFilters = map[string]bool{
	"default":         true,
	"default_if_none": true,
}

// exprKeywords are identifiers that never name a variable
var exprKeywords = map[string]bool{
	"in": true, "and": true, "or": true, "not": true, "as": true, "export": true,
	"true": true, "false": true, "True": true, "False": true,
	"none": true, "None": true, "nil": true,
}

// undefinedRef is the first reference that resolves to nothing
type undefinedRef struct {
	path   string
	line   int
	column int
}

type tagRef struct {
	kind   byte
	body   string
	line   int
	column int
}

type exprToken struct {
	kind rune
	text string
}

// binding is what a name may hold while the template runs. A loop
// variable holds every element of its collection. Opaque bindings come
// from expressions whose value is only known at render time.
type binding struct {
	values []any
	opaque bool
}

type frame struct {
	closer string
	names  map[string]binding
}

type undefinedChecker struct {
	frames    []*frame
	skipUntil string
}

// findUndefined reports the first variable or field reference in source
// that cannot be resolved against variables. A reference piped straight
// into default or default_if_none is guarded and never reported. Loop
// variables are checked against every element, so a field only some
// elements carry has to be guarded. Included and extended templates are
// not followed.
func findUndefined(source string, variables map[string]any) *undefinedRef {
	root := &frame{names: map[string]binding{
		"pongo2": {opaque: true},
	}}
	for name, value := range variables {
		root.names[name] = binding{values: []any{value}}
	}

	c := &undefinedChecker{frames: []*frame{root}}
	for _, tag := range splitTags(source) {
		if path := c.visit(tag); path != "" {
			return &undefinedRef{path: path, line: tag.line, column: tag.column}
		}
	}

	return nil
}

func (c *undefinedChecker) visit(tag tagRef) string {
	tokens := lexExpr(tag.body)
	if tag.kind == tagVariable {
		if c.skipUntil != "" {
			return ""
		}
		return c.checkExpr(tokens)
	}
	if len(tokens) == 0 {
		return ""
	}

	name, args := tokens[0].text, tokens[1:]
	if c.skipUntil != "" {
		if name == c.skipUntil {
			c.skipUntil = ""
		}
		return ""
	}

	switch name {
	case "comment":
		c.skipUntil = "endcomment"
	case "if", "elif", "ifequal", "ifnotequal":
		return c.checkExpr(args)
	case "for":
		return c.visitFor(args)
	case "with":
		return c.visitWith(args)
	case "set":
		return c.visitSet(args)
	case "macro":
		c.visitMacro(args)
	case "import":
		for _, tok := range args {
			if isName(tok) {
				c.current().names[tok.text] = binding{opaque: true}
			}
		}
	case "cycle":
		if as := indexOf(args, "as"); as >= 0 && as+1 < len(args) {
			c.current().names[args[as+1].text] = binding{opaque: true}
		}
	case "endfor", "endwith", "endmacro":
		c.pop(name)
	}

	return ""
}

// visitFor handles "for x in expr" and "for k, v in expr", with optional
// trailing reversed and sorted
func (c *undefinedChecker) visitFor(args []exprToken) string {
	in := indexOf(args, "in")
	if in < 1 {
		return ""
	}

	var names []string
	for _, tok := range args[:in] {
		if tok.kind == scanner.Ident {
			names = append(names, tok.text)
		}
	}

	expr := args[in+1:]
	for len(expr) > 0 {
		last := expr[len(expr)-1].text
		if last != "reversed" && last != "sorted" {
			break
		}
		expr = expr[:len(expr)-1]
	}

	if path := c.checkExpr(expr); path != "" {
		return path
	}

	keys, values := c.iterate(expr)
	f := c.push("endfor")
	f.names["forloop"] = binding{opaque: true}
	if len(names) > 0 {
		f.names[names[0]] = keys
	}
	if len(names) > 1 {
		f.names[names[1]] = values
	}

	return ""
}

// iterate mirrors how the engine walks a collection: slices yield their
// elements as the first loop variable, maps yield keys and values
func (c *undefinedChecker) iterate(expr []exprToken) (binding, binding) {
	unknown := binding{opaque: true}
	if len(expr) == 0 || !isName(expr[0]) {
		return unknown, unknown
	}

	parts, next, partial := readPath(expr, 0)
	if next != len(expr) || partial {
		return unknown, unknown
	}

	candidates, opaque, _ := c.resolve(parts)
	if opaque {
		return unknown, unknown
	}

	var keys, values binding
	for _, candidate := range candidates {
		rv := indirect(reflect.ValueOf(candidate))
		switch rv.Kind() {
		case reflect.Invalid:
		case reflect.Slice, reflect.Array:
			for i := 0; i < rv.Len(); i++ {
				keys.values = append(keys.values, valueOf(rv.Index(i)))
			}
			values.opaque = true
		case reflect.Map:
			iter := rv.MapRange()
			for iter.Next() {
				keys.values = append(keys.values, valueOf(iter.Key()))
				values.values = append(values.values, valueOf(iter.Value()))
			}
		default:
			return unknown, unknown
		}
	}

	return keys, values
}

// visitWith handles "with a=x b=y" and "with x as a"
func (c *undefinedChecker) visitWith(args []exprToken) string {
	if as := indexOf(args, "as"); as >= 0 {
		if path := c.checkExpr(args[:as]); path != "" {
			return path
		}
		f := c.push("endwith")
		for _, tok := range args[as+1:] {
			if isName(tok) {
				f.names[tok.text] = binding{opaque: true}
			}
		}
		return ""
	}

	var names []string
	var expr []exprToken
	for i := 0; i < len(args); i++ {
		if args[i].kind == scanner.Ident && i+1 < len(args) && args[i+1].text == "=" {
			names = append(names, args[i].text)
			i++
			continue
		}
		expr = append(expr, args[i])
	}

	if path := c.checkExpr(expr); path != "" {
		return path
	}

	f := c.push("endwith")
	for _, name := range names {
		f.names[name] = binding{opaque: true}
	}

	return ""
}

// visitSet handles "set name = expr"
func (c *undefinedChecker) visitSet(args []exprToken) string {
	if len(args) < 2 || args[0].kind != scanner.Ident {
		return ""
	}
	if path := c.checkExpr(args[2:]); path != "" {
		return path
	}
	c.current().names[args[0].text] = binding{opaque: true}

	return ""
}

// visitMacro binds the macro name where it is declared and its
// parameters inside its body
func (c *undefinedChecker) visitMacro(args []exprToken) {
	if len(args) == 0 || args[0].kind != scanner.Ident {
		return
	}
	c.current().names[args[0].text] = binding{opaque: true}

	f := c.push("endmacro")
	for i := 1; i < len(args); i++ {
		prev := args[i-1].text
		if isName(args[i]) && (prev == "(" || prev == ",") {
			f.names[args[i].text] = binding{opaque: true}
		}
	}
}

// checkExpr returns the first unguarded path in tokens that resolves to
// nothing, or an empty string
func (c *undefinedChecker) checkExpr(tokens []exprToken) string {
	for i := 0; i < len(tokens); {
		tok := tokens[i]
		if tok.text == "|" {
			// the filter name is not a variable
			i += 2
			continue
		}
		if !isName(tok) || (i > 0 && tokens[i-1].text == ".") {
			i++
			continue
		}

		parts, next, _ := readPath(tokens, i)
		i = next
		if guarded(tokens, next) {
			continue
		}
		if _, _, missing := c.resolve(parts); missing != "" {
			return missing
		}
	}

	return ""
}

// resolve looks parts up through the open scopes. missing names the
// shortest unresolvable prefix.
func (c *undefinedChecker) resolve(parts []string) (values []any, opaque bool, missing string) {
	b, ok := c.lookup(parts[0])
	if !ok {
		return nil, false, parts[0]
	}
	if b.opaque {
		return nil, true, ""
	}

	for _, candidate := range b.values {
		value, settled, missingAt := walk(candidate, parts[1:])
		if missingAt >= 0 {
			return nil, false, strings.Join(parts[:missingAt+2], ".")
		}
		if !settled {
			opaque = true
			continue
		}
		values = append(values, value)
	}

	return values, opaque, ""
}

func (c *undefinedChecker) lookup(name string) (binding, bool) {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if b, ok := c.frames[i].names[name]; ok {
			return b, true
		}
	}
	return binding{}, false
}

func (c *undefinedChecker) current() *frame {
	return c.frames[len(c.frames)-1]
}

func (c *undefinedChecker) push(closer string) *frame {
	f := &frame{closer: closer, names: make(map[string]binding)}
	c.frames = append(c.frames, f)
	return f
}

func (c *undefinedChecker) pop(closer string) {
	if n := len(c.frames); n > 1 && c.frames[n-1].closer == closer {
		c.frames = c.frames[:n-1]
	}
}

// walk follows parts from value. missingAt is the index of the first absent
// part, or -1. settled is false once the chain reaches a value whose fields
// are only known at render time.
func walk(value any, parts []string) (result any, settled bool, missingAt int) {
	for i, part := range parts {
		next, found, known := field(value, part)
		if !known {
			return nil, false, -1
		}
		if !found {
			return nil, true, i
		}
		value = next
	}

	return value, true, -1
}

// field resolves one attribute the way the engine does: methods first,
// then map keys or struct fields
func field(value any, name string) (next any, found bool, known bool) {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return nil, false, false
	}
	if rv.MethodByName(name).IsValid() {
		return nil, true, false
	}

	rv = indirect(rv)
	switch rv.Kind() {
	case reflect.Map:
		keyType := rv.Type().Key()
		if keyType.Kind() != reflect.String {
			return nil, false, false
		}
		entry := rv.MapIndex(reflect.ValueOf(name).Convert(keyType))
		if !entry.IsValid() {
			return nil, false, true
		}
		return valueOf(entry), true, true
	case reflect.Struct:
		f := rv.FieldByName(name)
		if !f.IsValid() {
			return nil, false, true
		}
		return valueOf(f), true, true
	}

	return nil, false, false
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

func valueOf(rv reflect.Value) any {
	if !rv.IsValid() || !rv.CanInterface() {
		return nil
	}
	return rv.Interface()
}

// readPath reads name(.name)* from i. An index segment such as .0 marks the
// path partial; later segments are consumed but not recorded.
func readPath(tokens []exprToken, i int) (parts []string, next int, partial bool) {
	parts = []string{tokens[i].text}
	j := i + 1
	for j < len(tokens) {
		tok := tokens[j]
		switch {
		case tok.text == "." && j+1 < len(tokens) && tokens[j+1].kind == scanner.Ident:
			if !partial {
				parts = append(parts, tokens[j+1].text)
			}
			j += 2
		case tok.text == "." && j+1 < len(tokens) && tokens[j+1].kind == scanner.Int:
			partial = true
			j += 2
		case tok.kind == scanner.Float && strings.HasPrefix(tok.text, "."):
			partial = true
			j++
		default:
			return parts, j, partial
		}
	}

	return parts, j, partial
}

func guarded(tokens []exprToken, i int) bool {
	return i+1 < len(tokens) &&
		tokens[i].text == "|" &&
		tokens[i+1].kind == scanner.Ident &&
		guardFilters[tokens[i+1].text]
}

func isName(tok exprToken) bool {
	return tok.kind == scanner.Ident && !exprKeywords[tok.text]
}

func indexOf(tokens []exprToken, text string) int {
	for i, tok := range tokens {
		if tok.kind == scanner.Ident && tok.text == text {
			return i
		}
	}
	return -1
}

// lexExpr splits a tag body into identifiers, literals and symbols
func lexExpr(body string) []exprToken {
	var s scanner.Scanner
	s.Init(strings.NewReader(body))
	s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats |
		scanner.ScanChars | scanner.ScanStrings | scanner.ScanRawStrings
	// single-quoted strings scan as malformed chars; the token is still usable
	s.Error = func(*scanner.Scanner, string) {}

	var tokens []exprToken
	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		text := s.TokenText()
		if next := s.Peek(); isOperatorPair(tok, next) {
			s.Next()
			text += string(next)
		}
		tokens = append(tokens, exprToken{kind: tok, text: text})
	}

	return tokens
}

func isOperatorPair(first, second rune) bool {
	switch first {
	case '=', '!', '<', '>':
		return second == '='
	case '|':
		return second == '|'
	case '&':
		return second == '&'
	}
	return false
}

// splitTags returns the variable and block tags of source with the line
// and column each starts at. Comments and verbatim sections are skipped.
func splitTags(source string) []tagRef {
	var tags []tagRef
	line, column := 1, 1
	advance := func(text string) {
		for _, r := range text {
			if r == '\n' {
				line++
				column = 1
			} else {
				column++
			}
		}
	}

	verbatim := false
	rest := source
	for len(rest) > 1 {
		if verbatim {
			end := strings.Index(rest, "{% endverbatim")
			if end < 0 {
				break
			}
			advance(rest[:end])
			rest = rest[end:]
			verbatim = false
		}

		start := strings.IndexByte(rest, '{')
		if start < 0 || start+1 >= len(rest) {
			break
		}
		advance(rest[:start])
		rest = rest[start:]

		kind := rest[1]
		var end int
		switch kind {
		case tagVariable:
			end = closingIndex(rest[2:], "}}")
		case tagBlock:
			end = closingIndex(rest[2:], "%}")
		case tagComment:
			end = strings.Index(rest[2:], "#}")
		default:
			advance(rest[:1])
			rest = rest[1:]
			continue
		}
		if end < 0 {
			break
		}

		body := strings.TrimSuffix(strings.TrimPrefix(rest[2:end+2], "-"), "-")
		body = strings.TrimSpace(body)
		switch {
		case kind == tagBlock && body == "verbatim":
			verbatim = true
		case kind != tagComment:
			tags = append(tags, tagRef{kind: kind, body: body, line: line, column: column})
		}

		raw := rest[:end+4]
		advance(raw)
		rest = rest[len(raw):]
	}

	return tags
}

// closingIndex finds closer in s outside quoted strings
func closingIndex(s, closer string) int {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case strings.HasPrefix(s[i:], closer):
			return i
		}
	}
	return -1
}
