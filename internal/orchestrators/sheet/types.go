package sheet

// GenerateInput defines the request for generating a character sheet
type GenerateInput struct {
	// TemplatePath is read from disk; empty selects the bundled template
	TemplatePath string

	// OutputPath receives the rendered text; empty writes to stdout
	OutputPath string

	// SortByName orders throws by name instead of declaration order
	SortByName bool
}

// GenerateOutput describes a completed render
type GenerateOutput struct {
	Template    string
	Destination string
	ThrowCount  int
	Bytes       int
}
