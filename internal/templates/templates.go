// Package templates holds the character sheet template bundled into the binary
package templates

import (
	_ "embed"
)

// DefaultName is the name the bundled template is reported under
const DefaultName = "charactersheet_pc.html.j2"

//go:embed charactersheet_pc.html.j2
var characterSheet string

// Default returns the bundled character sheet template source
func Default() string {
	return characterSheet
}
