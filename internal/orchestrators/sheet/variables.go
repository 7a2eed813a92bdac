package sheet

import (
	"github.com/KirkDiggler/sheetgen/internal/entities"
)

// Template variable names
const (
	VarThrows          = "throws"
	VarBlacklistedKeys = "blacklistedKeys"

	// VarBlacklistedKeysAlias is the snake_case spelling older sheet
	// templates use
	VarBlacklistedKeysAlias = "blacklisted_keys"
)

// BuildVariables serializes throws into the variables handed to the template
func BuildVariables(throws []*entities.Throw) map[string]any {
	maps := make([]map[string]any, 0, len(throws))
	for _, t := range throws {
		maps = append(maps, t.ToMap())
	}

	blacklisted := entities.BlacklistedKeys()

	return map[string]any{
		VarThrows:               maps,
		VarBlacklistedKeys:      blacklisted,
		VarBlacklistedKeysAlias: blacklisted,
	}
}
