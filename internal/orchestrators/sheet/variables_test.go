package sheet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/sheetgen/internal/orchestrators/sheet"
	"github.com/KirkDiggler/sheetgen/internal/services/throws"
)

func TestBuildVariables(t *testing.T) {
	vars := sheet.BuildVariables(throws.Catalog())

	list, ok := vars[sheet.VarThrows].([]map[string]any)
	require.True(t, ok)
	require.Len(t, list, 22)

	assert.Equal(t, "fortitude", list[0]["name"])
	assert.Equal(t, "save-throws", list[0]["section"])
	assert.NotContains(t, list[0], "is_armor_dependant")

	assert.Equal(t, "acrobatics", list[4]["name"])
	assert.Equal(t, true, list[4]["is_armor_dependant"])

	assert.Equal(t, []string{"name", "is_armor_dependant"}, vars[sheet.VarBlacklistedKeys])
	assert.Equal(t, vars[sheet.VarBlacklistedKeys], vars[sheet.VarBlacklistedKeysAlias])
}

func TestBuildVariables_Empty(t *testing.T) {
	vars := sheet.BuildVariables(nil)

	list, ok := vars[sheet.VarThrows].([]map[string]any)
	require.True(t, ok)
	assert.Empty(t, list)
}
