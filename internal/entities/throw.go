package entities

import (
	"fmt"

	"github.com/KirkDiggler/sheetgen/internal/pkg/textcase"
)

// ThrowKind selects which defaults a throw was built with
type ThrowKind int

// Throw kinds
const (
	ThrowKindGeneric ThrowKind = iota
	ThrowKindSave
	ThrowKindSkill
)

// String returns a lowercase label for the kind
func (k ThrowKind) String() string {
	switch k {
	case ThrowKindSave:
		return "save"
	case ThrowKindSkill:
		return "skill"
	default:
		return "generic"
	}
}

// ThrowType is the category tag written to the "type" key
type ThrowType string

// Throw types
const (
	ThrowTypeSave   ThrowType = "save-throw"
	ThrowTypeSkill  ThrowType = "skill"
	ThrowTypeNumber ThrowType = "number"
)

// Section is the grouping label written to the "section" key
type Section string

// Sections
const (
	SectionSaveThrows Section = "save-throws"
	SectionSkills     Section = "skills"
	SectionPerception Section = "perception"
)

// Stat is an ability score abbreviation
type Stat string

// Ability stats
const (
	StatStr Stat = "str"
	StatDex Stat = "dex"
	StatCon Stat = "con"
	StatInt Stat = "int"
	StatWis Stat = "wis"
	StatCha Stat = "cha"
)

// Mapping keys handed to templates
const (
	KeyName           = "name"
	KeyStat           = "stat"
	KeySubtitle       = "subtitle"
	KeyType           = "type"
	KeySection        = "section"
	KeyValue          = "value"
	KeyRoll           = "roll"
	KeyArmorDependant = "is_armor_dependant"
)

// BlacklistedKeys returns the mapping keys templates should treat as
// internal. The list is advisory; nothing strips them from the mapping.
func BlacklistedKeys() []string {
	return []string{KeyName, KeyArmorDependant}
}

// Throw is one rollable statistic on the character sheet
type Throw struct {
	Kind     ThrowKind
	Name     string
	Stat     Stat
	Type     ThrowType
	Section  Section
	Value    int
	Roll     string
	Subtitle string

	// ArmorDependant is nil unless the throw was explicitly flagged.
	// A nil value leaves is_armor_dependant out of the mapping.
	ArmorDependant *bool
}

// IsArmorDependant reports whether armor penalties apply to the throw
func (t *Throw) IsArmorDependant() bool {
	return t.ArmorDependant != nil && *t.ArmorDependant
}

// ToMap flattens the throw into the key/value mapping templates consume.
// Every field is kept, including blacklisted ones.
func (t *Throw) ToMap() map[string]any {
	m := map[string]any{
		KeyName:     t.Name,
		KeyStat:     string(t.Stat),
		KeySubtitle: t.Subtitle,
		KeyType:     string(t.Type),
		KeySection:  string(t.Section),
		KeyValue:    t.Value,
		KeyRoll:     t.Roll,
	}
	if t.ArmorDependant != nil {
		m[KeyArmorDependant] = *t.ArmorDependant
	}

	return m
}

// String returns the sheet label, e.g. "Save reflex (Dex)" or "Talent stealth (Dex)"
func (t *Throw) String() string {
	prefix := "Save"
	if t.Kind == ThrowKindSkill {
		prefix = "Talent"
	}

	return fmt.Sprintf("%s %s (%s)", prefix, t.Name, textcase.Capitalize(string(t.Stat)))
}
