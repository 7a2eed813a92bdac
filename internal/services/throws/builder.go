// Package throws builds the throw records that make up a character sheet
package throws

import (
	"fmt"

	"github.com/KirkDiggler/sheetgen/internal/entities"
	"github.com/KirkDiggler/sheetgen/internal/pkg/textcase"
)

// Option overrides a field on a freshly built throw. Options run after the
// kind defaults, so an override always wins.
type Option func(*entities.Throw)

// WithType overrides the type tag
func WithType(t entities.ThrowType) Option {
	return func(throw *entities.Throw) {
		throw.Type = t
	}
}

// WithSection overrides the grouping section
func WithSection(s entities.Section) Option {
	return func(throw *entities.Throw) {
		throw.Section = s
	}
}

// WithValue overrides the baseline value
func WithValue(v int) Option {
	return func(throw *entities.Throw) {
		throw.Value = v
	}
}

// WithRoll overrides the roll formula
func WithRoll(roll string) Option {
	return func(throw *entities.Throw) {
		throw.Roll = roll
	}
}

// WithSubtitle overrides the display subtitle
func WithSubtitle(subtitle string) Option {
	return func(throw *entities.Throw) {
		throw.Subtitle = subtitle
	}
}

// WithArmorDependant flags whether armor penalties apply
func WithArmorDependant(dependant bool) Option {
	return func(throw *entities.Throw) {
		throw.ArmorDependant = &dependant
	}
}

// SaveRoll formats the roll for save and generic throws
func SaveRoll(name string) string {
	return fmt.Sprintf("%s save: {1d20 + %s}", textcase.Capitalize(name), name)
}

// SkillRoll formats the roll for skill throws
func SkillRoll(name string) string {
	return fmt.Sprintf("%s roll: {1d20 + %s}", textcase.Capitalize(name), name)
}

// NewSaveThrow builds a saving throw
func NewSaveThrow(name string, stat entities.Stat, opts ...Option) *entities.Throw {
	return build(&entities.Throw{
		Kind:    entities.ThrowKindSave,
		Name:    name,
		Stat:    stat,
		Type:    entities.ThrowTypeSave,
		Section: entities.SectionSaveThrows,
		Roll:    SaveRoll(name),
	}, opts)
}

// NewSkillThrow builds a skill throw
func NewSkillThrow(name string, stat entities.Stat, opts ...Option) *entities.Throw {
	return build(&entities.Throw{
		Kind:    entities.ThrowKindSkill,
		Name:    name,
		Stat:    stat,
		Type:    entities.ThrowTypeSkill,
		Section: entities.SectionSkills,
		Roll:    SkillRoll(name),
	}, opts)
}

// NewGenericThrow builds a throw whose type and section are chosen by the
// caller. Only perception uses it today.
func NewGenericThrow(name string, stat entities.Stat, t entities.ThrowType, section entities.Section, opts ...Option) *entities.Throw {
	return build(&entities.Throw{
		Kind:    entities.ThrowKindGeneric,
		Name:    name,
		Stat:    stat,
		Type:    t,
		Section: section,
		Roll:    SaveRoll(name),
	}, opts)
}

func build(throw *entities.Throw, opts []Option) *entities.Throw {
	throw.Value = 0
	throw.Subtitle = textcase.Capitalize(string(throw.Stat))

	for _, opt := range opts {
		opt(throw)
	}

	return throw
}
