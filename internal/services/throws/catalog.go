package throws

import (
	"sort"

	"github.com/KirkDiggler/sheetgen/internal/entities"
	"github.com/KirkDiggler/sheetgen/internal/errors"
)

// Catalog returns the fixed ruleset in declaration order: three saving
// throws, perception, then the eighteen skills.
func Catalog() []*entities.Throw {
	return []*entities.Throw{
		NewSaveThrow("fortitude", entities.StatCon),
		NewSaveThrow("reflex", entities.StatDex),
		NewSaveThrow("will", entities.StatWis),
		NewGenericThrow("perception", entities.StatWis, entities.ThrowTypeNumber, entities.SectionPerception),

		NewSkillThrow("acrobatics", entities.StatDex, WithArmorDependant(true)),
		NewSkillThrow("arcana", entities.StatInt),
		NewSkillThrow("athletics", entities.StatStr, WithArmorDependant(true)),
		NewSkillThrow("crafting", entities.StatInt),
		NewSkillThrow("deception", entities.StatCha),
		NewSkillThrow("diplomacy", entities.StatCha),
		NewSkillThrow("intimidation", entities.StatCha),
		NewSkillThrow("medicine", entities.StatWis),
		NewSkillThrow("nature", entities.StatWis),
		NewSkillThrow("occultism", entities.StatInt),
		NewSkillThrow("performance", entities.StatCha),
		NewSkillThrow("religion", entities.StatWis),
		NewSkillThrow("society", entities.StatInt),
		NewSkillThrow("stealth", entities.StatDex, WithArmorDependant(true)),
		NewSkillThrow("survival", entities.StatWis),
		NewSkillThrow("thievery", entities.StatDex, WithArmorDependant(true)),
		NewSkillThrow("lore-a", entities.StatInt),
		NewSkillThrow("lore-b", entities.StatInt),
	}
}

// Sorted returns a copy of throws ordered by name
func Sorted(throws []*entities.Throw) []*entities.Throw {
	sorted := make([]*entities.Throw, len(throws))
	copy(sorted, throws)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	return sorted
}

// Validate checks that every throw has a name and stat and that no two
// throws share a name.
func Validate(throws []*entities.Throw) error {
	vb := errors.NewValidationBuilder()
	for i, t := range throws {
		if t == nil {
			vb.Fieldf("throws", "entry %d is nil", i)
			continue
		}
		errors.ValidateRequired("name", t.Name, vb)
		errors.ValidateRequired("stat", string(t.Stat), vb)
	}
	if err := vb.Build(); err != nil {
		return err
	}

	_, err := Index(throws)
	return err
}

// Index maps throws by name
func Index(throws []*entities.Throw) (map[string]*entities.Throw, error) {
	index := make(map[string]*entities.Throw, len(throws))
	for i, t := range throws {
		if t == nil {
			return nil, errors.InvalidArgumentf("throw at position %d is nil", i)
		}
		if _, exists := index[t.Name]; exists {
			return nil, errors.AlreadyExistsf("duplicate throw name: %s", t.Name).
				WithMeta("name", t.Name)
		}
		index[t.Name] = t
	}

	return index, nil
}
