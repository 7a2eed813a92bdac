package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=dicemock github.com/KirkDiggler/sheetgen/internal/orchestrators/dice Roller

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/sheetgen/internal/errors"
)

// Roller rolls count dice of the given size
type Roller interface {
	Roll(count, size int) (total int, description string, err error)
}

type toolkitRoller struct{}

// NewToolkitRoller returns a Roller backed by rpg-toolkit
func NewToolkitRoller() Roller {
	return &toolkitRoller{}
}

func (r *toolkitRoller) Roll(count, size int) (int, string, error) {
	roll, err := dice.NewRoll(count, size)
	if err != nil {
		return 0, "", errors.Wrapf(err, "failed to create dice roll")
	}

	return roll.GetValue(), roll.GetDescription(), nil
}
