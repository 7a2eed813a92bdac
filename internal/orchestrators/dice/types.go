package dice

import (
	"github.com/KirkDiggler/sheetgen/internal/entities"
)

// RollThrowInput defines the request for rolling one throw
type RollThrowInput struct {
	Name     string
	Modifier int
}

// RollThrowOutput defines the result of rolling one throw
type RollThrowOutput struct {
	Throw *entities.Throw

	// Natural is the face rolled on the d20
	Natural int

	// Modifier is the caller modifier plus the throw's baseline value
	Modifier int

	Total int

	// Description is the toolkit's roll description, e.g. "+1d20[14]=14"
	Description string

	// Label is the throw's roll formula with the dice placeholder replaced
	// by the total, e.g. "Reflex save: 17"
	Label string
}
