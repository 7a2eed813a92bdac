// Package dice resolves a throw's roll formula into a concrete result
package dice

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/KirkDiggler/sheetgen/internal/entities"
	"github.com/KirkDiggler/sheetgen/internal/errors"
	"github.com/KirkDiggler/sheetgen/internal/services/throws"
)

const (
	// Every throw is a single d20
	throwDiceCount = 1
	throwDieSize   = 20
)

// Service defines the interface for rolling throws
type Service interface {
	RollThrow(ctx context.Context, input *RollThrowInput) (*RollThrowOutput, error)
}

// Config holds the dependencies for the dice orchestrator
type Config struct {
	Roller Roller
	Throws []*entities.Throw
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if len(c.Throws) == 0 {
		vb.RequiredField("Throws")
	}

	return vb.Build()
}

type orchestrator struct {
	roller Roller
	throws map[string]*entities.Throw
}

// NewOrchestrator creates a new dice orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	index, err := throws.Index(cfg.Throws)
	if err != nil {
		return nil, errors.Wrap(err, "invalid throws")
	}

	return &orchestrator{
		roller: cfg.Roller,
		throws: index,
	}, nil
}

// RollThrow rolls a d20 for the named throw and adds the modifier
func (o *orchestrator) RollThrow(ctx context.Context, input *RollThrowInput) (*RollThrowOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("throw name is required")
	}

	throw, ok := o.throws[input.Name]
	if !ok {
		return nil, errors.NotFoundf("throw %s not found", input.Name).
			WithMeta("name", input.Name)
	}

	natural, description, err := o.roller.Roll(throwDiceCount, throwDieSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll dice")
	}

	modifier := input.Modifier + throw.Value
	total := natural + modifier

	slog.InfoContext(ctx, "Throw rolled",
		"name", throw.Name,
		"natural", natural,
		"modifier", modifier,
		"total", total,
	)

	return &RollThrowOutput{
		Throw:       throw,
		Natural:     natural,
		Modifier:    modifier,
		Total:       total,
		Description: description,
		Label:       resolveLabel(throw, total),
	}, nil
}

// resolveLabel swaps the "{1d20 + name}" placeholder for the total. Rolls
// overridden without a placeholder get the total appended.
func resolveLabel(throw *entities.Throw, total int) string {
	placeholder := fmt.Sprintf("{%dd%d + %s}", throwDiceCount, throwDieSize, throw.Name)
	if strings.Contains(throw.Roll, placeholder) {
		return strings.Replace(throw.Roll, placeholder, strconv.Itoa(total), 1)
	}

	return fmt.Sprintf("%s (%d)", throw.Roll, total)
}
