package item

import (
	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
	"github.com/hollis-dev/SatchelBot_Go/internal/effect"
)

// Definition is an item with its persisted encodings already decoded.
// The catalog decodes once per load so item use never pays parse cost
// and never trips over a bad encoding mid-use.
type Definition struct {
	domain.Item

	Actions      []effect.Action
	Requirements []effect.Requirement
}

// decode builds a Definition from a stored item. Fails when any persisted
// encoding no longer parses, which only happens if a row was edited outside
// the admin surface.
func decode(stored *domain.Item) (*Definition, error) {
	actions, err := effect.ParseActions(stored.Actions)
	if err != nil {
		return nil, err
	}
	requirements, err := effect.ParseRequirements(stored.Requirements)
	if err != nil {
		return nil, err
	}
	return &Definition{
		Item:         *stored,
		Actions:      actions,
		Requirements: requirements,
	}, nil
}
