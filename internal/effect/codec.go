package effect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Codec errors. Both indicate bad item configuration and are surfaced to
// admins at write time, never to players mid-use.
var (
	ErrUnknownEncoding   = errors.New("unknown encoding")
	ErrMalformedEncoding = errors.New("malformed encoding")
)

func unknownEncoding(raw string) error {
	return fmt.Errorf("%w: %q", ErrUnknownEncoding, raw)
}

func malformedEncoding(raw string) error {
	return fmt.Errorf("%w: %q", ErrMalformedEncoding, raw)
}

// parseAmount parses the non-negative integer fields of the wire format.
func parseAmount(raw, field string) (int, error) {
	n, err := strconv.Atoi(field)
	if err != nil || n < 0 {
		return 0, malformedEncoding(raw)
	}
	return n, nil
}

func parseMode(raw, field string) (Mode, error) {
	switch Mode(field) {
	case ModeAdd, ModeRemove:
		return Mode(field), nil
	default:
		return "", malformedEncoding(raw)
	}
}

func parsePresence(raw, field string) (PresenceMode, error) {
	switch PresenceMode(field) {
	case Have, NotHave:
		return PresenceMode(field), nil
	default:
		return "", malformedEncoding(raw)
	}
}

// ParseAction decodes one persisted action encoding into its typed form.
// The codec is pure: it never checks the referenced item or role against
// live state, that is the caller's responsibility.
func ParseAction(raw string) (Action, error) {
	// The type is everything before the first separator; a bare token with
	// no separator is an unknown type, not a malformed payload.
	typ, rest, found := strings.Cut(raw, ":")

	switch typ {
	case "money", "bank":
		parts := strings.Split(rest, ":")
		if len(parts) != 2 {
			return nil, malformedEncoding(raw)
		}
		mode, err := parseMode(raw, parts[0])
		if err != nil {
			return nil, err
		}
		amount, err := parseAmount(raw, parts[1])
		if err != nil {
			return nil, err
		}
		return MoneyAction{Target: Target(typ), Mode: mode, Amount: amount}, nil

	case "role":
		parts := strings.Split(rest, ":")
		if len(parts) != 2 || parts[1] == "" {
			return nil, malformedEncoding(raw)
		}
		mode, err := parseMode(raw, parts[0])
		if err != nil {
			return nil, err
		}
		return RoleAction{Mode: mode, RoleID: parts[1]}, nil

	case "item":
		parts := strings.Split(rest, ":")
		if len(parts) != 3 || parts[1] == "" {
			return nil, malformedEncoding(raw)
		}
		mode, err := parseMode(raw, parts[0])
		if err != nil {
			return nil, err
		}
		amount, err := parseAmount(raw, parts[2])
		if err != nil {
			return nil, err
		}
		return ItemAction{Mode: mode, ItemName: parts[1], Amount: amount}, nil

	case "message":
		// The text may itself contain colons; everything after the first
		// separator is the message.
		if !found {
			return nil, malformedEncoding(raw)
		}
		return MessageAction{Text: rest}, nil

	default:
		return nil, unknownEncoding(raw)
	}
}

// ParseRequirement decodes one persisted requirement encoding.
func ParseRequirement(raw string) (Requirement, error) {
	typ, rest, _ := strings.Cut(raw, ":")

	switch typ {
	case "money", "bank":
		value, err := parseAmount(raw, rest)
		if err != nil {
			return nil, err
		}
		return MoneyRequirement{Target: Target(typ), Value: value}, nil

	case "item":
		parts := strings.Split(rest, ":")
		if len(parts) != 3 || parts[1] == "" {
			return nil, malformedEncoding(raw)
		}
		mode, err := parsePresence(raw, parts[0])
		if err != nil {
			return nil, err
		}
		amount, err := parseAmount(raw, parts[2])
		if err != nil {
			return nil, err
		}
		return ItemRequirement{ItemName: parts[1], Amount: amount, Mode: mode}, nil

	case "role":
		parts := strings.Split(rest, ":")
		if len(parts) != 2 || parts[1] == "" {
			return nil, malformedEncoding(raw)
		}
		mode, err := parsePresence(raw, parts[0])
		if err != nil {
			return nil, err
		}
		return RoleRequirement{RoleID: parts[1], Mode: mode}, nil

	default:
		return nil, unknownEncoding(raw)
	}
}

// ParseActions decodes a full persisted action list, reporting the first
// bad encoding.
func ParseActions(raw []string) ([]Action, error) {
	actions := make([]Action, 0, len(raw))
	for _, encoded := range raw {
		action, err := ParseAction(encoded)
		if err != nil {
			return nil, err
		}
		actions = append(actions, action)
	}
	return actions, nil
}

// ParseRequirements decodes a full persisted requirement list.
func ParseRequirements(raw []string) ([]Requirement, error) {
	requirements := make([]Requirement, 0, len(raw))
	for _, encoded := range raw {
		requirement, err := ParseRequirement(encoded)
		if err != nil {
			return nil, err
		}
		requirements = append(requirements, requirement)
	}
	return requirements, nil
}
