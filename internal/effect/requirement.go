package effect

import (
	"fmt"
	"strconv"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
)

// PresenceMode says whether a requirement demands the player has or lacks
// something.
type PresenceMode string

const (
	Have    PresenceMode = "have"
	NotHave PresenceMode = "not_have"
)

// Requirement is a closed set of gating predicates checked, in declared
// order, before an item's actions may run.
type Requirement interface {
	Encode() string
	Kind() domain.RequirementKind
	isRequirement()
}

// MoneyRequirement demands a minimum wallet or bank balance. The balance is
// debited by Value when the requirement list is consumed.
type MoneyRequirement struct {
	Target Target
	Value  int
}

func (r MoneyRequirement) isRequirement() {}

func (r MoneyRequirement) Kind() domain.RequirementKind { return domain.RequirementMoney }

func (r MoneyRequirement) Encode() string {
	return string(r.Target) + ":" + strconv.Itoa(r.Value)
}

// ItemRequirement demands the player holds (or, with NotHave, holds strictly
// less than) Amount units of an item. Have-mode requirements consume the
// units on success.
type ItemRequirement struct {
	ItemName string
	Amount   int
	Mode     PresenceMode
}

func (r ItemRequirement) isRequirement() {}

func (r ItemRequirement) Kind() domain.RequirementKind { return domain.RequirementItem }

func (r ItemRequirement) Encode() string {
	return fmt.Sprintf("item:%s:%s:%d", r.Mode, r.ItemName, r.Amount)
}

// RoleRequirement demands role membership (or its absence). Roles are never
// consumed; membership is not a spendable resource.
type RoleRequirement struct {
	RoleID string
	Mode   PresenceMode
}

func (r RoleRequirement) isRequirement() {}

func (r RoleRequirement) Kind() domain.RequirementKind { return domain.RequirementRole }

func (r RoleRequirement) Encode() string {
	return fmt.Sprintf("role:%s:%s", r.Mode, r.RoleID)
}
