package effect

import (
	"fmt"
	"strconv"
)

// Target selects which balance a money action or requirement operates on.
type Target string

const (
	TargetMoney Target = "money"
	TargetBank  Target = "bank"
)

// Mode is the direction of a mutating action.
type Mode string

const (
	ModeAdd    Mode = "add"
	ModeRemove Mode = "remove"
)

// Action is a closed set of effects an item applies once its requirements
// are satisfied and consumed. The persisted form is the colon-delimited
// encoding returned by Encode; ParseAction is its inverse.
type Action interface {
	Encode() string
	isAction()
}

// MoneyAction credits or debits the wallet or bank.
// A bank removal is a withdrawal (bank to wallet), not a burn.
type MoneyAction struct {
	Target Target
	Mode   Mode
	Amount int
}

func (a MoneyAction) isAction() {}

func (a MoneyAction) Encode() string {
	return string(a.Target) + ":" + string(a.Mode) + ":" + strconv.Itoa(a.Amount)
}

// RoleAction grants or revokes a role. Failures are absorbed by the
// executor so one broken role never aborts the rest of the action list.
type RoleAction struct {
	Mode   Mode
	RoleID string
}

func (a RoleAction) isAction() {}

func (a RoleAction) Encode() string {
	return "role:" + string(a.Mode) + ":" + a.RoleID
}

// ItemAction adds or removes inventory quantity for one item key.
type ItemAction struct {
	Mode     Mode
	ItemName string
	Amount   int
}

func (a ItemAction) isAction() {}

func (a ItemAction) Encode() string {
	return fmt.Sprintf("item:%s:%s:%d", a.Mode, a.ItemName, a.Amount)
}

// MessageAction sets the custom message on the effect summary. The literal
// token {item} is substituted with the triggering item's display name at
// render time, not at decode time.
type MessageAction struct {
	Text string
}

func (a MessageAction) isAction() {}

func (a MessageAction) Encode() string {
	return "message:" + a.Text
}
