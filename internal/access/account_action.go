package access

import "fmt"

type AccountAction int

const (
	Promote AccountAction = iota + 1
	Demote
	Ban
	Unban
)

func (a AccountAction) String() string {
	switch a {
	case Promote:
		return "promote"
	case Demote:
		return "demote"
	case Ban:
		return "ban"
	case Unban:
		return "unban"
	}
	return fmt.Sprintf("account_action(%d)", int(a))
}

func (a AccountAction) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *AccountAction) UnmarshalText(text []byte) error {
	action, err := ParseAccountAction(string(text))
	if err != nil {
		return err
	}
	*a = action
	return nil
}

func ParseAccountAction(s string) (AccountAction, error) {
	for action := range effects {
		if action.String() == s {
			return action, nil
		}
	}
	return 0, fmt.Errorf("unknown account action %q", s)
}

// Target is the moderated account's role and ban flag.
type Target struct {
	Role   Role
	Banned bool
}

// Effect is the result of applying an account action. SignOut is set when
// the target's persisted sessions must be destroyed.
type Effect struct {
	Role    Role
	Banned  bool
	SignOut bool
}

var effects = map[AccountAction]func(Target) Effect{
	Promote: func(t Target) Effect { return Effect{Role: JuniorAdmin, Banned: t.Banned} },
	Demote:  func(t Target) Effect { return Effect{Role: RegularUser, Banned: t.Banned} },
	Ban:     func(t Target) Effect { return Effect{Role: t.Role, Banned: true, SignOut: true} },
	Unban:   func(t Target) Effect { return Effect{Role: t.Role, Banned: false} },
}

// ApplyAccountAction authorizes actor against ManageAccounts and computes the
// new state of target. A SuperAdmin target is never modified.
func ApplyAccountAction(actor Subject, target Target, action AccountAction) (Effect, error) {
	if err := Authorize(actor, ManageAccounts); err != nil {
		return Effect{}, err
	}
	apply, ok := effects[action]
	if !ok {
		return Effect{}, fmt.Errorf("unknown account action %d", int(action))
	}
	if target.Role == SuperAdmin {
		return Effect{}, &AuthorizationError{
			Action: ManageAccounts,
			Role:   actor.Role,
			Reason: "the super admin cannot be promoted, demoted or banned",
		}
	}
	return apply(target), nil
}
