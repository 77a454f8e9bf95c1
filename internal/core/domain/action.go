package domain

import "go.trai.ch/zerr"

// Action is the sharing decision taken for one shared dependency of one remote.
type Action uint8

const (
	// ActionNone means no decision was taken.
	ActionNone Action = iota
	// ActionSkip omits the remote's copy in favour of a copy provided elsewhere.
	ActionSkip
	// ActionScope limits the remote's copy to the remote's own scope.
	ActionScope
	// ActionShare publishes the remote's copy in the global imports.
	ActionShare
)

// String returns the config spelling of the action.
func (a Action) String() string {
	switch a {
	case ActionSkip:
		return "skip"
	case ActionScope:
		return "scope"
	case ActionShare:
		return "share"
	default:
		return "none"
	}
}

// ParseAction parses the config spelling of an action.
func ParseAction(s string) (Action, error) {
	switch s {
	case "skip":
		return ActionSkip, nil
	case "scope":
		return ActionScope, nil
	case "share":
		return ActionShare, nil
	default:
		return ActionNone, zerr.With(zerr.Wrap(ErrInvalidAction, "unsupported action"), "action", s)
	}
}

// SharedInfoAction is the decision for one shared dependency.
type SharedInfoAction struct {
	Action Action
	// Override is the URL to use in place of the remote's own file when skipping.
	Override string
}

// SharedInfoActions maps a package name to its decision.
type SharedInfoActions map[string]SharedInfoAction
