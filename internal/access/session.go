package access

import (
	"errors"
	"fmt"
)

type State int

const (
	Unauthenticated State = iota
	Authenticating
	Authenticated
	Banned
	LoggedOut
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case Banned:
		return "banned"
	case LoggedOut:
		return "logged_out"
	default:
		return "unauthenticated"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type Event int

const (
	Submit Event = iota
	Succeed
	Fail
	BanEvent
	UnbanEvent
	Logout
)

func (e Event) String() string {
	switch e {
	case Submit:
		return "submit"
	case Succeed:
		return "succeed"
	case Fail:
		return "fail"
	case BanEvent:
		return "ban"
	case UnbanEvent:
		return "unban"
	case Logout:
		return "logout"
	}
	return fmt.Sprintf("event(%d)", int(e))
}

var ErrInvalidTransition = errors.New("invalid session transition")

// Session tracks the lifecycle of a single sign-in. The zero value is an
// unauthenticated session.
type Session struct {
	State State
}

// Transition applies e to the session. banned is only consulted for Succeed.
// signOut reports that persisted credentials for the identity must be
// destroyed. On error the state is left unchanged.
func (s *Session) Transition(e Event, banned bool) (signOut bool, err error) {
	next, signOut, ok := nextState(s.State, e, banned)
	if !ok {
		return false, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, e, s.State)
	}
	s.State = next
	return signOut, nil
}

func nextState(from State, e Event, banned bool) (State, bool, bool) {
	switch e {
	case Submit:
		if from == Unauthenticated || from == LoggedOut {
			return Authenticating, false, true
		}
	case Succeed:
		if from == Authenticating {
			if banned {
				return Banned, true, true
			}
			return Authenticated, false, true
		}
	case Fail:
		if from == Authenticating {
			return Unauthenticated, false, true
		}
	case BanEvent:
		if from == Authenticated {
			return Banned, true, true
		}
	case UnbanEvent:
		if from == Banned {
			return Unauthenticated, false, true
		}
	case Logout:
		if from == Authenticated || from == Banned {
			return LoggedOut, true, true
		}
	}
	return from, false, false
}

// StateOf derives the state of an already established session from the
// current account flags.
func StateOf(authenticated, banned bool) State {
	switch {
	case !authenticated:
		return Unauthenticated
	case banned:
		return Banned
	default:
		return Authenticated
	}
}
