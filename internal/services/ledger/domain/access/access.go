// Package access holds the pause-then-role check sequence shared by every
// mutating registry operation.
//
// Each mutation runs its checks through Check in a fixed order: pause flag,
// caller role, domain preconditions. The first failing step wins, so callers
// observe a stable error when several violations co-occur.
package access

import apperrors "github.com/louisbranch/taxledger/internal/platform/errors"

var (
	// ErrNotAuthorized reports a caller without the required role.
	ErrNotAuthorized = apperrors.New(apperrors.CodeNotAuthorized, "caller is not authorized")
	// ErrPaused reports a mutation attempted while the registry is paused.
	ErrPaused = apperrors.New(apperrors.CodeContractPaused, "registry is paused")
)

// Step is one check in a mutation's sequence.
type Step func() error

// Check runs steps in order and returns the first failure.
func Check(steps ...Step) error {
	for _, step := range steps {
		if step == nil {
			continue
		}
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// NotPaused fails with ErrPaused when paused is set.
func NotPaused(paused bool) Step {
	return func() error {
		if paused {
			return ErrPaused
		}
		return nil
	}
}

// OneOf fails with ErrNotAuthorized unless caller matches a non-empty
// principal in allowed. Unset principals never authorize anyone.
func OneOf(caller string, allowed ...string) Step {
	return func() error {
		if caller == "" {
			return ErrNotAuthorized
		}
		for _, principal := range allowed {
			if principal != "" && principal == caller {
				return nil
			}
		}
		return ErrNotAuthorized
	}
}

// Guard is the owner and pause state each registry carries.
type Guard struct {
	Owner  string
	Paused bool
}

// Status is the public view of a Guard.
type Status struct {
	Owner  string `json:"owner"`
	Paused bool   `json:"paused"`
}

// Status returns the owner and pause flag.
func (g Guard) Status() Status {
	return Status{Owner: g.Owner, Paused: g.Paused}
}

// OwnerMutation checks an owner-only mutation: pause first, then ownership,
// then the given preconditions.
func (g Guard) OwnerMutation(caller string, preconditions ...Step) error {
	steps := append([]Step{NotPaused(g.Paused), OneOf(caller, g.Owner)}, preconditions...)
	return Check(steps...)
}

// Toggle checks pause and unpause, which only require ownership and are
// never blocked by the pause flag.
func (g Guard) Toggle(caller string) error {
	return Check(OneOf(caller, g.Owner))
}
