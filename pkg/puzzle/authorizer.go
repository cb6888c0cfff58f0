package puzzle

import (
	"context"
	"fmt"

	comm_puzzle "github.com/mr-shifu/puzzle-lib/pkg/common/puzzle"
)

type openAuthorizer struct{}

// Open allows every caller. It is the default.
func Open() comm_puzzle.Authorizer {
	return openAuthorizer{}
}

func (openAuthorizer) Authorize(context.Context, comm_puzzle.Operation, string) error {
	return nil
}

// AllowListAuthorizer admits only the listed callers.
type AllowListAuthorizer struct {
	callers map[string]struct{}
}

func AllowList(callers ...string) *AllowListAuthorizer {
	a := &AllowListAuthorizer{callers: make(map[string]struct{}, len(callers))}
	for _, c := range callers {
		a.callers[c] = struct{}{}
	}
	return a
}

func (a *AllowListAuthorizer) Authorize(_ context.Context, op comm_puzzle.Operation, caller string) error {
	if _, ok := a.callers[caller]; !ok {
		return fmt.Errorf("%w: %q may not call %s", ErrPermissionDenied, caller, op)
	}
	return nil
}
