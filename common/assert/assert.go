package assert

import (
	bettererrors "github.com/xtuc/better-errors"
)

// Assert panics with a better-errors chain when cond does not hold.
// It is reserved for broken internal invariants, never for bad input.
func Assert(cond bool, msg string) {
	if !cond {
		panic(bettererrors.
			NewFromString("Broken invariant").
			With(bettererrors.NewFromString(msg)))
	}
}

// Recover, when deferred, turns a panic carrying a better-errors chain
// into *err. Any other panic goes on.
func Recover(err *error) {
	if r := recover(); r != nil {
		if chain, ok := r.(*bettererrors.Chain); ok {
			*err = chain
			return
		}
		panic(r)
	}
}
