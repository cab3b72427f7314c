// Package assert implements the fail-fast contract checks of the grid model.
//
// Usage checks guard the public API against caller mistakes such as an unknown
// identifier and are always compiled in. Essential checks guard internal
// invariants and only run in binaries built with the griddebug tag.
package assert

import "fmt"

// ContractError is the panic value raised by a failed check.
type ContractError struct {
	Tier    string
	Message string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s contract violated: %s", e.Tier, e.Message)
}

// Usage panics with a ContractError when cond is false.
func Usage(cond bool, format string, args ...any) {
	if !cond {
		panic(&ContractError{Tier: "usage", Message: fmt.Sprintf(format, args...)})
	}
}

// Essential behaves like Usage when the griddebug tag is set and is a no-op
// otherwise.
func Essential(cond bool, format string, args ...any) {
	if debug && !cond {
		panic(&ContractError{Tier: "essential", Message: fmt.Sprintf(format, args...)})
	}
}
