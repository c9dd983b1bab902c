package dp

import (
	"errors"
	"fmt"
)

// DimensionError reports a policy which does not cover exactly the
// states of the environment it is solved in
type DimensionError struct {
	Op     string
	Policy int // number of states covered by the policy
	States int // number of states in the environment
}

// Error satisfies the error interface
func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: policy covers %d states but environment has %d",
		e.Op, e.Policy, e.States)
}

// IsDimensionError returns whether or not an error reports a policy of
// the wrong size
func IsDimensionError(err error) bool {
	var dimErr *DimensionError
	return errors.As(err, &dimErr)
}
