package cartControllers

import (
	"errors"
	"fmt"
)

var (
	errProductNotFound   = errors.New("product not found")
	errScopeUnauthorized = errors.New("business scope not owned by caller")
)

// stockError carries the available quantity so handlers can report it.
type stockError struct {
	Available int
}

func (e *stockError) Error() string {
	return fmt.Sprintf("only %d units available", e.Available)
}
