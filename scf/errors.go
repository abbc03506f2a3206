package scf

import "fmt"

// ShapeError reports matrix dimensions incompatible with the basis
// dimension of the integral set.
type ShapeError struct {
	What string
	Got  int
	Want int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("shape mismatch: %s has dimension %d, integral set has %d",
		e.What, e.Got, e.Want)
}

func checkShape(what string, got, want int) error {
	if got != want {
		return &ShapeError{What: what, Got: got, Want: want}
	}
	return nil
}
