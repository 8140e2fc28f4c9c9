package plugin

import (
	"errors"
	"fmt"
)

// ErrInvalidDeclaration is returned when a declaration cannot be resolved.
var ErrInvalidDeclaration = errors.New("invalid plugin declaration")

// DeclarationError describes why a specific declaration was rejected.
type DeclarationError struct {
	Repo   string
	Reason string
}

func (e *DeclarationError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrInvalidDeclaration, e.Repo, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidDeclaration) match.
func (e *DeclarationError) Is(target error) bool {
	return target == ErrInvalidDeclaration
}

func invalid(repo, reason string) error {
	return &DeclarationError{Repo: repo, Reason: reason}
}
