package application

import (
	"errors"
	"fmt"

	"chemint/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNotFound            = errors.New("not found")
	ErrNoStructureSelected = errors.New("no structure selected")
	ErrMultipleStructures  = errors.New("multiple structures selected")
	ErrNoLigandSelected    = errors.New("no ligand selected")
	ErrShallowStructure    = errors.New("structure has no atomic data")
	ErrUnknownCategory     = domain.ErrUnknownCategory
	ErrUnknownColor        = domain.ErrUnknownColor
)

// ValidationError is a user input error. Message is meant for the user.
type ValidationError struct {
	Field   string
	Message string
	Err     error // sentinel, may be nil
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// FetchError is returned when the host could not deliver a deep structure
type FetchError struct {
	Index int
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("cannot fetch structure %d: %v", e.Index, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsUserError reports whether err should be shown to the user as a plain message
// rather than treated as an infrastructure failure
func IsUserError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr) ||
		errors.Is(err, ErrUnknownCategory) ||
		errors.Is(err, ErrUnknownColor)
}

// UserMessage returns the text to show for err
func UserMessage(err error) string {
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr.Message
	}
	return err.Error()
}
