package application

import (
	"fmt"
	"strings"

	"chemint/internal/ports"
)

// ResolveButton finds a list button by ID or by label (case-insensitive).
// A label shared by several buttons is rejected.
func ResolveButton(list ports.List, ref string) (ports.Button, error) {
	ref = strings.TrimSpace(ref)
	for _, b := range list.Items {
		if b.ID == ref {
			return b, nil
		}
	}
	var match []ports.Button
	for _, b := range list.Items {
		if strings.EqualFold(b.Text, ref) {
			match = append(match, b)
		}
	}
	switch len(match) {
	case 0:
		return ports.Button{}, fmt.Errorf("%q: %w", ref, ErrNotFound)
	case 1:
		return match[0], nil
	default:
		return ports.Button{}, &ValidationError{Field: "ref", Message: fmt.Sprintf("%q is ambiguous, use the id", ref)}
	}
}
