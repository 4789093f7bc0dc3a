// Package ai holds the optional text-generation collaborator used to parse
// free text and answer questions when a provider is configured.
package ai

import (
	"context"
	"errors"
)

// ErrProviderUnavailable is returned when no provider is configured.
var ErrProviderUnavailable = errors.New("ai provider unavailable")

// Completer sends a prompt to a text-generation provider and returns the
// raw completion text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Disabled is a Completer that always fails with ErrProviderUnavailable.
type Disabled struct{}

// Complete implements Completer.
func (Disabled) Complete(context.Context, string) (string, error) {
	return "", ErrProviderUnavailable
}

// Available reports whether c can be called at all.
func Available(c Completer) bool {
	if c == nil {
		return false
	}
	_, disabled := c.(Disabled)
	return !disabled
}
