package categorizer

import "context"

// CategorizationStrategy defines one way of turning a description into a
// category. Strategies are tried in order and the first hit wins.
type CategorizationStrategy interface {
	// Categorize returns the category for description and whether this
	// strategy recognised it. A strategy that cannot decide returns false
	// with a nil error so the next one is tried.
	Categorize(ctx context.Context, description string) (string, bool, error)

	// Name returns the name of this strategy for logging and debugging purposes.
	Name() string
}
