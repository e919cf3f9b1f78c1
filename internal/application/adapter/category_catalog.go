// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// CategoryCatalog provides the category labels offered to users when recording a
// transaction. The list is advisory: any non-empty category is accepted.
type CategoryCatalog interface {
	Suggestions(ctx context.Context) ([]string, error)
}
