// Package ports defines the application-layer interfaces infrastructure
// adapters implement.
package ports

import (
	"context"

	"github.com/nibzard/beautiful-mermaid/domain/layout"
)

// LayoutStore persists exported position records keyed by source
// document identity. Store failures are logged by callers and never
// reach geometry state.
type LayoutStore interface {
	// Save upserts the record for its source identity.
	Save(ctx context.Context, rec *layout.Record) error
	// Load returns the record for a source identity, or (nil, nil)
	// when none is stored or the stored payload is unusable.
	Load(ctx context.Context, source string) (*layout.Record, error)
	// Delete removes a stored record.
	Delete(ctx context.Context, source string) error
	// Close releases the underlying resources.
	Close() error
}
