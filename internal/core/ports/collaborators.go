package ports

import (
	"context"

	"github.com/pecc/timetracking/internal/core/domain"
)

// Geocoder resolves coordinates into a short human-readable place
// description. It is an unreliable, higher-latency external service: a
// failure degrades the description, never the correctness of the entry
// being written.
type Geocoder interface {
	Lookup(ctx context.Context, latitude, longitude float64) (domain.LocationInfo, error)
}

// Assistant answers a free-form administrator question over a serialized
// view of the tracked data. Treated as opaque; its reasoning is out of
// scope.
type Assistant interface {
	Ask(ctx context.Context, question, dataContext string) (string, error)
}
