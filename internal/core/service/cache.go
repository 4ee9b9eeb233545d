package service

import "context"

// CollectionCache abstracts the read cache (Redis) placed in front of the
// three list endpoints. All failures are advisory: a miss or an error just
// means the repository is consulted.
type CollectionCache interface {
	// Get unmarshals the cached collection into dest and reports whether
	// the key was present.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, key string) error
}

// Cache keys, one per collection.
const (
	cacheKeyUsers       = "users"
	cacheKeyEntries     = "time_entries"
	cacheKeySubmissions = "contractor_submissions"
)
