package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id int64) (League, bool, error)
	FindByCanonicalURL(ctx context.Context, canonicalURL string) (League, bool, error)
	Create(ctx context.Context, l *League) error
	Update(ctx context.Context, l *League) error
}
