package athlete

import "context"

// ListFilter narrows a keyset scan over athletes.
type ListFilter struct {
	// EmptyBlob keeps only athletes whose named blob column is still empty.
	EmptyBlob string
}

// Repository describes athlete persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Athlete, bool, error)
	FindByCanonicalURL(ctx context.Context, canonicalURL string) (Athlete, bool, error)
	// Create returns entity.ErrDuplicateKey when the canonical URL is taken.
	Create(ctx context.Context, a *Athlete) error
	Update(ctx context.Context, a *Athlete) error
	ListAfter(ctx context.Context, afterID int64, limit int, filter ListFilter) ([]Athlete, error)
	ListByTeam(ctx context.Context, teamID int64) ([]Athlete, error)
	// UpdateSocial overwrites the social counters and blobs only.
	UpdateSocial(ctx context.Context, a *Athlete) error
}
