package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Team, bool, error)
	FindByCanonicalURL(ctx context.Context, canonicalURL string) (Team, bool, error)
	Create(ctx context.Context, t *Team) error
	Update(ctx context.Context, t *Team) error
	// ListWithLeagueFact returns teams with id > afterID whose info card has a
	// non-empty "League" row, ordered by id.
	ListWithLeagueFact(ctx context.Context, afterID int64, limit int) ([]Team, error)
	// SetLeague links the team to a league unless it already has one. It
	// reports whether this call made the link.
	SetLeague(ctx context.Context, teamID, leagueID int64) (bool, error)
}
