package usecase

import (
	"context"

	"github.com/mikekeda/athletes/internal/domain/entity"
	"github.com/mikekeda/athletes/internal/infrastructure/wiki"
)

// PageFetcher downloads a wiki page. Non-200 pages are returned, not errors.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (wiki.Page, error)
}

type GeocodeComponent struct {
	Types     []string
	ShortName string
}

type GeocodeResult struct {
	Components []GeocodeComponent
	Location   *entity.Coordinates
}

// Geocoder resolves a free-text address. region biases the lookup to one
// market code and may be empty. No data is an empty slice, not an error.
type Geocoder interface {
	Geocode(ctx context.Context, address, region string) ([]GeocodeResult, error)
}

type ExternalTwitterProfile struct {
	ID             string
	ScreenName     string
	FollowersCount int64
	Raw            map[string]any
}

// TwitterClient finds the best matching profile for "<name> <category>".
type TwitterClient interface {
	LookupProfile(ctx context.Context, name, category string) (*ExternalTwitterProfile, error)
}

// YouTubeClient finds a channel by free-text query and reads its statistics.
type YouTubeClient interface {
	SearchChannel(ctx context.Context, query, regionCode string) (string, bool, error)
	ChannelStats(ctx context.Context, channelID string) (map[string]any, error)
}
