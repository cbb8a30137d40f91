package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mikekeda/athletes/internal/domain/athlete"
	"github.com/mikekeda/athletes/internal/platform/logging"
	"github.com/mikekeda/athletes/internal/platform/ratelimit"
)

const (
	SyncModePending = "pending"
	SyncModeRefresh = "refresh"

	NetworkTwitter = "twitter"
	NetworkYouTube = "youtube"

	defaultSocialBatchSize = 100

	// Keys of the blob stored for an athlete the network has no account for.
	LookupStatusKey      = "lookup_status"
	LookupStatusNotFound = "not_found"
	LookupCheckedAtKey   = "checked_at"
)

type SocialSyncInput struct {
	Mode    string `json:"mode" validate:"omitempty,oneof=pending refresh"`
	AfterID int64  `json:"after_id" validate:"gte=0"`
	Limit   int    `json:"limit" validate:"gte=0,lte=1000"`
}

type SocialSyncResult struct {
	Network    string `json:"network"`
	Mode       string `json:"mode"`
	Processed  int    `json:"processed"`
	Updated    int    `json:"updated"`
	NotFound   int    `json:"not_found"`
	Failed     int    `json:"failed"`
	NextCursor int64  `json:"next_cursor"`
	Done       bool   `json:"done"`
}

// SocialObserver counts lookups per network and outcome.
type SocialObserver interface {
	ObserveSocialLookup(network, outcome string)
}

type noopSocialObserver struct{}

func (noopSocialObserver) ObserveSocialLookup(string, string) {}

// SocialSyncService drains athletes through the quota bound social APIs.
// Follower counts and channel statistics are refreshed on every run; they do
// not follow the fill-once rule.
type SocialSyncService struct {
	athletes   athlete.Repository
	twitter    TwitterClient
	youtube    YouTubeClient
	reconciler *Reconciler
	throttle   *ratelimit.Throttle
	batchSize  int
	observer   SocialObserver
	logger     *logging.Logger
	now        func() time.Time
}

func NewSocialSyncService(
	athletes athlete.Repository,
	twitter TwitterClient,
	youtube YouTubeClient,
	reconciler *Reconciler,
	throttle *ratelimit.Throttle,
	batchSize int,
	observer SocialObserver,
	logger *logging.Logger,
) *SocialSyncService {
	if batchSize <= 0 {
		batchSize = defaultSocialBatchSize
	}
	if observer == nil {
		observer = noopSocialObserver{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SocialSyncService{
		athletes:   athletes,
		twitter:    twitter,
		youtube:    youtube,
		reconciler: reconciler,
		throttle:   throttle,
		batchSize:  batchSize,
		observer:   observer,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *SocialSyncService) SyncTwitter(ctx context.Context, input SocialSyncInput) (SocialSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SocialSyncService.SyncTwitter", attribute.String("athletes.sync_mode", input.Mode))
	defer span.End()

	if s.twitter == nil {
		return SocialSyncResult{}, fmt.Errorf("%w: twitter client is not configured", ErrDependencyUnavailable)
	}
	return s.drain(ctx, NetworkTwitter, athlete.ColumnTwitterInfo, input, s.syncTwitterOne)
}

func (s *SocialSyncService) SyncYouTube(ctx context.Context, input SocialSyncInput) (SocialSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SocialSyncService.SyncYouTube", attribute.String("athletes.sync_mode", input.Mode))
	defer span.End()

	if s.youtube == nil {
		return SocialSyncResult{}, fmt.Errorf("%w: youtube client is not configured", ErrDependencyUnavailable)
	}
	return s.drain(ctx, NetworkYouTube, athlete.ColumnYouTubeInfo, input, s.syncYouTubeOne)
}

// drain walks one keyset page. sync reports whether the athlete changed.
func (s *SocialSyncService) drain(
	ctx context.Context,
	network, blobColumn string,
	input SocialSyncInput,
	sync func(context.Context, *athlete.Athlete) (bool, error),
) (SocialSyncResult, error) {
	mode := strings.TrimSpace(input.Mode)
	if mode == "" {
		mode = SyncModePending
	}
	limit := input.Limit
	if limit <= 0 {
		limit = s.batchSize
	}

	filter := athlete.ListFilter{}
	if mode == SyncModePending {
		filter.EmptyBlob = blobColumn
	}
	items, err := s.athletes.ListAfter(ctx, input.AfterID, limit, filter)
	if err != nil {
		return SocialSyncResult{}, fmt.Errorf("list athletes for %s sync: %w", network, err)
	}

	result := SocialSyncResult{
		Network:    network,
		Mode:       mode,
		NextCursor: input.AfterID,
		Done:       len(items) < limit,
	}
	for i := range items {
		item := &items[i]
		if err := s.throttle.Wait(ctx); err != nil {
			return result, err
		}

		result.Processed++
		result.NextCursor = item.ID

		changed, err := sync(ctx, item)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result.Failed++
			s.observer.ObserveSocialLookup(network, "error")
			s.logger.WarnContext(ctx, "social sync failed", "network", network, "athlete_id", item.ID, "error", err)
		case changed:
			result.Updated++
			s.observer.ObserveSocialLookup(network, "updated")
		default:
			result.NotFound++
			s.observer.ObserveSocialLookup(network, "not_found")
			if err := s.markNotFound(ctx, item, blobColumn); err != nil {
				s.logger.WarnContext(ctx, "social lookup not recorded", "network", network, "athlete_id", item.ID, "error", err)
			}
		}
	}

	s.logger.InfoContext(ctx, "social sync batch done",
		"network", network,
		"mode", mode,
		"processed", result.Processed,
		"updated", result.Updated,
		"failed", result.Failed,
		"done", result.Done,
	)
	return result, nil
}

func (s *SocialSyncService) syncTwitterOne(ctx context.Context, a *athlete.Athlete) (bool, error) {
	profile, err := s.twitter.LookupProfile(ctx, a.Name, a.Category)
	if err != nil {
		return false, fmt.Errorf("lookup twitter profile: %w", err)
	}
	if profile == nil {
		return false, nil
	}

	a.TwitterFollowers = profile.FollowersCount
	a.TwitterInfo = profile.Raw
	if err := s.reconciler.SaveAthlete(ctx, a, s.athletes.UpdateSocial); err != nil {
		return false, fmt.Errorf("save twitter info: %w", err)
	}
	return true, nil
}

func (s *SocialSyncService) syncYouTubeOne(ctx context.Context, a *athlete.Athlete) (bool, error) {
	channelID, ok, err := s.youtube.SearchChannel(ctx, a.Name, a.LocationMarket)
	if err != nil {
		return false, fmt.Errorf("search youtube channel: %w", err)
	}
	if !ok {
		return false, nil
	}

	stats, err := s.youtube.ChannelStats(ctx, channelID)
	if err != nil {
		return false, fmt.Errorf("read youtube channel stats: %w", err)
	}
	if len(stats) == 0 {
		return false, nil
	}

	a.YouTubeInfo = stats
	if err := s.reconciler.SaveAthlete(ctx, a, s.athletes.UpdateSocial); err != nil {
		return false, fmt.Errorf("save youtube info: %w", err)
	}
	return true, nil
}

// markNotFound stores a lookup marker in an empty blob so the athlete leaves
// the pending set; the refresh drain still revisits it. Existing profiles are
// left alone.
func (s *SocialSyncService) markNotFound(ctx context.Context, a *athlete.Athlete, blobColumn string) error {
	marker := map[string]any{
		LookupStatusKey:    LookupStatusNotFound,
		LookupCheckedAtKey: s.now().UTC().Format(time.RFC3339),
	}
	switch {
	case blobColumn == athlete.ColumnTwitterInfo && len(a.TwitterInfo) == 0:
		a.TwitterInfo = marker
	case blobColumn == athlete.ColumnYouTubeInfo && len(a.YouTubeInfo) == 0:
		a.YouTubeInfo = marker
	default:
		return nil
	}
	return s.reconciler.SaveAthlete(ctx, a, s.athletes.UpdateSocial)
}
