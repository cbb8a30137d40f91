package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mikekeda/athletes/internal/domain/athlete"
	"github.com/mikekeda/athletes/internal/domain/entity"
	"github.com/mikekeda/athletes/internal/domain/league"
	"github.com/mikekeda/athletes/internal/domain/team"
	"github.com/mikekeda/athletes/internal/platform/logging"
)

type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeUpdated   Outcome = "updated"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeSkipped   Outcome = "skipped"
)

// Skip reasons reported next to skipped canonical URLs.
const (
	ReasonDuplicateKey      = "duplicate_key"
	ReasonSourceUnavailable = "source_unavailable"
	ReasonNoInfoCard        = "no_info_card"
	ReasonNoBirthday        = "no_birthday"
	ReasonTooOld            = "too_old"
	ReasonFailed            = "failed"
)

// CrawlObserver receives one call per reconciled or skipped record.
type CrawlObserver interface {
	ObserveCrawlOutcome(kind, outcome, reason string)
}

type noopCrawlObserver struct{}

func (noopCrawlObserver) ObserveCrawlOutcome(string, string, string) {}

type recordStore[T any] interface {
	FindByCanonicalURL(ctx context.Context, canonicalURL string) (T, bool, error)
	Create(ctx context.Context, record *T) error
	Update(ctx context.Context, record *T) error
}

type enrichable[T any] interface {
	*T
	entity.Enrichable
	Validate() error
}

// Reconciler creates or fill-once updates records keyed by canonical URL.
// A create that loses the uniqueness race is reported as skipped.
type Reconciler struct {
	athletes athlete.Repository
	teams    team.Repository
	leagues  league.Repository
	observer CrawlObserver
	logger   *logging.Logger
}

func NewReconciler(
	athletes athlete.Repository,
	teams team.Repository,
	leagues league.Repository,
	observer CrawlObserver,
	logger *logging.Logger,
) *Reconciler {
	if observer == nil {
		observer = noopCrawlObserver{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Reconciler{
		athletes: athletes,
		teams:    teams,
		leagues:  leagues,
		observer: observer,
		logger:   logger,
	}
}

func (r *Reconciler) UpsertAthlete(ctx context.Context, canonicalURL string, facts entity.Facts) (athlete.Athlete, Outcome, error) {
	return reconcile[athlete.Athlete](ctx, r, "athlete", r.athletes, canonicalURL, facts, func(url string) athlete.Athlete {
		return athlete.Athlete{CanonicalURL: url}
	})
}

func (r *Reconciler) UpsertTeam(ctx context.Context, canonicalURL string, facts entity.Facts) (team.Team, Outcome, error) {
	return reconcile[team.Team](ctx, r, "team", r.teams, canonicalURL, facts, func(url string) team.Team {
		return team.Team{CanonicalURL: url}
	})
}

func (r *Reconciler) UpsertLeague(ctx context.Context, canonicalURL string, facts entity.Facts) (league.League, Outcome, error) {
	return reconcile[league.League](ctx, r, "league", r.leagues, canonicalURL, facts, func(url string) league.League {
		return league.League{CanonicalURL: url}
	})
}

// SaveAthlete persists an already loaded athlete through the same coercion
// retry as the upsert path.
func (r *Reconciler) SaveAthlete(ctx context.Context, a *athlete.Athlete, save func(context.Context, *athlete.Athlete) error) error {
	return saveRecord[athlete.Athlete](ctx, a, save)
}

func reconcile[T any, P enrichable[T]](
	ctx context.Context,
	r *Reconciler,
	kind string,
	store recordStore[T],
	canonicalURL string,
	facts entity.Facts,
	fresh func(string) T,
) (T, Outcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Reconciler.Upsert",
		attribute.String("athletes.kind", kind), pageAttr(canonicalURL))
	defer span.End()

	existing, found, err := store.FindByCanonicalURL(ctx, canonicalURL)
	if err != nil {
		return existing, "", fmt.Errorf("find %s url=%s: %w", kind, canonicalURL, err)
	}

	if found {
		changed := P(&existing).FillFrom(facts)
		if len(changed) == 0 {
			r.observer.ObserveCrawlOutcome(kind, string(OutcomeUnchanged), "")
			return existing, OutcomeUnchanged, nil
		}
		if err := saveRecord[T, P](ctx, &existing, store.Update); err != nil {
			r.observer.ObserveCrawlOutcome(kind, "error", ReasonFailed)
			return existing, "", fmt.Errorf("update %s url=%s: %w", kind, canonicalURL, err)
		}
		r.logger.DebugContext(ctx, "record updated", "kind", kind, "url", canonicalURL, "fields", changed)
		r.observer.ObserveCrawlOutcome(kind, string(OutcomeUpdated), "")
		return existing, OutcomeUpdated, nil
	}

	record := fresh(canonicalURL)
	P(&record).FillFrom(facts)
	if err := P(&record).Validate(); err != nil {
		return record, "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	err = saveRecord[T, P](ctx, &record, store.Create)
	switch {
	case errors.Is(err, entity.ErrDuplicateKey):
		r.logger.WarnContext(ctx, "record created concurrently, skipping", "kind", kind, "url", canonicalURL)
		r.observer.ObserveCrawlOutcome(kind, string(OutcomeSkipped), ReasonDuplicateKey)
		return record, OutcomeSkipped, nil
	case err != nil:
		r.observer.ObserveCrawlOutcome(kind, "error", ReasonFailed)
		return record, "", fmt.Errorf("create %s url=%s: %w", kind, canonicalURL, err)
	}

	r.logger.InfoContext(ctx, "record created", "kind", kind, "url", canonicalURL)
	r.observer.ObserveCrawlOutcome(kind, string(OutcomeCreated), "")
	return record, OutcomeCreated, nil
}

// saveRecord runs save once more after a coercion failure, with the offending
// blob cleared. A second failure is returned as is.
func saveRecord[T any, P enrichable[T]](ctx context.Context, record *T, save func(context.Context, *T) error) error {
	err := save(ctx, record)
	fieldErr, ok := entity.IsFieldCoercion(err)
	if !ok {
		return err
	}

	P(record).ResetBlob(fieldErr.Column)
	if err := save(ctx, record); err != nil {
		return fmt.Errorf("retry after resetting %s: %w", fieldErr.Column, err)
	}
	return nil
}

// winner reloads the record that beat a skipped create, so callers can keep
// linking against its id.
func winner[T any](ctx context.Context, store recordStore[T], canonicalURL string) (T, error) {
	record, found, err := store.FindByCanonicalURL(ctx, canonicalURL)
	if err != nil {
		return record, fmt.Errorf("reload url=%s: %w", canonicalURL, err)
	}
	if !found {
		return record, fmt.Errorf("%w: url=%s vanished after duplicate key", ErrNotFound, canonicalURL)
	}
	return record, nil
}
