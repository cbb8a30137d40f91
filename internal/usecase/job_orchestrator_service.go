package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mikekeda/athletes/internal/domain/entity"
	"github.com/mikekeda/athletes/internal/domain/jobscheduler"
	"github.com/mikekeda/athletes/internal/platform/id"
	"github.com/mikekeda/athletes/internal/platform/logging"
)

const (
	JobCrawlTeam     = "crawl-team"
	JobCrawlLeague   = "crawl-league"
	JobEnrichAthlete = "enrich-athlete"
	JobLinkLeagues   = "link-leagues"
	JobSyncTwitter   = "sync-twitter"
	JobSyncYouTube   = "sync-youtube"

	jobPathPrefix = "/v1/internal/jobs/"
)

// JobPath is the callback path the queue posts a job to.
func JobPath(job string) string {
	return jobPathPrefix + job
}

type JobQueue interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

type noopJobQueue struct{}

func (noopJobQueue) Enqueue(_ context.Context, _ string, _ any, _ time.Duration, _ string) error {
	return nil
}

func NewNoopJobQueue() JobQueue {
	return noopJobQueue{}
}

// JobObserver records the duration and status of every job run.
type JobObserver interface {
	ObserveJob(job, status string, elapsed time.Duration)
}

type noopJobObserver struct{}

func (noopJobObserver) ObserveJob(string, string, time.Duration) {}

type JobOrchestratorConfig struct {
	// DedupWindow buckets dispatch ids so a page is queued at most once per window.
	DedupWindow time.Duration
	// ContinueDelay spaces the self-enqueued pages of a cursor walk.
	ContinueDelay time.Duration
}

// Job payloads carry the dispatch id next to the use case input.
type CrawlTeamJob struct {
	CrawlTeamInput
	DispatchID string `json:"dispatch_id"`
}

type CrawlLeagueJob struct {
	CrawlLeagueInput
	DispatchID string `json:"dispatch_id"`
}

type EnrichAthleteJob struct {
	EnrichAthleteInput
	DispatchID string `json:"dispatch_id"`
}

type LinkLeaguesJob struct {
	LinkLeaguesInput
	DispatchID string `json:"dispatch_id"`
}

type SocialSyncJob struct {
	SocialSyncInput
	DispatchID string `json:"dispatch_id"`
}

type JobOrchestratorService struct {
	crawl        *CrawlService
	enrichment   *EnrichmentService
	leagueLinks  *LeagueLinkService
	social       *SocialSyncService
	queue        JobQueue
	dispatchRepo jobscheduler.Repository
	ids          id.Generator
	observer     JobObserver
	cfg          JobOrchestratorConfig
	logger       *logging.Logger
	now          func() time.Time
}

var dedupUnsafeCharRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func NewJobOrchestratorService(
	crawl *CrawlService,
	enrichment *EnrichmentService,
	leagueLinks *LeagueLinkService,
	social *SocialSyncService,
	queue JobQueue,
	dispatchRepo jobscheduler.Repository,
	ids id.Generator,
	observer JobObserver,
	cfg JobOrchestratorConfig,
	logger *logging.Logger,
) *JobOrchestratorService {
	if queue == nil {
		queue = NewNoopJobQueue()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if observer == nil {
		observer = noopJobObserver{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.DedupWindow <= 0 {
		cfg.DedupWindow = time.Hour
	}
	if cfg.ContinueDelay <= 0 {
		cfg.ContinueDelay = 5 * time.Second
	}

	return &JobOrchestratorService{
		crawl:        crawl,
		enrichment:   enrichment,
		leagueLinks:  leagueLinks,
		social:       social,
		queue:        queue,
		dispatchRepo: dispatchRepo,
		ids:          ids,
		observer:     observer,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *JobOrchestratorService) EnqueueCrawlTeam(ctx context.Context, input CrawlTeamInput) (string, error) {
	job := CrawlTeamJob{CrawlTeamInput: input}
	return s.enqueue(ctx, JobCrawlTeam, entity.Slug(input.URL), 0, s.cfg.DedupWindow, func(dispatchID string) any {
		job.DispatchID = dispatchID
		return job
	})
}

func (s *JobOrchestratorService) EnqueueCrawlLeague(ctx context.Context, input CrawlLeagueInput) (string, error) {
	job := CrawlLeagueJob{CrawlLeagueInput: input}
	return s.enqueue(ctx, JobCrawlLeague, entity.Slug(input.URL), 0, s.cfg.DedupWindow, func(dispatchID string) any {
		job.DispatchID = dispatchID
		return job
	})
}

func (s *JobOrchestratorService) EnqueueEnrichAthlete(ctx context.Context, input EnrichAthleteInput) (string, error) {
	job := EnrichAthleteJob{EnrichAthleteInput: input}
	return s.enqueue(ctx, JobEnrichAthlete, entity.Slug(input.URL), 0, s.cfg.DedupWindow, func(dispatchID string) any {
		job.DispatchID = dispatchID
		return job
	})
}

func (s *JobOrchestratorService) EnqueueLinkLeagues(ctx context.Context, input LinkLeaguesInput, delay time.Duration) (string, error) {
	job := LinkLeaguesJob{LinkLeaguesInput: input}
	target := "after-" + strconv.FormatInt(input.AfterID, 10)
	return s.enqueue(ctx, JobLinkLeagues, target, delay, s.cfg.DedupWindow, func(dispatchID string) any {
		job.DispatchID = dispatchID
		return job
	})
}

// EnqueueSocialSync queues one drain page for network (twitter or youtube).
func (s *JobOrchestratorService) EnqueueSocialSync(ctx context.Context, network string, input SocialSyncInput, delay time.Duration) (string, error) {
	jobName, err := socialJobName(network)
	if err != nil {
		return "", err
	}
	mode := input.Mode
	if mode == "" {
		mode = SyncModePending
	}
	job := SocialSyncJob{SocialSyncInput: input}
	target := mode + "-after-" + strconv.FormatInt(input.AfterID, 10)
	// Pending drains run every minute, so they dedup per minute.
	bucket := s.cfg.DedupWindow
	if mode == SyncModePending {
		bucket = time.Minute
	}
	return s.enqueue(ctx, jobName, target, delay, bucket, func(dispatchID string) any {
		job.DispatchID = dispatchID
		return job
	})
}

func (s *JobOrchestratorService) RunCrawlTeam(ctx context.Context, job CrawlTeamJob) (CrawlTeamResult, error) {
	ctx, run := s.begin(ctx, JobCrawlTeam, job.DispatchID, entity.Slug(job.URL))
	result, err := s.crawl.CrawlTeam(ctx, job.CrawlTeamInput)
	s.finish(ctx, run, err)
	return result, err
}

func (s *JobOrchestratorService) RunCrawlLeague(ctx context.Context, job CrawlLeagueJob) (CrawlLeagueResult, error) {
	ctx, run := s.begin(ctx, JobCrawlLeague, job.DispatchID, entity.Slug(job.URL))
	result, err := s.crawl.CrawlLeague(ctx, job.CrawlLeagueInput)
	s.finish(ctx, run, err)
	return result, err
}

func (s *JobOrchestratorService) RunEnrichAthlete(ctx context.Context, job EnrichAthleteJob) (AthleteResult, error) {
	ctx, run := s.begin(ctx, JobEnrichAthlete, job.DispatchID, entity.Slug(job.URL))
	result, err := s.enrichment.EnrichAthlete(ctx, job.EnrichAthleteInput)
	s.finish(ctx, run, err)
	return result, err
}

// RunLinkLeagues processes one page and queues the next one until the cursor
// reaches the end of the teams table.
func (s *JobOrchestratorService) RunLinkLeagues(ctx context.Context, job LinkLeaguesJob) (LinkLeaguesResult, error) {
	ctx, run := s.begin(ctx, JobLinkLeagues, job.DispatchID, "after-"+strconv.FormatInt(job.AfterID, 10))
	result, err := s.leagueLinks.LinkLeagues(ctx, job.LinkLeaguesInput)
	if err == nil && !result.Done {
		next := LinkLeaguesInput{AfterID: result.NextCursor, Limit: job.Limit}
		if _, err = s.EnqueueLinkLeagues(ctx, next, s.cfg.ContinueDelay); err != nil {
			err = fmt.Errorf("enqueue next link-leagues page: %w", err)
		}
	}
	s.finish(ctx, run, err)
	return result, err
}

// RunSocialSync drains one page. Refresh walks continue until done; pending
// drains wait for the next scheduler tick.
func (s *JobOrchestratorService) RunSocialSync(ctx context.Context, network string, job SocialSyncJob) (SocialSyncResult, error) {
	jobName, err := socialJobName(network)
	if err != nil {
		return SocialSyncResult{}, err
	}
	ctx, run := s.begin(ctx, jobName, job.DispatchID, job.Mode+"-after-"+strconv.FormatInt(job.AfterID, 10))

	var result SocialSyncResult
	if jobName == JobSyncTwitter {
		result, err = s.social.SyncTwitter(ctx, job.SocialSyncInput)
	} else {
		result, err = s.social.SyncYouTube(ctx, job.SocialSyncInput)
	}
	if err == nil && !result.Done && result.Mode == SyncModeRefresh {
		next := SocialSyncInput{Mode: SyncModeRefresh, AfterID: result.NextCursor, Limit: job.Limit}
		if _, err = s.EnqueueSocialSync(ctx, network, next, s.cfg.ContinueDelay); err != nil {
			err = fmt.Errorf("enqueue next %s page: %w", jobName, err)
		}
	}
	s.finish(ctx, run, err)
	return result, err
}

func socialJobName(network string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(network)) {
	case NetworkTwitter:
		return JobSyncTwitter, nil
	case NetworkYouTube:
		return JobSyncYouTube, nil
	default:
		return "", fmt.Errorf("%w: unknown social network %q", ErrInvalidInput, network)
	}
}

func (s *JobOrchestratorService) enqueue(
	ctx context.Context,
	jobName, target string,
	delay, bucket time.Duration,
	build func(dispatchID string) any,
) (string, error) {
	now := s.now().UTC()
	dedupID := dedupKey(jobName, target, now.Add(delay), bucket)
	payload := build(dedupID)
	path := JobPath(jobName)

	event := jobscheduler.DispatchEvent{
		DispatchID: dedupID,
		JobName:    jobName,
		JobPath:    path,
		Target:     target,
		Status:     jobscheduler.StatusSent,
		Payload:    payloadMap(payload),
		OccurredAt: now,
	}
	// Record before enqueueing: an inline queue completes the job within Enqueue.
	s.recordDispatchEvent(ctx, event)
	if err := s.queue.Enqueue(ctx, path, payload, delay, dedupID); err != nil {
		event.Status = jobscheduler.StatusFailed
		event.ErrorMessage = err.Error()
		event.OccurredAt = s.now().UTC()
		s.recordDispatchEvent(ctx, event)
		return "", fmt.Errorf("enqueue %s target=%s: %w", jobName, target, err)
	}
	return dedupID, nil
}

type jobRun struct {
	name       string
	dispatchID string
	target     string
	startedAt  time.Time
	span       trace.Span
}

func (s *JobOrchestratorService) begin(ctx context.Context, jobName, dispatchID, target string) (context.Context, jobRun) {
	if strings.TrimSpace(dispatchID) == "" {
		// Direct runs (CLI, manual API calls) still get a dispatch record.
		generated, err := s.ids.NewID()
		if err != nil {
			s.logger.WarnContext(ctx, "generate dispatch id failed", "job", jobName, "error", err)
		}
		dispatchID = sanitizeDedupSegment(jobName) + "-manual-" + generated
	}
	ctx, span := startUsecaseSpan(ctx, "usecase.JobOrchestratorService.Run",
		attribute.String("athletes.job", jobName),
		attribute.String("athletes.dispatch_id", dispatchID),
	)
	return ctx, jobRun{name: jobName, dispatchID: dispatchID, target: target, startedAt: s.now(), span: span}
}

func (s *JobOrchestratorService) finish(ctx context.Context, run jobRun, err error) {
	defer run.span.End()
	failSpan(run.span, err)

	status := jobscheduler.StatusCompleted
	event := jobscheduler.DispatchEvent{
		DispatchID: run.dispatchID,
		JobName:    run.name,
		JobPath:    JobPath(run.name),
		Target:     run.target,
		OccurredAt: s.now().UTC(),
	}
	if err != nil {
		status = jobscheduler.StatusFailed
		event.ErrorMessage = err.Error()
		s.logger.ErrorContext(ctx, "job failed", "job", run.name, "dispatch_id", run.dispatchID, "error", err)
	}
	event.Status = status
	s.recordDispatchEvent(ctx, event)
	s.observer.ObserveJob(run.name, string(status), s.now().Sub(run.startedAt))
}

func payloadMap(payload any) map[string]any {
	raw, err := jsoniter.Marshal(payload)
	if err != nil {
		return nil
	}
	var out map[string]any
	if err := jsoniter.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func dedupKey(prefix, target string, at time.Time, bucket time.Duration) string {
	if bucket <= 0 {
		bucket = time.Minute
	}
	slot := at.UTC().Truncate(bucket).Format("20060102T150405Z")
	prefix = sanitizeDedupSegment(prefix)
	target = sanitizeDedupSegment(target)
	return prefix + "-" + target + "-" + slot
}

func sanitizeDedupSegment(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return dedupUnsafeCharRegex.ReplaceAllString(value, "-")
}

func (s *JobOrchestratorService) recordDispatchEvent(ctx context.Context, event jobscheduler.DispatchEvent) {
	if s.dispatchRepo == nil || strings.TrimSpace(event.DispatchID) == "" {
		return
	}
	traceID, spanID := traceMetaFromContext(ctx)
	event.TraceID = traceID
	event.SpanID = spanID
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now().UTC()
	}
	if err := s.dispatchRepo.RecordEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "record job dispatch event failed",
			"dispatch_id", event.DispatchID,
			"status", event.Status,
			"error", err,
		)
	}
}

func traceMetaFromContext(ctx context.Context) (string, string) {
	spanContext := trace.SpanFromContext(ctx).SpanContext()
	if !spanContext.IsValid() {
		return "", ""
	}
	return spanContext.TraceID().String(), spanContext.SpanID().String()
}
