package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/mikekeda/athletes/internal/domain/athlete"
)

const joeSmithURL = site + "/wiki/Joe_Smith"

func TestEnrichmentService_EnrichAthlete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("creates from page", func(t *testing.T) {
		t.Parallel()

		geocoder := &stubGeocoder{}
		env := newTestEnv(t, map[string]string{
			joeSmithURL: athletePage("Joe Smith", "1995-03-01", `<tr><th>Nationality</th><td>German</td></tr>`),
		}, geocoder)

		result, err := env.enrichment.EnrichAthlete(ctx, EnrichAthleteInput{URL: joeSmithURL})
		require.NoError(t, err)
		require.Equal(t, OutcomeCreated, result.Outcome)
		require.NotZero(t, result.AthleteID)

		stored, found, err := env.athletes.FindByCanonicalURL(ctx, joeSmithURL)
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, "Joe Smith", stored.Name)
		require.Equal(t, "DE", stored.DomesticMarket)
		require.Empty(t, geocoder.calls, "market came from the card")
	})

	t.Run("keeps populated fields", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, map[string]string{
			joeSmithURL: athletePage("Joe Smith", "1995-03-01", `<tr><th>Nationality</th><td>German</td></tr>`),
		}, nil)
		require.NoError(t, env.athletes.Create(ctx, &athlete.Athlete{
			CanonicalURL:   joeSmithURL,
			Name:           "Joseph Smith",
			DomesticMarket: "BR",
		}))

		result, err := env.enrichment.EnrichAthlete(ctx, EnrichAthleteInput{URL: joeSmithURL})
		require.NoError(t, err)
		require.Equal(t, OutcomeUpdated, result.Outcome)

		stored, _, err := env.athletes.FindByCanonicalURL(ctx, joeSmithURL)
		require.NoError(t, err)
		require.Equal(t, "Joseph Smith", stored.Name)
		require.Equal(t, "BR", stored.DomesticMarket)
		require.False(t, stored.Birthday.IsZero(), "empty birthday is filled")
	})

	t.Run("geocodes missing market", func(t *testing.T) {
		t.Parallel()

		geocoder := &stubGeocoder{results: []GeocodeResult{{Components: []GeocodeComponent{
			{Types: []string{"country", "political"}, ShortName: "US"},
		}}}}
		env := newTestEnv(t, map[string]string{
			joeSmithURL: athletePage("Joe Smith", "1995-03-01", `<tr><th>College</th><td>Duke University</td></tr>`),
		}, geocoder)

		_, err := env.enrichment.EnrichAthlete(ctx, EnrichAthleteInput{URL: joeSmithURL})
		require.NoError(t, err)

		stored, _, err := env.athletes.FindByCanonicalURL(ctx, joeSmithURL)
		require.NoError(t, err)
		require.Equal(t, "US", stored.DomesticMarket)
		require.NotEmpty(t, geocoder.calls)
	})

	t.Run("too old is skipped", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, map[string]string{
			joeSmithURL: athletePage("Joe Smith", "1970-01-01", ""),
		}, nil)

		result, err := env.enrichment.EnrichAthlete(ctx, EnrichAthleteInput{URL: joeSmithURL})
		require.NoError(t, err)
		require.True(t, result.Skipped())
		require.Equal(t, ReasonTooOld, result.Reason)

		_, found, err := env.athletes.FindByCanonicalURL(ctx, joeSmithURL)
		require.NoError(t, err)
		require.False(t, found)
	})

	t.Run("missing page is skipped", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, nil, nil)

		result, err := env.enrichment.EnrichAthlete(ctx, EnrichAthleteInput{URL: joeSmithURL})
		require.NoError(t, err)
		require.True(t, result.Skipped())
		require.Equal(t, ReasonSourceUnavailable, result.Reason)
	})

	t.Run("url required", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, nil, nil)

		_, err := env.enrichment.EnrichAthlete(ctx, EnrichAthleteInput{URL: "  "})
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestEnrichmentService_EnrichAthleteSpan(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	tracer := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)).Tracer("test")
	ctx, parent := tracer.Start(context.Background(), "POST /v1/internal/jobs/enrich-athlete")

	env := newTestEnv(t, map[string]string{
		joeSmithURL: athletePage("Joe Smith", "1970-01-01", ""),
	}, nil)

	result, err := env.enrichment.EnrichAthlete(ctx, EnrichAthleteInput{URL: joeSmithURL})
	require.NoError(t, err)
	require.True(t, result.Skipped())
	parent.End()

	var span sdktrace.ReadOnlySpan
	for _, ended := range recorder.Ended() {
		if ended.Name() == "usecase.EnrichmentService.EnrichAthlete" {
			span = ended
		}
	}
	require.NotNil(t, span, "enrich span recorded under the request span")
	require.Equal(t, parent.SpanContext().SpanID(), span.Parent().SpanID())
	require.Contains(t, span.Attributes(), attribute.String("athletes.outcome", string(OutcomeSkipped)))
	require.Contains(t, span.Attributes(), attribute.String("athletes.skip_reason", ReasonTooOld))
}
