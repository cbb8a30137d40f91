package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mikekeda/athletes/internal/domain/athlete"
	"github.com/mikekeda/athletes/internal/domain/entity"
	"github.com/mikekeda/athletes/internal/infrastructure/repository/memory"
	athletemock "github.com/mikekeda/athletes/internal/mocks/domain/athlete"
	"github.com/mikekeda/athletes/internal/platform/logging"
)

func TestReconciler_FillOnceAndIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reconciler := NewReconciler(memory.NewAthleteRepository(), memory.NewTeamRepository(), memory.NewLeagueRepository(), nil, logging.NewNop())
	url := site + "/wiki/Joe_Smith"
	facts := entity.Facts{Name: "Joe Smith", Category: "Football"}

	first, outcome, err := reconciler.UpsertAthlete(ctx, url, facts)
	require.NoError(t, err)
	require.Equal(t, OutcomeCreated, outcome)

	second, outcome, err := reconciler.UpsertAthlete(ctx, url, facts)
	require.NoError(t, err)
	require.Equal(t, OutcomeUnchanged, outcome)
	require.Equal(t, first.ID, second.ID)

	third, outcome, err := reconciler.UpsertAthlete(ctx, url, entity.Facts{Category: "Basketball", DomesticMarket: "US"})
	require.NoError(t, err)
	require.Equal(t, OutcomeUpdated, outcome)
	require.Equal(t, "Football", third.Category)
	require.Equal(t, "US", third.DomesticMarket)
}

func TestReconciler_ConcurrentUpsertsCreateOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	athletes := memory.NewAthleteRepository()
	reconciler := NewReconciler(athletes, memory.NewTeamRepository(), memory.NewLeagueRepository(), nil, logging.NewNop())
	url := site + "/wiki/Traded_Player"

	const callers = 10
	outcomes := make([]Outcome, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, outcome, err := reconciler.UpsertAthlete(ctx, url, entity.Facts{TeamID: int64(i + 1)})
			if err != nil {
				t.Errorf("upsert %d: %v", i, err)
			}
			outcomes[i] = outcome
		}()
	}
	wg.Wait()

	created := 0
	for _, outcome := range outcomes {
		if outcome == OutcomeCreated {
			created++
		}
	}
	require.Equal(t, 1, created)

	items, err := athletes.ListAfter(ctx, 0, 0, athlete.ListFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestReconciler_DuplicateKeyIsSkipped(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := athletemock.NewRepository(t)
	url := site + "/wiki/Joe_Smith"
	repo.On("FindByCanonicalURL", mock.Anything, url).Return(athlete.Athlete{}, false, nil).Once()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*athlete.Athlete")).Return(entity.ErrDuplicateKey).Once()

	reconciler := NewReconciler(repo, nil, nil, nil, logging.NewNop())
	_, outcome, err := reconciler.UpsertAthlete(ctx, url, entity.Facts{Name: "Joe Smith"})
	require.NoError(t, err)
	require.Equal(t, OutcomeSkipped, outcome)
}

func TestReconciler_FieldCoercionRetriesOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	url := site + "/wiki/Joe_Smith"
	sheet := entity.NewFactSheet()
	sheet.Set("Height", "1.80 m")
	coercion := &entity.FieldCoercionError{Column: athlete.ColumnAdditionalInfo, Err: errors.New("invalid input syntax")}

	t.Run("second save succeeds with blob reset", func(t *testing.T) {
		t.Parallel()

		repo := athletemock.NewRepository(t)
		repo.On("FindByCanonicalURL", mock.Anything, url).Return(athlete.Athlete{}, false, nil).Once()
		repo.On("Create", mock.Anything, mock.MatchedBy(func(a *athlete.Athlete) bool { return a.AdditionalInfo != nil })).
			Return(coercion).Once()
		repo.On("Create", mock.Anything, mock.MatchedBy(func(a *athlete.Athlete) bool { return a.AdditionalInfo == nil })).
			Return(nil).Once()

		reconciler := NewReconciler(repo, nil, nil, nil, logging.NewNop())
		stored, outcome, err := reconciler.UpsertAthlete(ctx, url, entity.Facts{Name: "Joe Smith", AdditionalInfo: sheet})
		require.NoError(t, err)
		require.Equal(t, OutcomeCreated, outcome)
		require.Nil(t, stored.AdditionalInfo)
	})

	t.Run("second failure propagates", func(t *testing.T) {
		t.Parallel()

		repo := athletemock.NewRepository(t)
		repo.On("FindByCanonicalURL", mock.Anything, url).Return(athlete.Athlete{ID: 4, CanonicalURL: url}, true, nil).Once()
		repo.On("Update", mock.Anything, mock.AnythingOfType("*athlete.Athlete")).Return(coercion).Twice()

		reconciler := NewReconciler(repo, nil, nil, nil, logging.NewNop())
		_, _, err := reconciler.UpsertAthlete(ctx, url, entity.Facts{Name: "Joe Smith", AdditionalInfo: sheet})
		_, ok := entity.IsFieldCoercion(err)
		require.True(t, ok, "got %v", err)
	})
}

func TestReconciler_RejectsInvalidRecord(t *testing.T) {
	t.Parallel()

	reconciler := NewReconciler(memory.NewAthleteRepository(), nil, nil, nil, logging.NewNop())
	_, _, err := reconciler.UpsertAthlete(context.Background(), site+"/wiki/X_Y", entity.Facts{Gender: "unknown"})
	require.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
}
