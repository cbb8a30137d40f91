package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mikekeda/athletes/internal/domain/athlete"
	"github.com/mikekeda/athletes/internal/domain/entity"
	"github.com/mikekeda/athletes/internal/domain/team"
)

func TestAthleteRepository_ConcurrentCreateSameURL(t *testing.T) {
	t.Parallel()

	repo := NewAthleteRepository()
	const workers = 8

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		created    int
		duplicates int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a := athlete.Athlete{CanonicalURL: "https://en.wikipedia.org/wiki/Joe_Root", Name: "Joe Root"}
			err := repo.Create(context.Background(), &a)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, entity.ErrDuplicateKey):
				duplicates++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, created)
	require.Equal(t, workers-1, duplicates)
}

func TestAthleteRepository_UpdateKeepsStoredValues(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewAthleteRepository()
	a := athlete.Athlete{CanonicalURL: "https://en.wikipedia.org/wiki/Joe_Root", Name: "Joe Root", LocationMarket: "GB"}
	require.NoError(t, repo.Create(ctx, &a))

	stale := athlete.Athlete{ID: a.ID, Name: "Joseph Root", LocationMarket: "US", TeamName: "Yorkshire"}
	require.NoError(t, repo.Update(ctx, &stale))

	got, ok, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Joe Root", got.Name)
	require.Equal(t, "GB", got.LocationMarket)
	require.Equal(t, "Yorkshire", got.TeamName)
}

func TestAthleteRepository_ListAfterFiltersEmptyBlob(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewAthleteRepository()
	for _, url := range []string{"a", "b", "c"} {
		a := athlete.Athlete{CanonicalURL: "https://en.wikipedia.org/wiki/" + url, Name: url}
		require.NoError(t, repo.Create(ctx, &a))
	}
	synced := athlete.Athlete{ID: 2, TwitterInfo: map[string]any{"id": "1"}}
	require.NoError(t, repo.UpdateSocial(ctx, &synced))

	items, err := repo.ListAfter(ctx, 0, 10, athlete.ListFilter{EmptyBlob: athlete.ColumnTwitterInfo})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, int64(1), items[0].ID)
	require.Equal(t, int64(3), items[1].ID)

	_, err = repo.ListAfter(ctx, 0, 10, athlete.ListFilter{EmptyBlob: "bogus"})
	require.Error(t, err)
}

func TestTeamRepository_SetLeagueFirstWriterWins(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewTeamRepository()
	tm := team.Team{CanonicalURL: "https://en.wikipedia.org/wiki/Leeds_Rhinos", Name: "Leeds Rhinos"}
	require.NoError(t, repo.Create(ctx, &tm))

	linked, err := repo.SetLeague(ctx, tm.ID, 10)
	require.NoError(t, err)
	require.True(t, linked)

	linked, err = repo.SetLeague(ctx, tm.ID, 11)
	require.NoError(t, err)
	require.False(t, linked)

	got, _, _ := repo.GetByID(ctx, tm.ID)
	require.Equal(t, int64(10), got.LeagueID)
}

func TestTeamRepository_ListWithLeagueFact(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewTeamRepository()
	sheet := entity.NewFactSheet()
	sheet.Set("League", "Super League")

	withLeague := team.Team{CanonicalURL: "https://en.wikipedia.org/wiki/A", Name: "A", AdditionalInfo: sheet}
	without := team.Team{CanonicalURL: "https://en.wikipedia.org/wiki/B", Name: "B"}
	require.NoError(t, repo.Create(ctx, &without))
	require.NoError(t, repo.Create(ctx, &withLeague))

	items, err := repo.ListWithLeagueFact(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, withLeague.ID, items[0].ID)
}
