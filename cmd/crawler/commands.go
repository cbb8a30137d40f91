package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	sonic "github.com/bytedance/sonic"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/mikekeda/athletes/internal/app"
	"github.com/mikekeda/athletes/internal/infrastructure/jobqueue"
	"github.com/mikekeda/athletes/internal/platform/logging"
	"github.com/mikekeda/athletes/internal/usecase"
)

type runtime struct {
	components *app.Components
	logger     *logging.Logger
}

type buildFunc func(ctx context.Context, verbose bool) (*runtime, error)

func newRootCommand(build buildFunc) *cobra.Command {
	var verbose bool
	var rt *runtime

	root := &cobra.Command{
		Use:           "crawler",
		Short:         "Crawl wiki team and league pages into the athletes store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			rt, err = build(cmd.Context(), verbose)
			return err
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if rt == nil {
				return nil
			}
			_ = rt.logger.Sync()
			return rt.components.Close()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	get := func() *runtime { return rt }
	root.AddCommand(
		newCrawlCommand(get),
		newEnrichCommand(get),
		newLinkLeaguesCommand(get),
		newSyncCommand(get),
	)
	return root
}

func newCrawlCommand(rt func() *runtime) *cobra.Command {
	crawl := &cobra.Command{Use: "crawl", Short: "Crawl a team or league page"}

	var team usecase.CrawlTeamInput
	teamCmd := &cobra.Command{
		Use:   "team <url>",
		Short: "Parse a team roster and upsert its athletes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			team.URL = args[0]
			result, err := rt().components.Orchestrator.RunCrawlTeam(cmd.Context(), usecase.CrawlTeamJob{CrawlTeamInput: team})
			if errors.Is(err, usecase.ErrStructuralMismatch) {
				fmt.Fprintf(cmd.OutOrStdout(), "nothing parsed: %v\n", err)
				return nil
			}
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result)
		},
	}
	teamCmd.Flags().StringVar(&team.Category, "category", "", "sport category override")
	teamCmd.Flags().StringVar(&team.Gender, "gender", "", "male or female")
	teamCmd.Flags().StringVar(&team.LocationMarket, "market", "", "two letter market code")
	teamCmd.Flags().Int64Var(&team.LeagueID, "league-id", 0, "league to attach the team to")
	teamCmd.Flags().BoolVar(&team.SkipErrors, "skip-errors", false, "treat unavailable or unparseable pages as empty")

	var league usecase.CrawlLeagueInput
	leagueCmd := &cobra.Command{
		Use:   "league <url>",
		Short: "Crawl every team linked from a league page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			league.URL = args[0]
			result, err := rt().components.Orchestrator.RunCrawlLeague(cmd.Context(), usecase.CrawlLeagueJob{CrawlLeagueInput: league})
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result)
		},
	}
	leagueCmd.Flags().StringVar(&league.Category, "category", "", "sport category override")
	leagueCmd.Flags().StringVar(&league.Gender, "gender", "", "male or female")
	leagueCmd.Flags().StringVar(&league.LocationMarket, "market", "", "two letter market code")
	leagueCmd.Flags().StringVar(&league.Selector, "selector", "", "CSS selector for team links")

	crawl.AddCommand(teamCmd, leagueCmd)
	return crawl
}

func newEnrichCommand(rt func() *runtime) *cobra.Command {
	enrich := &cobra.Command{Use: "enrich", Short: "Refresh stored records from their pages"}
	enrich.AddCommand(&cobra.Command{
		Use:   "athlete <url>",
		Short: "Re-read one athlete page and fill missing fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := rt().components.Orchestrator.RunEnrichAthlete(cmd.Context(), usecase.EnrichAthleteJob{
				EnrichAthleteInput: usecase.EnrichAthleteInput{URL: args[0]},
			})
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result)
		},
	})
	return enrich
}

func newLinkLeaguesCommand(rt func() *runtime) *cobra.Command {
	var input usecase.LinkLeaguesInput
	cmd := &cobra.Command{
		Use:   "link-leagues",
		Short: "Create leagues from team cards and link unassigned teams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := rt().components.Orchestrator.RunLinkLeagues(cmd.Context(), usecase.LinkLeaguesJob{LinkLeaguesInput: input})
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().Int64Var(&input.AfterID, "after", 0, "start after this team id")
	cmd.Flags().IntVar(&input.Limit, "limit", 0, "teams per page (0 uses the configured batch size)")
	return cmd
}

func newSyncCommand(rt func() *runtime) *cobra.Command {
	var input usecase.SocialSyncInput
	cmd := &cobra.Command{
		Use:       "sync <twitter|youtube>",
		Short:     "Look up or refresh social profiles",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{usecase.NetworkTwitter, usecase.NetworkYouTube},
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := rt().components.Orchestrator.RunSocialSync(cmd.Context(), args[0], usecase.SocialSyncJob{SocialSyncInput: input})
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&input.Mode, "mode", usecase.SyncModePending, "pending or refresh")
	cmd.Flags().Int64Var(&input.AfterID, "after", 0, "start after this athlete id")
	cmd.Flags().IntVar(&input.Limit, "limit", 0, "athletes per page (0 uses the configured batch size)")
	return cmd
}

func printResult(w io.Writer, result any) error {
	out, err := sonic.ConfigStd.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// registerInlineJobs maps every internal job path to the orchestrator so
// enqueued work runs synchronously in the CLI process.
func registerInlineJobs(queue *jobqueue.InlineJobQueue, orchestrator *usecase.JobOrchestratorService) {
	queue.Register(usecase.JobPath(usecase.JobCrawlTeam), inlineJob(orchestrator.RunCrawlTeam))
	queue.Register(usecase.JobPath(usecase.JobCrawlLeague), inlineJob(orchestrator.RunCrawlLeague))
	queue.Register(usecase.JobPath(usecase.JobEnrichAthlete), inlineJob(orchestrator.RunEnrichAthlete))
	queue.Register(usecase.JobPath(usecase.JobLinkLeagues), inlineJob(orchestrator.RunLinkLeagues))
	queue.Register(usecase.JobPath(usecase.JobSyncTwitter), inlineJob(func(ctx context.Context, job usecase.SocialSyncJob) (usecase.SocialSyncResult, error) {
		return orchestrator.RunSocialSync(ctx, usecase.NetworkTwitter, job)
	}))
	queue.Register(usecase.JobPath(usecase.JobSyncYouTube), inlineJob(func(ctx context.Context, job usecase.SocialSyncJob) (usecase.SocialSyncResult, error) {
		return orchestrator.RunSocialSync(ctx, usecase.NetworkYouTube, job)
	}))
}

func inlineJob[J, R any](run func(context.Context, J) (R, error)) jobqueue.JobFunc {
	return func(ctx context.Context, body []byte) error {
		var job J
		if err := jsoniter.Unmarshal(body, &job); err != nil {
			return fmt.Errorf("decode job payload: %w", err)
		}
		_, err := run(ctx, job)
		return err
	}
}
