// Command setup prepares the draft workbook before draft day: it walks
// through Yahoo OAuth if needed, creates the xlsx workbook with all base
// sheets, and fills in league settings, teams, pre-draft analysis, the
// projection sheets and the draft board.
package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/johanneskarlsson/yahoo-fantasy-xlsx/internal/app"
	"github.com/johanneskarlsson/yahoo-fantasy-xlsx/internal/config"
	"github.com/johanneskarlsson/yahoo-fantasy-xlsx/internal/export"
	"github.com/johanneskarlsson/yahoo-fantasy-xlsx/internal/retry"
	"github.com/johanneskarlsson/yahoo-fantasy-xlsx/internal/yahoo"
)

func main() {
	app.SetupEnvironment()
	ctx := context.Background()

	client := app.InitializeYahooClient(ctx)

	filename := export.CanonicalXlsxName(app.GetEnvWithDefault("EXCEL_FILENAME", "fantasy_draft_data.xlsx"))
	exporter, err := export.NewXlsxExporter(filename)
	if err != nil {
		log.Fatal().Err(err).Str("file", filename).Msg("Failed to open workbook")
	}
	log.Info().Str("file", filename).Msg("Workbook ready")

	apiRetry := config.DefaultResilienceConfig.APIRequest

	settings, err := retry.WithRetry(ctx, apiRetry, func(ctx context.Context) (*yahoo.LeagueSettings, error) {
		return client.LeagueSettings(ctx)
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch league settings")
	}
	if err := exporter.UpdateLeagueSettings(settings); err != nil {
		log.Fatal().Err(err).Msg("Failed to write league settings")
	}
	log.Info().Str("league", settings.LeagueName).Msg("League settings written")

	teams, err := retry.WithRetry(ctx, apiRetry, func(ctx context.Context) ([]yahoo.Team, error) {
		return client.Teams(ctx)
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch teams")
	}
	if err := exporter.UpdateTeams(teams); err != nil {
		log.Fatal().Err(err).Msg("Failed to write teams")
	}
	log.Info().Int("teams", len(teams)).Msg("Teams written")

	analysis, err := retry.WithRetry(ctx, apiRetry, func(ctx context.Context) ([]yahoo.PlayerAnalysis, error) {
		return client.DraftAnalysis(ctx)
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch draft analysis")
	}
	if err := exporter.UpdateDraftAnalysis(analysis); err != nil {
		log.Fatal().Err(err).Msg("Failed to write draft analysis")
	}
	log.Info().Int("players", len(analysis)).Msg("Pre-draft analysis written")

	if err := exporter.SetupProjectionSheets(settings); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up projection sheets")
	}
	if err := exporter.CreateDraftBoard(settings); err != nil {
		log.Fatal().Err(err).Msg("Failed to create draft board")
	}

	log.Info().Str("file", filename).Msg("Setup complete")
}
