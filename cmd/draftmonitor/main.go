package main

import (
	"context"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/johanneskarlsson/yahoo-fantasy-xlsx/internal/app"
	"github.com/johanneskarlsson/yahoo-fantasy-xlsx/internal/draft"
	"github.com/johanneskarlsson/yahoo-fantasy-xlsx/internal/notify"
)

func main() {
	app.SetupEnvironment()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := app.InitializeYahooClient(ctx)
	sink := app.InitializeSink(ctx)
	notifier := app.InitializeNotificationClient()

	monitor := &draft.Monitor{
		Fetcher:  client,
		Sink:     sink,
		Interval: app.PollInterval(),
		Resolve: func(ctx context.Context, player string) string {
			// Draft results usually carry a player key, not a name.
			if !strings.Contains(player, ".p.") {
				return ""
			}
			return client.PlayerName(ctx, player)
		},
		Notify: func(ctx context.Context, rows []draft.Row) {
			picks := make([]notify.Pick, len(rows))
			for i, r := range rows {
				picks[i] = notify.Pick{Number: r.Pick, Player: r.Player, Team: r.TeamKey}
			}
			notifier.AnnouncePicks(ctx, picks)
		},
	}

	log.Info().Msg("Starting Yahoo fantasy draft monitor. Press Ctrl+C to stop.")
	monitor.Run(ctx)
}
