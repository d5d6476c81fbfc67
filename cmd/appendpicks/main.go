// Command appendpicks appends clearly marked test picks to the Draft
// Results sheet. It is a smoke test for the export path: run it against a
// workbook produced by setup and check that rows, manager lookups and the
// timestamp land where the monitor would put them.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/johanneskarlsson/yahoo-fantasy-xlsx/internal/app"
	"github.com/johanneskarlsson/yahoo-fantasy-xlsx/internal/draft"
	"github.com/johanneskarlsson/yahoo-fantasy-xlsx/internal/export"
)

var defaultPlayerPool = []string{
	"Connor McDavid",
	"Nathan MacKinnon",
	"Cale Makar",
	"Leon Draisaitl",
	"David Pastrnak",
	"Nikita Kucherov",
	"Mikko Rantanen",
	"Auston Matthews",
	"Jack Hughes",
	"Matthew Tkachuk",
}

func main() {
	app.SetupEnvironment()

	var (
		file    = flag.String("file", app.GetEnvWithDefault("EXCEL_FILENAME", "fantasy_draft_data.xlsx"), "workbook filename (must already exist)")
		players = flag.Int("players", 2, "number of sample players to append (ignored with -names)")
		names   = flag.String("names", "", "comma-separated player names, overrides -players")
		manager = flag.String("manager", "Test Manager", "manager value for the appended rows")
		teamID  = flag.String("team-id", "teamTEST", "teamId value for the appended rows")
		round   = flag.Int("round", 0, "force round number (0 auto-detects)")
		dryRun  = flag.Bool("dry-run", false, "print planned rows without writing")
	)
	flag.Parse()

	path := export.CanonicalXlsxName(*file)
	if path != *file {
		log.Warn().Str("given", *file).Str("using", path).Msg("Normalized workbook filename")
	}
	if _, err := os.Stat(path); err != nil {
		log.Fatal().Str("file", path).Msg("Workbook not found. Run setup first.")
	}

	chosen := splitNames(*names)
	if len(chosen) == 0 {
		if *players <= 0 {
			log.Fatal().Msg("-players must be > 0, or provide -names")
		}
		n := *players
		if n > len(defaultPlayerPool) {
			log.Warn().Int("requested", *players).Int("available", len(defaultPlayerPool)).Msg("Player pool exhausted")
			n = len(defaultPlayerPool)
		}
		chosen = defaultPlayerPool[:n]
	}

	curRound, nextPick, err := nextRoundAndPick(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to inspect draft results")
	}
	if *round > 0 {
		curRound = *round
	}

	rows := make([]draft.Row, len(chosen))
	for i, name := range chosen {
		rows[i] = draft.Row{
			Round:   strconv.Itoa(curRound),
			Pick:    nextPick + i,
			Player:  name,
			TeamKey: *teamID,
			Manager: *manager,
		}
	}

	for _, r := range rows {
		log.Info().Str("round", r.Round).Int("pick", r.Pick).Str("player", r.Player).Msg("Planned pick")
	}
	if *dryRun {
		log.Info().Msg("Dry run enabled; no rows appended.")
		return
	}

	exporter, err := export.NewXlsxExporter(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open workbook")
	}
	ctx := context.Background()
	if err := exporter.AppendPicks(ctx, rows); err != nil {
		log.Fatal().Err(err).Msg("Failed to append picks")
	}
	if err := exporter.Timestamp(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to refresh timestamp")
	}
	log.Info().Int("picks", len(rows)).Str("file", path).Msg("Done")
}

func splitNames(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// nextRoundAndPick scans the Draft Results sheet for the highest
// round/pick pair already present. An empty sheet yields (1, 1).
func nextRoundAndPick(path string) (int, int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(export.SheetDraftResults)
	if err != nil {
		return 1, 1, nil
	}

	lastRound, lastPick := 1, 0
	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue
		}
		rnd, err1 := strconv.Atoi(strings.TrimSpace(row[0]))
		pck, err2 := strconv.Atoi(strings.TrimSpace(row[1]))
		if err1 != nil || err2 != nil {
			continue
		}
		if rnd > lastRound || (rnd == lastRound && pck > lastPick) {
			lastRound, lastPick = rnd, pck
		}
	}
	return lastRound, lastPick + 1, nil
}
