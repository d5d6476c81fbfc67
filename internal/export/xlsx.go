package export

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/johanneskarlsson/yahoo-fantasy-xlsx/internal/draft"
	"github.com/johanneskarlsson/yahoo-fantasy-xlsx/internal/yahoo"
)

// projectionRows is how many TOTAL formulas each projection sheet carries;
// players are pasted in later by hand, so the formulas are pre-laid.
const projectionRows = 1500

// XlsxExporter writes the canonical .xlsx workbook through excelize. Every
// operation is a full open/mutate/save cycle; the file is the source of
// truth between runs.
type XlsxExporter struct {
	path string
}

// NewXlsxExporter opens or creates the canonical workbook. A missing file
// is created with all base sheets; an existing one gets missing sheets
// added.
func NewXlsxExporter(path string) (*XlsxExporter, error) {
	path = CanonicalXlsxName(path)
	e := &XlsxExporter{path: path}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := e.createBase(); err != nil {
			return nil, err
		}
		log.Debug().Str("file", path).Msg("Created workbook with base sheets")
	} else if err := e.verifySheets(); err != nil {
		return nil, err
	}
	return e, nil
}

// Path returns the workbook location.
func (e *XlsxExporter) Path() string {
	return e.path
}

// CanonicalXlsxName normalizes a configured workbook filename: a .numbers
// package name maps to its .xlsx canonical, anything without a recognized
// extension gets .xlsx appended.
func CanonicalXlsxName(path string) string {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".numbers") {
		base := path[:len(path)-len(".numbers")]
		if base == "" {
			base = "fantasy_draft_data"
		}
		return base + ".xlsx"
	}
	if !strings.HasSuffix(lower, ".xlsx") {
		return path + ".xlsx"
	}
	return path
}

func (e *XlsxExporter) createBase() error {
	f := excelize.NewFile()
	defer f.Close()

	for _, sheet := range BaseSheets {
		if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet.Name, err)
		}
		if err := writeHeaders(f, sheet.Name, sheet.Headers); err != nil {
			return err
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}
	if err := f.SaveAs(e.path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (e *XlsxExporter) verifySheets() error {
	return e.withFile(func(f *excelize.File) error {
		changed := false
		for _, sheet := range BaseSheets {
			if idx, _ := f.GetSheetIndex(sheet.Name); idx >= 0 {
				continue
			}
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return fmt.Errorf("failed to add sheet %s: %w", sheet.Name, err)
			}
			if err := writeHeaders(f, sheet.Name, sheet.Headers); err != nil {
				return err
			}
			changed = true
		}
		if !changed {
			return errSkipSave
		}
		return nil
	})
}

var errSkipSave = fmt.Errorf("no changes")

// withFile opens the workbook, applies fn and saves unless fn reports
// errSkipSave.
func (e *XlsxExporter) withFile(fn func(f *excelize.File) error) error {
	f, err := excelize.OpenFile(e.path)
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if err := fn(f); err != nil {
		if err == errSkipSave {
			return nil
		}
		return err
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeHeaders(f *excelize.File, sheet string, headers []string) error {
	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &row); err != nil {
		return fmt.Errorf("failed to write headers for %s: %w", sheet, err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return fmt.Errorf("failed to compute header range: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style headers for %s: %w", sheet, err)
	}
	return nil
}

// AppendPicks adds rows to Draft Results after the last used row. Blank
// manager columns get the Teams lookup formula instead of a literal.
func (e *XlsxExporter) AppendPicks(ctx context.Context, rows []draft.Row) error {
	if len(rows) == 0 {
		return nil
	}
	return e.withFile(func(f *excelize.File) error {
		existing, err := f.GetRows(SheetDraftResults)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", SheetDraftResults, err)
		}
		start := len(existing) + 1

		for i, row := range rows {
			target := start + i
			values := []interface{}{row.Round, row.Pick, row.Player, row.TeamKey}
			cell, err := excelize.CoordinatesToCellName(1, target)
			if err != nil {
				return fmt.Errorf("failed to compute row cell: %w", err)
			}
			if err := f.SetSheetRow(SheetDraftResults, cell, &values); err != nil {
				return fmt.Errorf("failed to write pick row %d: %w", target, err)
			}
			managerCell := "E" + strconv.Itoa(target)
			if row.Manager == "" {
				if err := f.SetCellFormula(SheetDraftResults, managerCell, ManagerLookupFormula(target)); err != nil {
					return fmt.Errorf("failed to write manager formula: %w", err)
				}
			} else if err := f.SetCellValue(SheetDraftResults, managerCell, row.Manager); err != nil {
				return fmt.Errorf("failed to write manager: %w", err)
			}
		}
		log.Debug().
			Int("rows", len(rows)).
			Int("start_row", start).
			Msg("Appended picks to workbook")
		return nil
	})
}

// Timestamp refreshes the last-updated stamp on Draft Results.
func (e *XlsxExporter) Timestamp(ctx context.Context) error {
	return e.withFile(func(f *excelize.File) error {
		stamp := "Last updated: " + time.Now().Format("2006-01-02 15:04:05")
		if err := f.SetCellValue(SheetDraftResults, timestampCell, stamp); err != nil {
			return fmt.Errorf("failed to write timestamp: %w", err)
		}
		return nil
	})
}

// UpdateTeams rewrites the Teams sheet from the league's current roster of
// franchises.
func (e *XlsxExporter) UpdateTeams(teams []yahoo.Team) error {
	if len(teams) == 0 {
		return nil
	}
	return e.withFile(func(f *excelize.File) error {
		if err := resetSheet(f, SheetTeams); err != nil {
			return err
		}
		for i, team := range teams {
			values := []interface{}{team.TeamKey, team.TeamID, team.Name, team.Manager}
			cell := "A" + strconv.Itoa(i+2)
			if err := f.SetSheetRow(SheetTeams, cell, &values); err != nil {
				return fmt.Errorf("failed to write team row: %w", err)
			}
		}
		return nil
	})
}

// UpdateLeagueSettings rewrites the League Settings sheet as grouped
// sections: identity fields, roster positions, skater stats, goalie stats.
func (e *XlsxExporter) UpdateLeagueSettings(ls *yahoo.LeagueSettings) error {
	if ls == nil {
		return nil
	}
	return e.withFile(func(f *excelize.File) error {
		if err := resetSheet(f, SheetLeagueSettings); err != nil {
			return err
		}

		rows := [][]interface{}{
			{"League Name", ls.LeagueName},
			{"League Type", ls.DraftType},
			{"Scoring Type", ls.ScoringType},
			{"Max Teams", ls.MaxTeams},
			{"Playoff Teams", ls.NumPlayoffTeams},
			{"Playoff Start Week", ls.PlayoffStartWeek},
			{"", ""},
			{"ROSTER POSITIONS", "COUNT"},
		}
		for _, pos := range ls.RosterPositions {
			rows = append(rows, []interface{}{pos.Position, pos.Count})
		}
		rows = append(rows, []interface{}{"", ""}, []interface{}{"SKATER STATS", "VALUE"})
		for _, stat := range ls.StatsFor("P") {
			rows = append(rows, []interface{}{stat.Label(), stat.Value})
		}
		rows = append(rows, []interface{}{"", ""}, []interface{}{"GOALIE STATS", "VALUE"})
		for _, stat := range ls.StatsFor("G") {
			rows = append(rows, []interface{}{stat.Label(), stat.Value})
		}

		for i := range rows {
			cell := "A" + strconv.Itoa(i+2)
			if err := f.SetSheetRow(SheetLeagueSettings, cell, &rows[i]); err != nil {
				return fmt.Errorf("failed to write settings row: %w", err)
			}
		}
		return nil
	})
}

// UpdateDraftAnalysis rewrites the Pre-Draft Analysis sheet.
func (e *XlsxExporter) UpdateDraftAnalysis(players []yahoo.PlayerAnalysis) error {
	if len(players) == 0 {
		return nil
	}
	return e.withFile(func(f *excelize.File) error {
		if err := resetSheet(f, SheetDraftAnalysis); err != nil {
			return err
		}
		for i, player := range players {
			values := player.Values()
			cell := "A" + strconv.Itoa(i+2)
			if err := f.SetSheetRow(SheetDraftAnalysis, cell, &values); err != nil {
				return fmt.Errorf("failed to write analysis row: %w", err)
			}
		}
		return nil
	})
}

// SetupProjectionSheets builds the Skater/Goalie Projections sheets with a
// TOTAL formula per row weighting each stat by its league modifier.
func (e *XlsxExporter) SetupProjectionSheets(ls *yahoo.LeagueSettings) error {
	if ls == nil {
		return nil
	}
	return e.withFile(func(f *excelize.File) error {
		for _, group := range []struct {
			sheet        string
			positionType string
		}{
			{SheetSkaterProjections, "P"},
			{SheetGoalieProjections, "G"},
		} {
			stats := ls.StatsFor(group.positionType)
			if len(stats) == 0 {
				continue
			}

			labels := make([]string, len(stats))
			values := make(map[string]float64, len(stats))
			for i, stat := range stats {
				labels[i] = stat.Label()
				if v, err := strconv.ParseFloat(stat.Value, 64); err == nil {
					values[stat.Label()] = v
				}
			}

			if err := resetSheet(f, group.sheet); err != nil {
				return err
			}
			headers := append(append([]string{"playerName"}, labels...), "TOTAL")
			if err := writeHeaders(f, group.sheet, headers); err != nil {
				return err
			}

			totalCol := statColumn(len(labels)) // one past the last stat
			for row := 2; row < projectionRows+2; row++ {
				formula := TotalFormula(row, labels, values)
				if formula == "" {
					continue
				}
				if err := f.SetCellFormula(group.sheet, totalCol+strconv.Itoa(row), formula); err != nil {
					return fmt.Errorf("failed to write TOTAL formula: %w", err)
				}
			}
		}
		return nil
	})
}

// CreateDraftBoard fills the Draft Board with formulas mirroring Pre-Draft
// Analysis and resolving drafted-by and projected points via lookups.
func (e *XlsxExporter) CreateDraftBoard(ls *yahoo.LeagueSettings) error {
	return e.withFile(func(f *excelize.File) error {
		analysisRows, err := f.GetRows(SheetDraftAnalysis)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", SheetDraftAnalysis, err)
		}
		if err := resetSheet(f, SheetDraftBoard); err != nil {
			return err
		}

		skaterStats := len(ls.StatsFor("P"))
		goalieStats := len(ls.StatsFor("G"))

		for r := 2; r <= len(analysisRows); r++ {
			if len(analysisRows[r-1]) == 0 || analysisRows[r-1][0] == "" {
				continue
			}
			row := strconv.Itoa(r)
			if err := f.SetCellFormula(SheetDraftBoard, "A"+row, DraftedByFormula(r)); err != nil {
				return fmt.Errorf("failed to write draftedBy formula: %w", err)
			}
			for _, col := range []string{"B", "C", "D", "E"} {
				if err := f.SetCellFormula(SheetDraftBoard, col+row, AnalysisRefFormula(col, r)); err != nil {
					return fmt.Errorf("failed to write analysis reference: %w", err)
				}
			}
			if err := f.SetCellFormula(SheetDraftBoard, "F"+row, ProjectedPointsFormula(r, skaterStats, goalieStats)); err != nil {
				return fmt.Errorf("failed to write projected points formula: %w", err)
			}
		}
		return nil
	})
}

// resetSheet clears a sheet back to its header row, creating it (with
// headers, when it is a base sheet) if missing.
func resetSheet(f *excelize.File, sheet string) error {
	idx, _ := f.GetSheetIndex(sheet)
	if idx >= 0 {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", sheet, err)
		}
		for r := len(rows); r >= 2; r-- {
			if err := f.RemoveRow(sheet, r); err != nil {
				return fmt.Errorf("failed to clear %s row %d: %w", sheet, r, err)
			}
		}
		return nil
	}

	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	for _, def := range BaseSheets {
		if def.Name == sheet {
			return writeHeaders(f, sheet, def.Headers)
		}
	}
	return nil
}
