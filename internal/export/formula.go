package export

import (
	"fmt"
	"strconv"
	"strings"
)

// ManagerLookupFormula resolves the manager column on Draft Results by
// matching the row's team identifier (column D) against the Teams sheet.
func ManagerLookupFormula(row int) string {
	return fmt.Sprintf(`=IFERROR(VLOOKUP(D%d,Teams!A:D,4,FALSE),"")`, row)
}

// TotalFormula builds the TOTAL column formula for one projection row:
// each stat column times its league scoring modifier, summed. statValues
// holds the modifier per stat label in column order starting at B.
// Returns "" when no stat carries a modifier.
func TotalFormula(row int, statLabels []string, statValues map[string]float64) string {
	var parts []string
	for i, label := range statLabels {
		value := statValues[label]
		if value == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s%d*%s", statColumn(i), row, trimFloat(value)))
	}
	if len(parts) == 0 {
		return ""
	}
	return "=" + strings.Join(parts, "+")
}

// statColumn maps a stat index to its sheet column (B onward; projection
// sheets never carry more than a handful of stats).
func statColumn(i int) string {
	return string(rune('B' + i))
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DraftedByFormula marks a Draft Board row with the drafting team: the
// player key (Pre-Draft Analysis column A) looked up against the pick rows.
func DraftedByFormula(row int) string {
	return fmt.Sprintf(`=IFERROR(VLOOKUP('Pre-Draft Analysis'!A%d,'Draft Results'!C:D,2,FALSE),"")`, row)
}

// AnalysisRefFormula mirrors a Pre-Draft Analysis cell onto the Draft Board.
func AnalysisRefFormula(column string, row int) string {
	return fmt.Sprintf("='Pre-Draft Analysis'!%s%d", column, row)
}

// ProjectedPointsFormula picks the goalie or skater projection total for a
// Draft Board row depending on the player's display position.
func ProjectedPointsFormula(row int, skaterStats, goalieStats int) string {
	// playerName column A, stats, then TOTAL.
	skaterTotal := statColumn(skaterStats) // TOTAL sits one past the last stat
	goalieTotal := statColumn(goalieStats)
	return fmt.Sprintf(
		`=IF('Pre-Draft Analysis'!D%d="G",IFERROR(VLOOKUP('Pre-Draft Analysis'!B%d,'Goalie Projections'!A:%s,%d,FALSE),""),IFERROR(VLOOKUP('Pre-Draft Analysis'!B%d,'Skater Projections'!A:%s,%d,FALSE),""))`,
		row, row, goalieTotal, goalieStats+2, row, skaterTotal, skaterStats+2)
}
