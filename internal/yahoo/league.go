package yahoo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Team is one franchise in the league.
type Team struct {
	TeamKey string
	TeamID  string
	Name    string
	Manager string
}

// RosterPosition is one slot definition from the league settings.
type RosterPosition struct {
	Position string
	Count    string
}

// StatCategory is one scored stat with its modifier value.
type StatCategory struct {
	StatID       string
	Name         string
	DisplayName  string
	PositionType string // "P" skaters, "G" goalies
	Value        string
}

// Label returns the display name, falling back to the internal name.
func (s StatCategory) Label() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return s.Name
}

// LeagueSettings is the subset of league configuration the workbook shows.
type LeagueSettings struct {
	LeagueName       string
	DraftType        string
	ScoringType      string
	MaxTeams         string
	NumPlayoffTeams  string
	PlayoffStartWeek string
	WaiverType       string
	TradeEndDate     string
	RosterPositions  []RosterPosition
	StatCategories   []StatCategory
}

// StatsFor returns the stat categories for one position type, in order.
func (ls LeagueSettings) StatsFor(positionType string) []StatCategory {
	var out []StatCategory
	for _, stat := range ls.StatCategories {
		if stat.PositionType == positionType {
			out = append(out, stat)
		}
	}
	return out
}

// Teams fetches the league's teams with their manager nicknames.
func (c *Client) Teams(ctx context.Context) ([]Team, error) {
	path, err := c.leaguePath(ctx, "/teams")
	if err != nil {
		return nil, err
	}

	data, err := c.get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to get teams: %w", err)
	}

	var teams []Team
	for _, team := range ensureList(dig(data, "fantasy_content", "league", "teams", "team")) {
		managers := ensureList(dig(team, "managers", "manager"))
		manager := ""
		if len(managers) > 0 {
			manager = scalar(managers[0]["nickname"])
		}
		teams = append(teams, Team{
			TeamKey: scalar(team["team_key"]),
			TeamID:  scalar(team["team_id"]),
			Name:    scalar(team["name"]),
			Manager: manager,
		})
	}

	log.Debug().Int("count", len(teams)).Msg("Retrieved teams")
	return teams, nil
}

// LeagueSettings fetches league configuration: identity fields, roster
// positions and scored stat categories with their modifier values.
func (c *Client) LeagueSettings(ctx context.Context) (*LeagueSettings, error) {
	path, err := c.leaguePath(ctx, "/settings")
	if err != nil {
		return nil, err
	}

	data, err := c.get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to get league settings: %w", err)
	}

	league := digMap(data, "fantasy_content", "league")
	settings := digMap(league, "settings")
	if settings == nil {
		return nil, fmt.Errorf("settings missing from response")
	}

	ls := &LeagueSettings{
		LeagueName:       scalar(league["name"]),
		DraftType:        scalar(settings["draft_type"]),
		ScoringType:      scalar(settings["scoring_type"]),
		MaxTeams:         scalar(settings["max_teams"]),
		NumPlayoffTeams:  scalar(settings["num_playoff_teams"]),
		PlayoffStartWeek: scalar(settings["playoff_start_week"]),
		WaiverType:       scalar(settings["waiver_type"]),
		TradeEndDate:     scalar(settings["trade_end_date"]),
	}

	for _, pos := range ensureList(dig(settings, "roster_positions", "roster_position")) {
		ls.RosterPositions = append(ls.RosterPositions, RosterPosition{
			Position: scalar(pos["position"]),
			Count:    scalar(pos["count"]),
		})
	}

	modifiers := statModifierValues(settings)
	for _, stat := range ensureList(dig(settings, "stat_categories", "stats", "stat")) {
		id := scalar(stat["stat_id"])
		ls.StatCategories = append(ls.StatCategories, StatCategory{
			StatID:       id,
			Name:         scalar(stat["name"]),
			DisplayName:  scalar(stat["display_name"]),
			PositionType: scalar(stat["position_type"]),
			Value:        modifiers[id],
		})
	}

	log.Debug().
		Str("league", ls.LeagueName).
		Int("roster_positions", len(ls.RosterPositions)).
		Int("stat_categories", len(ls.StatCategories)).
		Msg("Retrieved league settings")
	return ls, nil
}

// statModifierValues maps stat_id to its scoring modifier.
func statModifierValues(settings map[string]interface{}) map[string]string {
	values := make(map[string]string)
	for _, stat := range ensureList(dig(settings, "stat_modifiers", "stats", "stat")) {
		values[scalar(stat["stat_id"])] = scalar(stat["value"])
	}
	return values
}
