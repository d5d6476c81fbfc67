package yahoo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// PlayerAnalysis is one player's pre-draft analysis line.
type PlayerAnalysis struct {
	PlayerKey               string
	FullName                string
	EditorialTeam           string
	DisplayPosition         string
	AveragePick             string
	AverageRound            string
	PercentDrafted          string
	ProjectedAuctionValue   string
	AverageAuctionCost      string
	SeasonRank              string
	PositionRank            string
	PreseasonAveragePick    string
	PreseasonPercentDrafted string
}

// Values returns the analysis line in sheet column order.
func (p PlayerAnalysis) Values() []interface{} {
	return []interface{}{
		p.PlayerKey, p.FullName, p.EditorialTeam, p.DisplayPosition,
		p.AveragePick, p.AverageRound, p.PercentDrafted,
		p.ProjectedAuctionValue, p.AverageAuctionCost,
		p.SeasonRank, p.PositionRank,
		p.PreseasonAveragePick, p.PreseasonPercentDrafted,
	}
}

const (
	analysisBatchSize = 25  // Yahoo caps player pages at 25
	analysisMaxPages  = 40  // 1000 players
)

// DraftAnalysis fetches pre-draft analysis (ADP, auction values, ranks) for
// the league's player pool, paging until the API runs dry.
func (c *Client) DraftAnalysis(ctx context.Context) ([]PlayerAnalysis, error) {
	key, err := c.GameKey(ctx)
	if err != nil {
		return nil, err
	}

	var all []PlayerAnalysis
	for page := 0; page < analysisMaxPages; page++ {
		start := page * analysisBatchSize
		path := fmt.Sprintf(
			"/league/%s.l.%s/players;position=ALL;start=%d;count=%d;sort=average_pick;out=auction_values,ranks;ranks=season;ranks_by_position=season/draft_analysis",
			key, c.leagueID, start, analysisBatchSize)

		data, err := c.get(ctx, path)
		if err != nil {
			if page == 0 {
				return nil, fmt.Errorf("failed to get draft analysis: %w", err)
			}
			log.Warn().Err(err).Int("start", start).Msg("Draft analysis page failed; keeping earlier pages")
			break
		}

		players := ensureList(dig(data, "fantasy_content", "league", "players", "player"))
		if len(players) == 0 {
			players = ensureList(dig(data, "fantasy_content", "game", "players", "player"))
		}
		if len(players) == 0 {
			break
		}

		for _, player := range players {
			all = append(all, extractPlayerAnalysis(player))
		}
		log.Debug().
			Int("page", page+1).
			Int("batch", len(players)).
			Int("total", len(all)).
			Msg("Retrieved draft analysis page")

		if len(players) < analysisBatchSize {
			break
		}
	}

	return all, nil
}

func extractPlayerAnalysis(player map[string]interface{}) PlayerAnalysis {
	analysis := digMap(player, "draft_analysis")
	seasonRank, positionRank := extractRanks(player)

	return PlayerAnalysis{
		PlayerKey:               scalar(player["player_key"]),
		FullName:                scalar(dig(player, "name", "full")),
		EditorialTeam:           scalar(player["editorial_team_abbr"]),
		DisplayPosition:         scalar(player["display_position"]),
		AveragePick:             scalar(analysis["average_pick"]),
		AverageRound:            scalar(analysis["average_round"]),
		PercentDrafted:          scalar(analysis["percent_drafted"]),
		ProjectedAuctionValue:   scalar(player["projected_auction_value"]),
		AverageAuctionCost:      scalar(player["average_auction_cost"]),
		SeasonRank:              seasonRank,
		PositionRank:            positionRank,
		PreseasonAveragePick:    scalar(analysis["preseason_average_pick"]),
		PreseasonPercentDrafted: scalar(analysis["preseason_percent_drafted"]),
	}
}

// extractRanks pulls the season overall and positional rank values. Ranks
// with a rank_position are positional; the rest are overall.
func extractRanks(player map[string]interface{}) (season, position string) {
	for _, rank := range ensureList(dig(player, "player_ranks", "player_rank")) {
		if scalar(rank["rank_type"]) != "S" {
			continue
		}
		if scalar(rank["rank_position"]) == "" {
			if season == "" {
				season = scalar(rank["rank_value"])
			}
		} else if position == "" {
			position = scalar(rank["rank_value"])
		}
	}
	return season, position
}
