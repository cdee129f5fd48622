// Package summary produces the read-only reporting projections. Every
// projection is recomputed from current catalog rows on each call; no stored
// counter is trusted as a source of truth.
package summary

import (
	"context"

	"cricket-auction/internal/models"
	"cricket-auction/internal/store"
)

// Aggregator reads the catalog store and computes projections. It never
// mutates and takes no locks; a read racing a settlement sees either the
// pre- or post-commit state, both of which are internally consistent.
type Aggregator struct {
	Store *store.Store
}

// NewAggregator creates an aggregator over the given catalog store.
func NewAggregator(st *store.Store) *Aggregator {
	return &Aggregator{Store: st}
}

// BySet returns the players of one set in creation order, each annotated
// with the buying team's name when sold. An empty or unknown set yields an
// empty slice, not an error.
func (a *Aggregator) BySet(ctx context.Context, setID string) ([]models.Player, error) {
	players, err := a.Store.PlayersBySet(ctx, setID)
	if err != nil {
		return nil, err
	}

	teams, err := a.Store.ListTeams(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}
	for i := range players {
		if players[i].SoldToTeam != nil {
			players[i].SoldToTeamName = names[*players[i].SoldToTeam]
		}
	}
	if players == nil {
		players = []models.Player{}
	}
	return players, nil
}

// ByTeam returns the team record, its roster, and totals computed from the
// player rows. Unknown teams surface store.ErrNotFound.
func (a *Aggregator) ByTeam(ctx context.Context, teamID string) (models.TeamSummary, error) {
	team, err := a.Store.GetTeam(ctx, teamID)
	if err != nil {
		return models.TeamSummary{}, err
	}
	players, err := a.Store.PlayersByTeam(ctx, teamID)
	if err != nil {
		return models.TeamSummary{}, err
	}
	if players == nil {
		players = []models.Player{}
	}
	return models.TeamSummary{
		Team:    team,
		Players: players,
		Totals:  ComputeTeamTotals(team, players),
	}, nil
}

// Global returns auction-wide counts and money spent. An empty catalog
// yields a zeroed projection.
func (a *Aggregator) Global(ctx context.Context) (models.GlobalSummary, error) {
	players, err := a.Store.ListPlayers(ctx)
	if err != nil {
		return models.GlobalSummary{}, err
	}
	return ComputeGlobalSummary(players), nil
}

// ComputeTeamTotals sums the roster independently of the team's stored
// remaining budget, so callers can assert
// totalSpent == startingBudget - remainingBudget instead of trusting one
// source.
func ComputeTeamTotals(team models.Team, players []models.Player) models.TeamTotals {
	var spent int64
	for _, p := range players {
		if p.SoldPrice != nil {
			spent += *p.SoldPrice
		}
	}
	return models.TeamTotals{
		TotalSpent:      spent,
		RemainingBudget: team.RemainingBudget,
		PlayerCount:     len(players),
	}
}

// ComputeGlobalSummary folds all players into the global projection.
func ComputeGlobalSummary(players []models.Player) models.GlobalSummary {
	var g models.GlobalSummary
	g.TotalPlayers = len(players)
	for _, p := range players {
		switch p.AuctionStatus {
		case models.StatusSold:
			g.TotalSold++
			if p.SoldPrice != nil {
				g.TotalMoneySpent += *p.SoldPrice
			}
		case models.StatusUnsold:
			g.TotalUnsold++
		}
	}
	return g
}
