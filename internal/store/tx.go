package store

import (
	"context"
	"database/sql"
	"errors"

	"cricket-auction/internal/models"
)

// Row-locking reads and paired writes used inside a settlement transaction.
// Locking both the player and the team row up front serializes concurrent
// settlements touching either record; the validator then runs against the
// locked state, never a stale read.

// GetPlayerForUpdate fetches a player inside tx with a row lock.
func (s *Store) GetPlayerForUpdate(ctx context.Context, tx *sql.Tx, id string) (models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE player_id = ? FOR UPDATE`
	p, err := scanPlayer(tx.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Player{}, ErrNotFound
	}
	return p, err
}

// GetTeamForUpdate fetches a team inside tx with a row lock.
func (s *Store) GetTeamForUpdate(ctx context.Context, tx *sql.Tx, id string) (models.Team, error) {
	var t models.Team
	query := `SELECT team_id, name, logo_url, starting_budget, remaining_budget, created_at
		FROM teams WHERE team_id = ? FOR UPDATE`
	err := tx.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.LogoURL, &t.StartingBudget, &t.RemainingBudget, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Team{}, ErrNotFound
	}
	return t, err
}

// ApplySale writes both halves of a committed sale inside tx: the player's
// sold fields and the team's debited budget. The caller commits or rolls
// back; a half-applied sale is never visible outside the transaction.
func (s *Store) ApplySale(ctx context.Context, tx *sql.Tx, playerID, teamID string, price int64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE players SET auction_status = ?, sold_price = ?, sold_to_team = ? WHERE player_id = ?`,
		models.StatusSold, price, teamID, playerID)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE teams SET remaining_budget = remaining_budget - ? WHERE team_id = ?`,
		price, teamID)
	return err
}

// ApplyUnsold marks a player unsold inside tx, optionally reassigning it into
// the unsold bucket in the same transaction (the reassignment is requested
// explicitly, it is not implied by the status change).
func (s *Store) ApplyUnsold(ctx context.Context, tx *sql.Tx, playerID, unsoldSetID string) error {
	if unsoldSetID != "" {
		_, err := tx.ExecContext(ctx,
			`UPDATE players SET auction_status = ?, player_set = ? WHERE player_id = ?`,
			models.StatusUnsold, unsoldSetID, playerID)
		return err
	}
	_, err := tx.ExecContext(ctx,
		`UPDATE players SET auction_status = ? WHERE player_id = ?`,
		models.StatusUnsold, playerID)
	return err
}

// ApplyReversal undoes a committed sale inside tx: the player returns to
// Available with its sale fields cleared and the team is credited back.
func (s *Store) ApplyReversal(ctx context.Context, tx *sql.Tx, playerID, teamID string, price int64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE players SET auction_status = ?, sold_price = NULL, sold_to_team = NULL WHERE player_id = ?`,
		models.StatusAvailable, playerID)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE teams SET remaining_budget = remaining_budget + ? WHERE team_id = ?`,
		price, teamID)
	return err
}

// ClearUnsoldStatus returns an Unsold player to Available so it can be
// re-auctioned. No team state is involved.
func (s *Store) ClearUnsoldStatus(ctx context.Context, tx *sql.Tx, playerID string) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE players SET auction_status = ? WHERE player_id = ?`,
		models.StatusAvailable, playerID)
	return err
}
