// Package store is the catalog store: plain storage and retrieval for the
// Team, PlayerSet and Player records the auction ledger is built on. It holds
// no business rules; bid legality and settlement invariants live in the
// auction package.
package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"cricket-auction/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store provides access to the catalog tables. The *sql.DB handle is injected
// by the caller; the store never reaches for a global.
type Store struct {
	DB *sql.DB
}

// New creates a catalog store over the given database handle.
func New(db *sql.DB) *Store {
	return &Store{DB: db}
}

const playerColumns = `player_id, seq, name, age, role, batting_style, bowling_style,
	photo_url, base_price, auction_status, sold_price, sold_to_team, player_set, created_at`

func scanPlayer(row interface{ Scan(...interface{}) error }) (models.Player, error) {
	var p models.Player
	var soldPrice sql.NullInt64
	var soldToTeam sql.NullString
	err := row.Scan(
		&p.ID, &p.Seq, &p.Name, &p.Age, &p.Role, &p.BattingStyle, &p.BowlingStyle,
		&p.PhotoURL, &p.BasePrice, &p.AuctionStatus, &soldPrice, &soldToTeam,
		&p.PlayerSet, &p.CreatedAt,
	)
	if err != nil {
		return models.Player{}, err
	}
	if soldPrice.Valid {
		v := soldPrice.Int64
		p.SoldPrice = &v
	}
	if soldToTeam.Valid {
		v := soldToTeam.String
		p.SoldToTeam = &v
	}
	return p, nil
}

// CreateTeam inserts a team, assigning its ID and creation time.
func (s *Store) CreateTeam(ctx context.Context, t *models.Team) error {
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now().Unix()
	query := `INSERT INTO teams (team_id, name, logo_url, starting_budget, remaining_budget, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.DB.ExecContext(ctx, query,
		t.ID, t.Name, t.LogoURL, t.StartingBudget, t.RemainingBudget, t.CreatedAt)
	return err
}

// GetTeam fetches a team by ID.
func (s *Store) GetTeam(ctx context.Context, id string) (models.Team, error) {
	var t models.Team
	query := `SELECT team_id, name, logo_url, starting_budget, remaining_budget, created_at
		FROM teams WHERE team_id = ?`
	err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.LogoURL, &t.StartingBudget, &t.RemainingBudget, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Team{}, ErrNotFound
	}
	return t, err
}

// ListTeams returns all teams ordered by creation time.
func (s *Store) ListTeams(ctx context.Context) ([]models.Team, error) {
	query := `SELECT team_id, name, logo_url, starting_budget, remaining_budget, created_at
		FROM teams ORDER BY created_at, team_id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.LogoURL, &t.StartingBudget, &t.RemainingBudget, &t.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// CreateSet inserts a player set, assigning its ID and creation time.
func (s *Store) CreateSet(ctx context.Context, ps *models.PlayerSet) error {
	ps.ID = uuid.NewString()
	ps.CreatedAt = time.Now().Unix()
	query := `INSERT INTO player_sets (set_id, name, default_base_price, bidding_increment, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := s.DB.ExecContext(ctx, query,
		ps.ID, ps.Name, ps.DefaultBasePrice, ps.BiddingIncrement, ps.CreatedAt)
	return err
}

// GetSet fetches a player set by ID.
func (s *Store) GetSet(ctx context.Context, id string) (models.PlayerSet, error) {
	var ps models.PlayerSet
	query := `SELECT set_id, name, default_base_price, bidding_increment, created_at
		FROM player_sets WHERE set_id = ?`
	err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&ps.ID, &ps.Name, &ps.DefaultBasePrice, &ps.BiddingIncrement, &ps.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PlayerSet{}, ErrNotFound
	}
	return ps, err
}

// ListSets returns all player sets ordered by creation time.
func (s *Store) ListSets(ctx context.Context) ([]models.PlayerSet, error) {
	query := `SELECT set_id, name, default_base_price, bidding_increment, created_at
		FROM player_sets ORDER BY created_at, set_id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []models.PlayerSet
	for rows.Next() {
		var ps models.PlayerSet
		if err := rows.Scan(&ps.ID, &ps.Name, &ps.DefaultBasePrice, &ps.BiddingIncrement, &ps.CreatedAt); err != nil {
			return nil, err
		}
		sets = append(sets, ps)
	}
	return sets, rows.Err()
}

// CreatePlayer inserts a player with status Available, assigning its ID and
// creation time. The caller resolves the base price before insertion.
func (s *Store) CreatePlayer(ctx context.Context, p *models.Player) error {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().Unix()
	p.AuctionStatus = models.StatusAvailable
	query := `INSERT INTO players (player_id, name, age, role, batting_style, bowling_style,
		photo_url, base_price, auction_status, player_set, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := s.DB.ExecContext(ctx, query,
		p.ID, p.Name, p.Age, p.Role, p.BattingStyle, p.BowlingStyle,
		p.PhotoURL, p.BasePrice, p.AuctionStatus, p.PlayerSet, p.CreatedAt)
	if err != nil {
		return err
	}
	p.Seq, err = result.LastInsertId()
	return err
}

// GetPlayer fetches a player by ID.
func (s *Store) GetPlayer(ctx context.Context, id string) (models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE player_id = ?`
	p, err := scanPlayer(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Player{}, ErrNotFound
	}
	return p, err
}

// ListPlayers returns all players in creation order.
func (s *Store) ListPlayers(ctx context.Context) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players ORDER BY seq`
	return s.queryPlayers(ctx, query)
}

// PlayersBySet returns the players of one set in creation order.
func (s *Store) PlayersBySet(ctx context.Context, setID string) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE player_set = ? ORDER BY seq`
	return s.queryPlayers(ctx, query, setID)
}

// PlayersByTeam returns the players sold to one team in creation order.
func (s *Store) PlayersByTeam(ctx context.Context, teamID string) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE sold_to_team = ? ORDER BY seq`
	return s.queryPlayers(ctx, query, teamID)
}

func (s *Store) queryPlayers(ctx context.Context, query string, args ...interface{}) ([]models.Player, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// ReassignPlayerSet moves a player into another set. Legal only while the
// player is Available; a settled player's set assignment is frozen until a
// reversal. Returns ErrNotFound if the player does not exist and
// ErrNotReassignable if it exists but is settled.
func (s *Store) ReassignPlayerSet(ctx context.Context, playerID, setID string) error {
	query := `UPDATE players SET player_set = ? WHERE player_id = ? AND auction_status = ?`
	result, err := s.DB.ExecContext(ctx, query, setID, playerID, models.StatusAvailable)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := s.GetPlayer(ctx, playerID); err != nil {
			return err
		}
		return ErrNotReassignable
	}
	return nil
}

// ErrNotReassignable is returned when a set reassignment targets a player
// that has already been settled.
var ErrNotReassignable = errors.New("player is not available for reassignment")
