// Package auction holds the bid validator and the settlement engine: the only
// code paths that judge and commit the irreversible transitions of the
// auction ledger.
package auction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"cricket-auction/internal/logger"
	"cricket-auction/internal/models"
	"cricket-auction/internal/store"
)

// MySQL error numbers that mean "serialization lost, try again".
const (
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
)

// maxAttempts bounds the internal retry on lock conflicts. Exhaustion
// surfaces as ErrConflict, never as a validation rejection.
const maxAttempts = 3

// settleTimeout caps one settlement attempt. Settlement is short-lived; a
// slow attempt is a lock pile-up or a sick store, not normal operation.
const settleTimeout = 10 * time.Second

// Engine applies settlements as single atomic transactions over the catalog
// store. Both the player and the team row are locked before the validator
// re-runs, so two concurrent settlements of the same player serialize: one
// commits, the other sees the committed state and is rejected.
type Engine struct {
	DB    *sql.DB
	Store *store.Store
	Log   *logger.Logger
}

// NewEngine creates a settlement engine over the given handle and store.
func NewEngine(db *sql.DB, st *store.Store, log *logger.Logger) *Engine {
	return &Engine{DB: db, Store: st, Log: log}
}

// SettleSale commits "player sold to team at price" or changes nothing.
// The freshly locked player, set and team state is re-validated before the
// paired mutations are written; the returned records reflect the committed
// state.
func (e *Engine) SettleSale(ctx context.Context, playerID, teamID string, price int64) (models.Player, models.Team, error) {
	var player models.Player
	var team models.Team

	err := e.withRetry(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		player, err = e.Store.GetPlayerForUpdate(ctx, tx, playerID)
		if err != nil {
			return notFoundOr(err, "player %s", playerID)
		}
		team, err = e.Store.GetTeamForUpdate(ctx, tx, teamID)
		if err != nil {
			return notFoundOr(err, "team %s", teamID)
		}
		set, err := e.Store.GetSet(ctx, player.PlayerSet)
		if err != nil {
			return notFoundOr(err, "player set %s", player.PlayerSet)
		}

		if !set.Biddable() {
			return reject(ReasonInvalidIncrement, "set %q is not biddable", set.Name)
		}
		if rej := ValidateBid(player, set, team, price); rej != nil {
			return rej
		}

		if err := e.Store.ApplySale(ctx, tx, playerID, teamID, price); err != nil {
			return err
		}
		player.MarkSold(teamID, price)
		team.RemainingBudget -= price
		return nil
	})
	if err != nil {
		return models.Player{}, models.Team{}, err
	}

	e.Log.Info("Sale settled", "player_id", playerID, "team_id", teamID, "price", price)
	return player, team, nil
}

// SettleUnsold marks an Available player Unsold. When unsoldSetID is given
// the player is also moved into that bucket in the same transaction; team
// state is never touched.
func (e *Engine) SettleUnsold(ctx context.Context, playerID, unsoldSetID string) (models.Player, error) {
	var player models.Player

	err := e.withRetry(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		player, err = e.Store.GetPlayerForUpdate(ctx, tx, playerID)
		if err != nil {
			return notFoundOr(err, "player %s", playerID)
		}
		if player.Settled() {
			return reject(ReasonAlreadySettled, "player %s is already %s", player.Name, player.AuctionStatus)
		}
		if unsoldSetID != "" {
			if _, err := e.Store.GetSet(ctx, unsoldSetID); err != nil {
				return notFoundOr(err, "player set %s", unsoldSetID)
			}
		}

		if err := e.Store.ApplyUnsold(ctx, tx, playerID, unsoldSetID); err != nil {
			return err
		}
		player.AuctionStatus = models.StatusUnsold
		if unsoldSetID != "" {
			player.PlayerSet = unsoldSetID
		}
		return nil
	})
	if err != nil {
		return models.Player{}, err
	}

	e.Log.Info("Player marked unsold", "player_id", playerID, "unsold_set_id", unsoldSetID)
	return player, nil
}

// ReverseSale is the administrative correction: the only path out of a
// terminal status. A Sold player returns to Available and the buying team is
// credited the sale price back; an Unsold player simply returns to
// Available. The returned team pointer is nil for the unsold case.
func (e *Engine) ReverseSale(ctx context.Context, playerID string) (models.Player, *models.Team, error) {
	var player models.Player
	var team *models.Team

	err := e.withRetry(ctx, func(ctx context.Context, tx *sql.Tx) error {
		team = nil
		var err error
		player, err = e.Store.GetPlayerForUpdate(ctx, tx, playerID)
		if err != nil {
			return notFoundOr(err, "player %s", playerID)
		}

		switch player.AuctionStatus {
		case models.StatusSold:
			if !player.Consistent() {
				// A Sold row missing its sale fields means the ledger
				// is corrupt; refuse rather than mask it.
				return fmt.Errorf("player %s is Sold but its sale fields are incomplete", player.ID)
			}
			price := *player.SoldPrice
			teamID := *player.SoldToTeam
			t, err := e.Store.GetTeamForUpdate(ctx, tx, teamID)
			if err != nil {
				return notFoundOr(err, "team %s", teamID)
			}
			if t.RemainingBudget+price > t.StartingBudget {
				// Crediting past the starting budget means the ledger
				// is corrupt; refuse rather than mask it.
				return fmt.Errorf("reversal of %d for team %s would exceed starting budget", price, t.ID)
			}
			if err := e.Store.ApplyReversal(ctx, tx, playerID, teamID, price); err != nil {
				return err
			}
			t.RemainingBudget += price
			team = &t
			player.ClearSale()
			return nil

		case models.StatusUnsold:
			if err := e.Store.ClearUnsoldStatus(ctx, tx, playerID); err != nil {
				return err
			}
			player.ClearSale()
			return nil

		default:
			return reject(ReasonNotSettled, "player %s has not been settled", player.Name)
		}
	})
	if err != nil {
		return models.Player{}, nil, err
	}

	e.Log.Info("Settlement reversed", "player_id", playerID)
	return player, team, nil
}

// withRetry runs fn inside a transaction, retrying a bounded number of times
// when MySQL reports a lock conflict. Every retry re-reads and re-validates;
// stale inputs are never replayed. Rejections and other errors roll back and
// return immediately.
func (e *Engine) withRetry(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		attemptCtx, cancel := context.WithTimeout(ctx, settleTimeout)
		err := e.attempt(attemptCtx, fn)
		cancel()
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}
		lastErr = err
		e.Log.Warn("Settlement lock conflict, retrying", "attempt", attempt, "error", err)
	}
	e.Log.Error("Settlement retries exhausted", "error", lastErr)
	return ErrConflict
}

// attempt runs fn inside one transaction, rolling back on any error.
func (e *Engine) attempt(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error {
	tx, err := e.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin settlement transaction: %w", err)
	}

	if err := fn(ctx, tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		if retryable(err) {
			return err
		}
		return fmt.Errorf("commit settlement: %w", err)
	}
	return nil
}

func retryable(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrDeadlock || mysqlErr.Number == mysqlErrLockWaitTimeout
	}
	return false
}

// notFoundOr maps a store miss to a NotFound rejection and passes other
// errors (driver failures, timeouts) through untouched.
func notFoundOr(err error, format string, args ...interface{}) error {
	if errors.Is(err, store.ErrNotFound) {
		return reject(ReasonNotFound, format+" not found", args...)
	}
	return err
}
