package auction

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"

	"cricket-auction/internal/database"
	"cricket-auction/internal/logger"
	"cricket-auction/internal/models"
	"cricket-auction/internal/store"
)

// These tests need a real MySQL instance; settlement correctness depends on
// InnoDB row locking. Set TEST_DATABASE_DSN to run them, e.g.
// root:root@tcp(127.0.0.1:3306)/auction_test?parseTime=true

func testEngine(t *testing.T) (*Engine, *store.Store) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set, skipping database test")
	}

	db, err := sql.Open("mysql", dsn)
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	assert.NoError(t, db.Ping())
	assert.NoError(t, database.InitSchema(db))

	for _, table := range []string{"players", "teams", "player_sets"} {
		_, err := db.Exec("DELETE FROM " + table)
		assert.NoError(t, err)
	}

	st := store.New(db)
	return NewEngine(db, st, logger.NewLogger("engine-test")), st
}

func seedAuction(t *testing.T, st *store.Store) (models.Team, models.PlayerSet, models.Player) {
	t.Helper()
	ctx := context.Background()

	team := models.Team{Name: "Hilltop Hunters", StartingBudget: 10000, RemainingBudget: 10000}
	assert.NoError(t, st.CreateTeam(ctx, &team))

	set := models.PlayerSet{Name: "Marquee Set", DefaultBasePrice: 400, BiddingIncrement: 50}
	assert.NoError(t, st.CreateSet(ctx, &set))

	player := models.Player{Name: "Rohan Singh", BasePrice: 400, PlayerSet: set.ID}
	assert.NoError(t, st.CreatePlayer(ctx, &player))

	return team, set, player
}

func TestSettleSale_CommitsBothMutations(t *testing.T) {
	engine, st := testEngine(t)
	team, _, player := seedAuction(t, st)
	ctx := context.Background()

	gotPlayer, gotTeam, err := engine.SettleSale(ctx, player.ID, team.ID, 550)
	assert.NoError(t, err)

	check.Equal(t, models.StatusSold, gotPlayer.AuctionStatus)
	check.Equal(t, int64(550), *gotPlayer.SoldPrice)
	check.Equal(t, team.ID, *gotPlayer.SoldToTeam)
	check.Equal(t, int64(9450), gotTeam.RemainingBudget)

	// Re-read both rows; the returned values must match committed state.
	storedPlayer, err := st.GetPlayer(ctx, player.ID)
	assert.NoError(t, err)
	check.True(t, storedPlayer.Consistent())
	check.Equal(t, models.StatusSold, storedPlayer.AuctionStatus)
	check.Equal(t, int64(550), *storedPlayer.SoldPrice)

	storedTeam, err := st.GetTeam(ctx, team.ID)
	assert.NoError(t, err)
	check.Equal(t, int64(9450), storedTeam.RemainingBudget)
	check.Equal(t, storedTeam.StartingBudget-storedTeam.RemainingBudget, *storedPlayer.SoldPrice)
}

func TestSettleSale_SecondCallRejected(t *testing.T) {
	engine, st := testEngine(t)
	team, _, player := seedAuction(t, st)
	ctx := context.Background()

	_, _, err := engine.SettleSale(ctx, player.ID, team.ID, 550)
	assert.NoError(t, err)

	// Same player again, any team, any price: always AlreadySettled, and
	// the first call's result is untouched.
	_, _, err = engine.SettleSale(ctx, player.ID, team.ID, 600)
	rej, ok := AsRejection(err)
	assert.True(t, ok)
	check.Equal(t, ReasonAlreadySettled, rej.Reason)

	storedTeam, err := st.GetTeam(ctx, team.ID)
	assert.NoError(t, err)
	check.Equal(t, int64(9450), storedTeam.RemainingBudget)
}

func TestSettleSale_RejectionLeavesStateUntouched(t *testing.T) {
	engine, st := testEngine(t)
	team, _, player := seedAuction(t, st)
	ctx := context.Background()

	cases := []struct {
		name   string
		price  int64
		reason Reason
	}{
		{"below base", 399, ReasonBelowBasePrice},
		{"off increment grid", 401, ReasonInvalidIncrement},
		{"over budget", 10050, ReasonInsufficientBudget},
	}
	for _, tc := range cases {
		_, _, err := engine.SettleSale(ctx, player.ID, team.ID, tc.price)
		rej, ok := AsRejection(err)
		assert.True(t, ok)
		check.Equal(t, tc.reason, rej.Reason)
	}

	storedPlayer, err := st.GetPlayer(ctx, player.ID)
	assert.NoError(t, err)
	check.Equal(t, models.StatusAvailable, storedPlayer.AuctionStatus)
	check.Nil(t, storedPlayer.SoldPrice)

	storedTeam, err := st.GetTeam(ctx, team.ID)
	assert.NoError(t, err)
	check.Equal(t, int64(10000), storedTeam.RemainingBudget)
}

func TestSettleSale_UnknownRecords(t *testing.T) {
	engine, st := testEngine(t)
	team, _, player := seedAuction(t, st)
	ctx := context.Background()

	_, _, err := engine.SettleSale(ctx, "no-such-player", team.ID, 550)
	rej, ok := AsRejection(err)
	assert.True(t, ok)
	check.Equal(t, ReasonNotFound, rej.Reason)

	_, _, err = engine.SettleSale(ctx, player.ID, "no-such-team", 550)
	rej, ok = AsRejection(err)
	assert.True(t, ok)
	check.Equal(t, ReasonNotFound, rej.Reason)
}

func TestSettleSale_NonBiddableSetRejected(t *testing.T) {
	engine, st := testEngine(t)
	team, _, _ := seedAuction(t, st)
	ctx := context.Background()

	unsoldSet := models.PlayerSet{Name: "Unsold Players", DefaultBasePrice: 0, BiddingIncrement: 0}
	assert.NoError(t, st.CreateSet(ctx, &unsoldSet))
	player := models.Player{Name: "Nitesh Ekka", BasePrice: 0, PlayerSet: unsoldSet.ID}
	assert.NoError(t, st.CreatePlayer(ctx, &player))

	_, _, err := engine.SettleSale(ctx, player.ID, team.ID, 400)
	rej, ok := AsRejection(err)
	assert.True(t, ok)
	check.Equal(t, ReasonInvalidIncrement, rej.Reason)
}

func TestSettleSale_ConcurrentSamePlayer(t *testing.T) {
	engine, st := testEngine(t)
	teamA, _, player := seedAuction(t, st)
	ctx := context.Background()

	teamB := models.Team{Name: "Kiriburu Kings", StartingBudget: 10000, RemainingBudget: 10000}
	assert.NoError(t, st.CreateTeam(ctx, &teamB))

	// Two operators settle the same player at once with different teams
	// and prices. Exactly one must win; the loser's team budget must not
	// move.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _, errs[0] = engine.SettleSale(ctx, player.ID, teamA.ID, 550)
	}()
	go func() {
		defer wg.Done()
		_, _, errs[1] = engine.SettleSale(ctx, player.ID, teamB.ID, 600)
	}()
	wg.Wait()

	var successes, rejections int
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		rej, ok := AsRejection(err)
		assert.True(t, ok)
		check.Equal(t, ReasonAlreadySettled, rej.Reason)
		rejections++
	}
	check.Equal(t, 1, successes)
	check.Equal(t, 1, rejections)

	storedPlayer, err := st.GetPlayer(ctx, player.ID)
	assert.NoError(t, err)
	assert.True(t, storedPlayer.Consistent())
	assert.NotNil(t, storedPlayer.SoldToTeam)

	winner, err := st.GetTeam(ctx, *storedPlayer.SoldToTeam)
	assert.NoError(t, err)
	check.Equal(t, *storedPlayer.SoldPrice, winner.StartingBudget-winner.RemainingBudget)

	var loser models.Team
	if *storedPlayer.SoldToTeam == teamA.ID {
		loser, err = st.GetTeam(ctx, teamB.ID)
	} else {
		loser, err = st.GetTeam(ctx, teamA.ID)
	}
	assert.NoError(t, err)
	check.Equal(t, loser.StartingBudget, loser.RemainingBudget)
}

func TestSettleUnsold(t *testing.T) {
	engine, st := testEngine(t)
	_, _, player := seedAuction(t, st)
	ctx := context.Background()

	unsoldSet := models.PlayerSet{Name: "Unsold Players", DefaultBasePrice: 0, BiddingIncrement: 0}
	assert.NoError(t, st.CreateSet(ctx, &unsoldSet))

	got, err := engine.SettleUnsold(ctx, player.ID, unsoldSet.ID)
	assert.NoError(t, err)
	check.Equal(t, models.StatusUnsold, got.AuctionStatus)
	check.Equal(t, unsoldSet.ID, got.PlayerSet)
	check.Nil(t, got.SoldPrice)

	// Terminal: a second unsold marking or a sale both fail.
	_, err = engine.SettleUnsold(ctx, player.ID, "")
	rej, ok := AsRejection(err)
	assert.True(t, ok)
	check.Equal(t, ReasonAlreadySettled, rej.Reason)
}

func TestSettleUnsold_WithoutReassignment(t *testing.T) {
	engine, st := testEngine(t)
	_, set, player := seedAuction(t, st)
	ctx := context.Background()

	got, err := engine.SettleUnsold(ctx, player.ID, "")
	assert.NoError(t, err)
	check.Equal(t, models.StatusUnsold, got.AuctionStatus)
	check.Equal(t, set.ID, got.PlayerSet)
}

func TestReverseSale_RestoresPlayerAndBudget(t *testing.T) {
	engine, st := testEngine(t)
	team, _, player := seedAuction(t, st)
	ctx := context.Background()

	_, _, err := engine.SettleSale(ctx, player.ID, team.ID, 550)
	assert.NoError(t, err)

	gotPlayer, gotTeam, err := engine.ReverseSale(ctx, player.ID)
	assert.NoError(t, err)
	check.Equal(t, models.StatusAvailable, gotPlayer.AuctionStatus)
	check.Nil(t, gotPlayer.SoldPrice)
	check.Nil(t, gotPlayer.SoldToTeam)
	assert.NotNil(t, gotTeam)
	check.Equal(t, int64(10000), gotTeam.RemainingBudget)

	// The player can be sold again after the correction.
	_, _, err = engine.SettleSale(ctx, player.ID, team.ID, 450)
	assert.NoError(t, err)
}

func TestReverseSale_UnsoldPlayer(t *testing.T) {
	engine, st := testEngine(t)
	_, _, player := seedAuction(t, st)
	ctx := context.Background()

	_, err := engine.SettleUnsold(ctx, player.ID, "")
	assert.NoError(t, err)

	gotPlayer, gotTeam, err := engine.ReverseSale(ctx, player.ID)
	assert.NoError(t, err)
	check.Equal(t, models.StatusAvailable, gotPlayer.AuctionStatus)
	check.Nil(t, gotTeam)
}

func TestReverseSale_CorruptSoldRowRefused(t *testing.T) {
	engine, st := testEngine(t)
	team, _, player := seedAuction(t, st)
	ctx := context.Background()

	_, _, err := engine.SettleSale(ctx, player.ID, team.ID, 550)
	assert.NoError(t, err)

	// A Sold row with its sale fields stripped is representable in the
	// schema but never written by the engine. Reversal must refuse it
	// with an error rather than touch any state.
	_, err = st.DB.ExecContext(ctx,
		"UPDATE players SET sold_price = NULL, sold_to_team = NULL WHERE player_id = ?", player.ID)
	assert.NoError(t, err)

	_, _, err = engine.ReverseSale(ctx, player.ID)
	assert.NotNil(t, err)
	_, ok := AsRejection(err)
	check.False(t, ok)

	storedPlayer, err := st.GetPlayer(ctx, player.ID)
	assert.NoError(t, err)
	check.Equal(t, models.StatusSold, storedPlayer.AuctionStatus)

	storedTeam, err := st.GetTeam(ctx, team.ID)
	assert.NoError(t, err)
	check.Equal(t, int64(9450), storedTeam.RemainingBudget)
}

func TestReverseSale_AvailablePlayerRejected(t *testing.T) {
	engine, st := testEngine(t)
	_, _, player := seedAuction(t, st)

	_, _, err := engine.ReverseSale(context.Background(), player.ID)
	rej, ok := AsRejection(err)
	assert.True(t, ok)
	check.Equal(t, ReasonNotSettled, rej.Reason)
}
