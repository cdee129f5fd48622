package summary

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"

	"cricket-auction/internal/database"
	"cricket-auction/internal/models"
	"cricket-auction/internal/store"
)

func testAggregator(t *testing.T) (*Aggregator, *store.Store) {
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
	return NewAggregator(st), st
}

func commitSale(t *testing.T, st *store.Store, playerID, teamID string, price int64) {
	t.Helper()
	ctx := context.Background()
	tx, err := st.DB.BeginTx(ctx, nil)
	assert.NoError(t, err)
	assert.NoError(t, st.ApplySale(ctx, tx, playerID, teamID, price))
	assert.NoError(t, tx.Commit())
}

func commitUnsold(t *testing.T, st *store.Store, playerID, unsoldSetID string) {
	t.Helper()
	ctx := context.Background()
	tx, err := st.DB.BeginTx(ctx, nil)
	assert.NoError(t, err)
	assert.NoError(t, st.ApplyUnsold(ctx, tx, playerID, unsoldSetID))
	assert.NoError(t, tx.Commit())
}

func TestBySet_OrderingAndTeamNames(t *testing.T) {
	agg, st := testAggregator(t)
	ctx := context.Background()

	set := models.PlayerSet{Name: "Marquee Set", DefaultBasePrice: 400, BiddingIncrement: 50}
	assert.NoError(t, st.CreateSet(ctx, &set))
	team := models.Team{Name: "Hilltop Hunters", StartingBudget: 10000, RemainingBudget: 10000}
	assert.NoError(t, st.CreateTeam(ctx, &team))

	names := []string{"Rohan Singh", "Amit Verma", "Karan Das"}
	ids := make([]string, len(names))
	for i, name := range names {
		p := models.Player{Name: name, BasePrice: 400, PlayerSet: set.ID}
		assert.NoError(t, st.CreatePlayer(ctx, &p))
		ids[i] = p.ID
	}
	commitSale(t, st, ids[1], team.ID, 550)

	players, err := agg.BySet(ctx, set.ID)
	assert.NoError(t, err)
	assert.Equal(t, 3, len(players))

	// Creation order survives the sale.
	for i, name := range names {
		check.Equal(t, name, players[i].Name)
	}
	check.Equal(t, "Hilltop Hunters", players[1].SoldToTeamName)
	check.Equal(t, "", players[0].SoldToTeamName)
}

func TestBySet_UnsoldBucket(t *testing.T) {
	agg, st := testAggregator(t)
	ctx := context.Background()

	set := models.PlayerSet{Name: "Bowlers Set-1", DefaultBasePrice: 400, BiddingIncrement: 50}
	assert.NoError(t, st.CreateSet(ctx, &set))
	unsoldSet := models.PlayerSet{Name: "Unsold Players", DefaultBasePrice: 0, BiddingIncrement: 0}
	assert.NoError(t, st.CreateSet(ctx, &unsoldSet))

	var ids []string
	for _, name := range []string{"Sandeep Toppo", "Ajay Munda", "Nitesh Ekka"} {
		p := models.Player{Name: name, BasePrice: 400, PlayerSet: set.ID}
		assert.NoError(t, st.CreatePlayer(ctx, &p))
		ids = append(ids, p.ID)
	}

	// Two players go unsold and move into the bucket; the third stays.
	commitUnsold(t, st, ids[0], unsoldSet.ID)
	commitUnsold(t, st, ids[2], unsoldSet.ID)

	players, err := agg.BySet(ctx, unsoldSet.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(players))
	check.Equal(t, "Sandeep Toppo", players[0].Name)
	check.Equal(t, "Nitesh Ekka", players[1].Name)
	for _, p := range players {
		check.Equal(t, models.StatusUnsold, p.AuctionStatus)
	}

	remaining, err := agg.BySet(ctx, set.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(remaining))
	check.Equal(t, "Ajay Munda", remaining[0].Name)
}

func TestBySet_UnknownSetIsEmpty(t *testing.T) {
	agg, _ := testAggregator(t)

	players, err := agg.BySet(context.Background(), "no-such-set")
	assert.NoError(t, err)
	check.Equal(t, 0, len(players))
	check.NotNil(t, players)
}

func TestByTeam_TotalsMatchBudgetInvariant(t *testing.T) {
	agg, st := testAggregator(t)
	ctx := context.Background()

	set := models.PlayerSet{Name: "Marquee Set", DefaultBasePrice: 400, BiddingIncrement: 50}
	assert.NoError(t, st.CreateSet(ctx, &set))
	team := models.Team{Name: "Hilltop Hunters", StartingBudget: 10000, RemainingBudget: 10000}
	assert.NoError(t, st.CreateTeam(ctx, &team))

	p := models.Player{Name: "Rohan Singh", BasePrice: 400, PlayerSet: set.ID}
	assert.NoError(t, st.CreatePlayer(ctx, &p))
	commitSale(t, st, p.ID, team.ID, 550)

	ts, err := agg.ByTeam(ctx, team.ID)
	assert.NoError(t, err)
	check.Equal(t, models.TeamTotals{
		TotalSpent:      550,
		RemainingBudget: 9450,
		PlayerCount:     1,
	}, ts.Totals)
	check.Equal(t, ts.Team.StartingBudget-ts.Team.RemainingBudget, ts.Totals.TotalSpent)
	assert.Equal(t, 1, len(ts.Players))
	check.Equal(t, p.ID, ts.Players[0].ID)
}

func TestByTeam_UnknownTeam(t *testing.T) {
	agg, _ := testAggregator(t)

	_, err := agg.ByTeam(context.Background(), "no-such-team")
	check.True(t, errors.Is(err, store.ErrNotFound))
}

func TestGlobal_CountsAndMoneySpent(t *testing.T) {
	agg, st := testAggregator(t)
	ctx := context.Background()

	set := models.PlayerSet{Name: "Marquee Set", DefaultBasePrice: 400, BiddingIncrement: 50}
	assert.NoError(t, st.CreateSet(ctx, &set))
	teamA := models.Team{Name: "Hilltop Hunters", StartingBudget: 10000, RemainingBudget: 10000}
	assert.NoError(t, st.CreateTeam(ctx, &teamA))
	teamB := models.Team{Name: "Kiriburu Kings", StartingBudget: 10000, RemainingBudget: 10000}
	assert.NoError(t, st.CreateTeam(ctx, &teamB))

	var ids []string
	for i := 0; i < 9; i++ {
		p := models.Player{Name: "Player", BasePrice: 400, PlayerSet: set.ID}
		assert.NoError(t, st.CreatePlayer(ctx, &p))
		ids = append(ids, p.ID)
	}
	commitSale(t, st, ids[0], teamA.ID, 550)
	commitSale(t, st, ids[1], teamB.ID, 400)
	commitUnsold(t, st, ids[2], "")

	g, err := agg.Global(ctx)
	assert.NoError(t, err)
	check.Equal(t, models.GlobalSummary{
		TotalPlayers:    9,
		TotalSold:       2,
		TotalUnsold:     1,
		TotalMoneySpent: 950,
	}, g)
}

func TestGlobal_EmptyCatalog(t *testing.T) {
	agg, _ := testAggregator(t)

	g, err := agg.Global(context.Background())
	assert.NoError(t, err)
	check.Equal(t, models.GlobalSummary{}, g)
}
