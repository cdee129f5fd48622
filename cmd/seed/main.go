// Command seed wipes the catalog and loads the MPL demo data: eight
// franchises, the auction sets including the non-biddable unsold bucket, and
// the player roster. Run it once before an auction session.
package main

import (
	"context"

	"cricket-auction/internal/database"
	"cricket-auction/internal/logger"
	"cricket-auction/internal/models"
	"cricket-auction/internal/store"
)

type seedPlayer struct {
	name         string
	age          int
	role         string
	battingStyle string
	bowlingStyle string
	set          string
}

var teams = []models.Team{
	{Name: "Hilltop Hunters", StartingBudget: 10000, RemainingBudget: 10000, LogoURL: "/teams/hilltop.png"},
	{Name: "Kiriburu Kings", StartingBudget: 10000, RemainingBudget: 10000, LogoURL: "/teams/kiriburu.png"},
	{Name: "NewColony Ninjas", StartingBudget: 10000, RemainingBudget: 10000, LogoURL: "/teams/newcolony.png"},
	{Name: "Murgapara Maharajas", StartingBudget: 10000, RemainingBudget: 10000, LogoURL: "/teams/murgapara.png"},
	{Name: "Saranda Sultans", StartingBudget: 10000, RemainingBudget: 10000, LogoURL: "/teams/saranda.png"},
	{Name: "Prospecting Pirates", StartingBudget: 10000, RemainingBudget: 10000, LogoURL: "/teams/prospecting.png"},
	{Name: "Township Titans", StartingBudget: 10000, RemainingBudget: 10000, LogoURL: "/teams/township.png"},
	{Name: "Sunset Strikers", StartingBudget: 10000, RemainingBudget: 10000, LogoURL: "/teams/sunset.png"},
}

var sets = []models.PlayerSet{
	{Name: "Marquee Set", DefaultBasePrice: 400, BiddingIncrement: 50},
	{Name: "Batsmen Set-1", DefaultBasePrice: 400, BiddingIncrement: 50},
	{Name: "Batsmen Set-2", DefaultBasePrice: 400, BiddingIncrement: 50},
	{Name: "Bowlers Set-1", DefaultBasePrice: 400, BiddingIncrement: 50},
	{Name: "Bowlers Set-2", DefaultBasePrice: 400, BiddingIncrement: 50},
	{Name: "All-rounders Set-1", DefaultBasePrice: 400, BiddingIncrement: 50},
	{Name: "All-rounders Set-2", DefaultBasePrice: 400, BiddingIncrement: 50},
	{Name: "Unsold Players", DefaultBasePrice: 0, BiddingIncrement: 0},
}

var players = []seedPlayer{
	{"Rohan Singh", 26, "All-rounder", "Right-hand Bat", "Right-arm Medium", "Marquee Set"},
	{"Amit Verma", 24, "All-rounder", "Left-hand Bat", "Left-arm Spin", "Marquee Set"},
	{"Karan Das", 27, "Batsman", "Right-hand Bat", "Right-arm Fast", "Marquee Set"},
	{"Suresh Mahto", 29, "Batsman", "Right-hand Bat", "", "Batsmen Set-1"},
	{"Vikas Tirkey", 22, "Batsman", "Left-hand Bat", "", "Batsmen Set-1"},
	{"Deepak Oraon", 25, "Batsman", "Right-hand Bat", "", "Batsmen Set-1"},
	{"Manish Kujur", 23, "Batsman", "Right-hand Bat", "", "Batsmen Set-2"},
	{"Rakesh Lakra", 28, "Batsman", "Left-hand Bat", "", "Batsmen Set-2"},
	{"Sandeep Toppo", 24, "Bowler", "", "Right-arm Fast", "Bowlers Set-1"},
	{"Ajay Munda", 26, "Bowler", "", "Right-arm Medium", "Bowlers Set-1"},
	{"Nitesh Ekka", 21, "Bowler", "", "Left-arm Spin", "Bowlers Set-2"},
	{"Prakash Horo", 30, "Bowler", "", "Right-arm Spin", "Bowlers Set-2"},
	{"Sunil Barla", 27, "All-rounder", "Right-hand Bat", "Right-arm Medium", "All-rounders Set-1"},
	{"Ravi Dungdung", 25, "All-rounder", "Left-hand Bat", "Left-arm Medium", "All-rounders Set-1"},
	{"Anup Xalxo", 23, "All-rounder", "Right-hand Bat", "Right-arm Spin", "All-rounders Set-2"},
	{"Mukesh Bage", 28, "All-rounder", "Right-hand Bat", "Right-arm Fast", "All-rounders Set-2"},
}

const placeholderPhoto = "https://via.placeholder.com/300x380.png?text=MPL+Player"

func main() {
	log := logger.NewLogger("seed")
	defer log.Sync()

	db, err := database.InitDB()
	if err != nil {
		log.Fatal("Failed to initialize database", "error", err)
	}
	defer db.Close()

	ctx := context.Background()
	st := store.New(db)

	// Clear old data. Players first, they reference the other two tables.
	for _, table := range []string{"players", "teams", "player_sets"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			log.Fatal("Failed to clear table", "table", table, "error", err)
		}
	}
	log.Info("Cleared old data")

	for i := range teams {
		if err := st.CreateTeam(ctx, &teams[i]); err != nil {
			log.Fatal("Failed to seed team", "name", teams[i].Name, "error", err)
		}
	}
	log.Info("Seeded teams", "count", len(teams))

	setIDs := make(map[string]string, len(sets))
	for i := range sets {
		if err := st.CreateSet(ctx, &sets[i]); err != nil {
			log.Fatal("Failed to seed set", "name", sets[i].Name, "error", err)
		}
		setIDs[sets[i].Name] = sets[i].ID
	}
	log.Info("Seeded player sets", "count", len(sets))

	for _, sp := range players {
		p := models.Player{
			Name:         sp.name,
			Age:          sp.age,
			Role:         sp.role,
			BattingStyle: sp.battingStyle,
			BowlingStyle: sp.bowlingStyle,
			PhotoURL:     placeholderPhoto,
			BasePrice:    400,
			PlayerSet:    setIDs[sp.set],
		}
		if err := st.CreatePlayer(ctx, &p); err != nil {
			log.Fatal("Failed to seed player", "name", sp.name, "error", err)
		}
	}
	log.Info("Seeded players", "count", len(players))
}
