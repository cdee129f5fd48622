package models

// AuctionStatus is the closed set of states a player moves through during an
// auction. A player starts Available and transitions exactly once to Sold or
// Unsold; only an administrative reversal moves it back.
type AuctionStatus string

const (
	StatusAvailable AuctionStatus = "Available"
	StatusSold      AuctionStatus = "Sold"
	StatusUnsold    AuctionStatus = "Unsold"
)

// Valid reports whether s is one of the known auction statuses.
func (s AuctionStatus) Valid() bool {
	return s == StatusAvailable || s == StatusSold || s == StatusUnsold
}

// Team represents a franchise bidding in the auction
type Team struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	LogoURL         string `json:"logoUrl,omitempty"`
	StartingBudget  int64  `json:"startingBudget"`
	RemainingBudget int64  `json:"remainingBudget"`
	CreatedAt       int64  `json:"createdAt"`
}

// PlayerSet is a curated bucket of players auctioned together. A set with
// BiddingIncrement == 0 is a non-biddable bucket (the "Unsold Players" set)
// and is never the target of a new sale.
type PlayerSet struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	DefaultBasePrice int64  `json:"defaultBasePrice"`
	BiddingIncrement int64  `json:"biddingIncrement"`
	CreatedAt        int64  `json:"createdAt"`
}

// Biddable reports whether new sales may target players of this set.
func (s PlayerSet) Biddable() bool {
	return s.BiddingIncrement > 0
}

// Player represents a player on the auction block. SoldPrice and SoldToTeam
// are both set or both nil, consistent with AuctionStatus; use MarkSold and
// ClearSale rather than writing the fields directly.
type Player struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Age            int           `json:"age,omitempty"`
	Role           string        `json:"role,omitempty"`
	BattingStyle   string        `json:"battingStyle,omitempty"`
	BowlingStyle   string        `json:"bowlingStyle,omitempty"`
	PhotoURL       string        `json:"photoUrl,omitempty"`
	BasePrice      int64         `json:"basePrice"`
	AuctionStatus  AuctionStatus `json:"auctionStatus"`
	SoldPrice      *int64        `json:"soldPrice,omitempty"`
	SoldToTeam     *string       `json:"soldToTeam,omitempty"`
	SoldToTeamName string        `json:"soldToTeamName,omitempty"`
	PlayerSet      string        `json:"playerSet"`
	Seq            int64         `json:"-"`
	CreatedAt      int64         `json:"createdAt"`
}

// MarkSold records a committed sale on the player.
func (p *Player) MarkSold(teamID string, price int64) {
	p.AuctionStatus = StatusSold
	p.SoldPrice = &price
	p.SoldToTeam = &teamID
}

// ClearSale returns the player to Available, dropping any sale fields. Used
// by administrative reversal and by the unsold path (which never sets them).
func (p *Player) ClearSale() {
	p.AuctionStatus = StatusAvailable
	p.SoldPrice = nil
	p.SoldToTeam = nil
	p.SoldToTeamName = ""
}

// Settled reports whether the player has reached a terminal status.
func (p Player) Settled() bool {
	return p.AuctionStatus != StatusAvailable
}

// Consistent reports whether the sale fields agree with the status. The
// settlement engine keeps this true; it exists so tests and audits can check
// rows independently.
func (p Player) Consistent() bool {
	if p.AuctionStatus == StatusSold {
		return p.SoldPrice != nil && p.SoldToTeam != nil
	}
	return p.SoldPrice == nil && p.SoldToTeam == nil
}

// TeamTotals are the computed financials attached to a by-team summary.
// TotalSpent is summed from player rows, independent of RemainingBudget, so
// consumers can cross-check totalSpent == startingBudget - remainingBudget.
type TeamTotals struct {
	TotalSpent      int64 `json:"totalSpent"`
	RemainingBudget int64 `json:"remainingBudget"`
	PlayerCount     int   `json:"playerCount"`
}

// TeamSummary is the by-team projection: the team record, its roster, and
// computed totals.
type TeamSummary struct {
	Team    Team       `json:"team"`
	Players []Player   `json:"players"`
	Totals  TeamTotals `json:"totals"`
}

// GlobalSummary is the auction-wide projection.
type GlobalSummary struct {
	TotalPlayers    int   `json:"totalPlayers"`
	TotalSold       int   `json:"totalSold"`
	TotalUnsold     int   `json:"totalUnsold"`
	TotalMoneySpent int64 `json:"totalMoneySpent"`
}

// FeedEvent is a committed settlement fact pushed to live feed subscribers.
type FeedEvent struct {
	Type   string `json:"type"` // sold, unsold, reversed
	Player Player `json:"player"`
	Team   *Team  `json:"team,omitempty"`
	Price  *int64 `json:"price,omitempty"`
}
