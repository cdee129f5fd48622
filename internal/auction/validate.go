package auction

import "cricket-auction/internal/models"

// ValidateBid decides whether selling player to team at price is legal given
// the current state of all three records. Checks run in a fixed order and
// short-circuit on the first failure:
//
//  1. the player must still be Available,
//  2. the price must reach the player's base price,
//  3. the price must sit on the set's bidding increment grid (skipped for
//     non-biddable sets, which the settlement engine rejects outright),
//  4. the team must be able to afford it.
//
// A nil return means the bid is legal. The function has no side effects and
// is safe to call speculatively while a live bid is still rising; only the
// settlement engine's final call, re-run against locked rows, commits.
func ValidateBid(player models.Player, set models.PlayerSet, team models.Team, price int64) *Rejection {
	if player.AuctionStatus != models.StatusAvailable {
		return reject(ReasonAlreadySettled, "player %s is already %s", player.Name, player.AuctionStatus)
	}
	if price < player.BasePrice {
		return reject(ReasonBelowBasePrice, "bid %d is below base price %d", price, player.BasePrice)
	}
	if inc := set.BiddingIncrement; inc > 0 && (price-player.BasePrice)%inc != 0 {
		return reject(ReasonInvalidIncrement, "bid %d does not step from base price %d in increments of %d",
			price, player.BasePrice, inc)
	}
	if price > team.RemainingBudget {
		return reject(ReasonInsufficientBudget, "bid %d exceeds remaining budget %d of %s",
			price, team.RemainingBudget, team.Name)
	}
	return nil
}
