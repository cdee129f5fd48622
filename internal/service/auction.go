package service

import (
	"encoding/json"
	"errors"
	"net/http"

	"cricket-auction/internal/auction"
	"cricket-auction/internal/logger"
	"cricket-auction/internal/models"
	"cricket-auction/internal/store"
)

// AuctionService exposes the settlement engine to the admin panel. Committed
// settlements are also published to the live feed hub; nothing is published
// for rejected or failed calls.
type AuctionService struct {
	Engine *auction.Engine
	Store  *store.Store
	Hub    *models.Hub
	Log    *logger.Logger
}

// NewAuctionService initializes the settlement boundary.
func NewAuctionService(engine *auction.Engine, st *store.Store, hub *models.Hub) *AuctionService {
	return &AuctionService{
		Engine: engine,
		Store:  st,
		Hub:    hub,
		Log:    logger.NewLogger("auction-service"),
	}
}

// SellRequest is the request body for committing a sale
type SellRequest struct {
	PlayerID string `json:"playerId"`
	TeamID   string `json:"teamId"`
	Price    int64  `json:"price"`
}

// UnsoldRequest is the request body for marking a player unsold. UnsoldSetID
// optionally moves the player into the unsold bucket in the same commit.
type UnsoldRequest struct {
	PlayerID    string `json:"playerId"`
	UnsoldSetID string `json:"unsoldSetId"`
}

// ReverseRequest is the request body for an administrative reversal
type ReverseRequest struct {
	PlayerID string `json:"playerId"`
}

// SaleResponse returns the committed post-sale state of both records
type SaleResponse struct {
	Player models.Player `json:"player"`
	Team   models.Team   `json:"team"`
}

// ReversalResponse returns the restored records; Team is absent when an
// unsold marking was reversed.
type ReversalResponse struct {
	Player models.Player `json:"player"`
	Team   *models.Team  `json:"team,omitempty"`
}

// Sell commits a sale through the settlement engine.
func (as *AuctionService) Sell(w http.ResponseWriter, r *http.Request) {
	var req SellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		as.Log.Error("Failed to decode request body", "error", err)
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PlayerID == "" || req.TeamID == "" {
		respondWithError(w, http.StatusBadRequest, "playerId and teamId are required")
		return
	}
	if req.Price < 0 {
		respondWithError(w, http.StatusBadRequest, "price must be non-negative")
		return
	}

	player, team, err := as.Engine.SettleSale(r.Context(), req.PlayerID, req.TeamID, req.Price)
	if err != nil {
		as.logLedgerError("sale", err, req.PlayerID)
		respondWithLedgerError(w, err)
		return
	}

	as.Hub.Publish(models.FeedEvent{
		Type:   "sold",
		Player: player,
		Team:   &team,
		Price:  player.SoldPrice,
	})
	respondWithJSON(w, http.StatusOK, SaleResponse{Player: player, Team: team})
}

// Unsold marks a player unsold through the settlement engine.
func (as *AuctionService) Unsold(w http.ResponseWriter, r *http.Request) {
	var req UnsoldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		as.Log.Error("Failed to decode request body", "error", err)
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PlayerID == "" {
		respondWithError(w, http.StatusBadRequest, "playerId is required")
		return
	}

	player, err := as.Engine.SettleUnsold(r.Context(), req.PlayerID, req.UnsoldSetID)
	if err != nil {
		as.logLedgerError("unsold", err, req.PlayerID)
		respondWithLedgerError(w, err)
		return
	}

	as.Hub.Publish(models.FeedEvent{Type: "unsold", Player: player})
	respondWithJSON(w, http.StatusOK, player)
}

// Reverse undoes a committed settlement.
func (as *AuctionService) Reverse(w http.ResponseWriter, r *http.Request) {
	var req ReverseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		as.Log.Error("Failed to decode request body", "error", err)
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PlayerID == "" {
		respondWithError(w, http.StatusBadRequest, "playerId is required")
		return
	}

	player, team, err := as.Engine.ReverseSale(r.Context(), req.PlayerID)
	if err != nil {
		as.logLedgerError("reversal", err, req.PlayerID)
		respondWithLedgerError(w, err)
		return
	}

	as.Hub.Publish(models.FeedEvent{Type: "reversed", Player: player, Team: team})
	respondWithJSON(w, http.StatusOK, ReversalResponse{Player: player, Team: team})
}

// Validate runs the bid validator against current state without committing
// anything. The admin panel calls this while a live bid is rising; the
// binding check is re-run inside the settlement transaction regardless.
func (as *AuctionService) Validate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		as.Log.Error("Failed to decode request body", "error", err)
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Price < 0 {
		respondWithError(w, http.StatusBadRequest, "price must be non-negative")
		return
	}

	player, err := as.Store.GetPlayer(ctx, req.PlayerID)
	if err != nil {
		respondWithLedgerError(w, err)
		return
	}
	team, err := as.Store.GetTeam(ctx, req.TeamID)
	if err != nil {
		respondWithLedgerError(w, err)
		return
	}
	set, err := as.Store.GetSet(ctx, player.PlayerSet)
	if err != nil {
		respondWithLedgerError(w, err)
		return
	}

	if !set.Biddable() {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"valid":  false,
			"reason": string(auction.ReasonInvalidIncrement),
		})
		return
	}
	if rej := auction.ValidateBid(player, set, team, req.Price); rej != nil {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"valid":  false,
			"reason": string(rej.Reason),
			"error":  rej.Message,
		})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"valid": true})
}

// logLedgerError keeps noise down: rejections are expected operator-facing
// outcomes, infrastructure failures are not.
func (as *AuctionService) logLedgerError(op string, err error, playerID string) {
	if _, ok := auction.AsRejection(err); ok {
		as.Log.Debug("Settlement rejected", "op", op, "player_id", playerID, "error", err)
		return
	}
	if errors.Is(err, auction.ErrConflict) {
		as.Log.Warn("Settlement conflict", "op", op, "player_id", playerID)
		return
	}
	as.Log.Error("Settlement failed", "op", op, "player_id", playerID, "error", err)
}
