package service

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"cricket-auction/internal/logger"
	"cricket-auction/internal/models"
	"cricket-auction/internal/store"
)

// CatalogService handles setup-time management of teams, player sets and
// players. It has no auction rules of its own beyond input sanity; the
// one state-dependent operation, set reassignment, delegates its
// Available-only guard to the store.
type CatalogService struct {
	Store *store.Store
	Log   *logger.Logger
}

// NewCatalogService initializes a catalog service over the store.
func NewCatalogService(st *store.Store) *CatalogService {
	return &CatalogService{Store: st, Log: logger.NewLogger("catalog-service")}
}

// CreateTeamRequest is the request body for team creation
type CreateTeamRequest struct {
	Name           string `json:"name"`
	LogoURL        string `json:"logoUrl"`
	StartingBudget int64  `json:"startingBudget"`
}

// CreateSetRequest is the request body for player set creation
type CreateSetRequest struct {
	Name             string `json:"name"`
	DefaultBasePrice int64  `json:"defaultBasePrice"`
	BiddingIncrement int64  `json:"biddingIncrement"`
}

// CreatePlayerRequest is the request body for player creation. BasePrice
// defaults from the owning set when omitted.
type CreatePlayerRequest struct {
	Name         string `json:"name"`
	Age          int    `json:"age"`
	Role         string `json:"role"`
	BattingStyle string `json:"battingStyle"`
	BowlingStyle string `json:"bowlingStyle"`
	PhotoURL     string `json:"photoUrl"`
	BasePrice    *int64 `json:"basePrice"`
	PlayerSet    string `json:"playerSet"`
}

// ReassignSetRequest is the request body for moving a player between sets
type ReassignSetRequest struct {
	PlayerSet string `json:"playerSet"`
}

// CreateTeam handles the creation of a new team.
func (cs *CatalogService) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		cs.Log.Error("Failed to decode request body", "error", err)
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondWithError(w, http.StatusBadRequest, "Team name is required")
		return
	}
	if req.StartingBudget < 0 {
		respondWithError(w, http.StatusBadRequest, "Starting budget must be non-negative")
		return
	}

	team := models.Team{
		Name:            req.Name,
		LogoURL:         req.LogoURL,
		StartingBudget:  req.StartingBudget,
		RemainingBudget: req.StartingBudget,
	}
	if err := cs.Store.CreateTeam(ctx, &team); err != nil {
		cs.Log.Error("Failed to create team", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to create team")
		return
	}

	cs.Log.Info("Team created", "team_id", team.ID, "name", team.Name)
	respondWithJSON(w, http.StatusCreated, team)
}

// ListTeams returns all teams.
func (cs *CatalogService) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := cs.Store.ListTeams(r.Context())
	if err != nil {
		cs.Log.Error("Failed to list teams", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to get teams")
		return
	}
	if teams == nil {
		teams = []models.Team{}
	}
	respondWithJSON(w, http.StatusOK, teams)
}

// GetTeam returns one team by ID.
func (cs *CatalogService) GetTeam(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	team, err := cs.Store.GetTeam(r.Context(), vars["id"])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Team not found")
			return
		}
		cs.Log.Error("Failed to get team", "error", err, "team_id", vars["id"])
		respondWithError(w, http.StatusInternalServerError, "Failed to get team")
		return
	}
	respondWithJSON(w, http.StatusOK, team)
}

// CreateSet handles the creation of a new player set.
func (cs *CatalogService) CreateSet(w http.ResponseWriter, r *http.Request) {
	var req CreateSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		cs.Log.Error("Failed to decode request body", "error", err)
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondWithError(w, http.StatusBadRequest, "Set name is required")
		return
	}
	if req.DefaultBasePrice < 0 || req.BiddingIncrement < 0 {
		respondWithError(w, http.StatusBadRequest, "Prices must be non-negative")
		return
	}

	ps := models.PlayerSet{
		Name:             req.Name,
		DefaultBasePrice: req.DefaultBasePrice,
		BiddingIncrement: req.BiddingIncrement,
	}
	if err := cs.Store.CreateSet(r.Context(), &ps); err != nil {
		cs.Log.Error("Failed to create set", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to create set")
		return
	}

	cs.Log.Info("Player set created", "set_id", ps.ID, "name", ps.Name)
	respondWithJSON(w, http.StatusCreated, ps)
}

// ListSets returns all player sets.
func (cs *CatalogService) ListSets(w http.ResponseWriter, r *http.Request) {
	sets, err := cs.Store.ListSets(r.Context())
	if err != nil {
		cs.Log.Error("Failed to list sets", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to get sets")
		return
	}
	if sets == nil {
		sets = []models.PlayerSet{}
	}
	respondWithJSON(w, http.StatusOK, sets)
}

// GetSet returns one player set by ID.
func (cs *CatalogService) GetSet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ps, err := cs.Store.GetSet(r.Context(), vars["id"])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Set not found")
			return
		}
		cs.Log.Error("Failed to get set", "error", err, "set_id", vars["id"])
		respondWithError(w, http.StatusInternalServerError, "Failed to get set")
		return
	}
	respondWithJSON(w, http.StatusOK, ps)
}

// CreatePlayer handles the creation of a new player bound to a set.
func (cs *CatalogService) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		cs.Log.Error("Failed to decode request body", "error", err)
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.PlayerSet == "" {
		respondWithError(w, http.StatusBadRequest, "Player name and set are required")
		return
	}

	set, err := cs.Store.GetSet(ctx, req.PlayerSet)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Player set not found")
			return
		}
		cs.Log.Error("Failed to get set", "error", err, "set_id", req.PlayerSet)
		respondWithError(w, http.StatusInternalServerError, "Failed to create player")
		return
	}

	basePrice := set.DefaultBasePrice
	if req.BasePrice != nil {
		if *req.BasePrice < 0 {
			respondWithError(w, http.StatusBadRequest, "Base price must be non-negative")
			return
		}
		basePrice = *req.BasePrice
	}

	player := models.Player{
		Name:         req.Name,
		Age:          req.Age,
		Role:         req.Role,
		BattingStyle: req.BattingStyle,
		BowlingStyle: req.BowlingStyle,
		PhotoURL:     req.PhotoURL,
		BasePrice:    basePrice,
		PlayerSet:    set.ID,
	}
	if err := cs.Store.CreatePlayer(ctx, &player); err != nil {
		cs.Log.Error("Failed to create player", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to create player")
		return
	}

	cs.Log.Info("Player created", "player_id", player.ID, "name", player.Name, "set_id", set.ID)
	respondWithJSON(w, http.StatusCreated, player)
}

// ListPlayers returns all players in creation order.
func (cs *CatalogService) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := cs.Store.ListPlayers(r.Context())
	if err != nil {
		cs.Log.Error("Failed to list players", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to get players")
		return
	}
	if players == nil {
		players = []models.Player{}
	}
	respondWithJSON(w, http.StatusOK, players)
}

// GetPlayer returns one player by ID.
func (cs *CatalogService) GetPlayer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	player, err := cs.Store.GetPlayer(r.Context(), vars["id"])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Player not found")
			return
		}
		cs.Log.Error("Failed to get player", "error", err, "player_id", vars["id"])
		respondWithError(w, http.StatusInternalServerError, "Failed to get player")
		return
	}
	respondWithJSON(w, http.StatusOK, player)
}

// ReassignPlayerSet moves an Available player into another set (for example
// into the unsold bucket ahead of a re-auction round).
func (cs *CatalogService) ReassignPlayerSet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)
	playerID := vars["id"]

	var req ReassignSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		cs.Log.Error("Failed to decode request body", "error", err)
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PlayerSet == "" {
		respondWithError(w, http.StatusBadRequest, "Target set is required")
		return
	}

	if _, err := cs.Store.GetSet(ctx, req.PlayerSet); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Player set not found")
			return
		}
		cs.Log.Error("Failed to get set", "error", err, "set_id", req.PlayerSet)
		respondWithError(w, http.StatusInternalServerError, "Failed to reassign player")
		return
	}

	err := cs.Store.ReassignPlayerSet(ctx, playerID, req.PlayerSet)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Player not found")
		case errors.Is(err, store.ErrNotReassignable):
			respondWithError(w, http.StatusConflict, "Player is already settled")
		default:
			cs.Log.Error("Failed to reassign player", "error", err, "player_id", playerID)
			respondWithError(w, http.StatusInternalServerError, "Failed to reassign player")
		}
		return
	}

	player, err := cs.Store.GetPlayer(ctx, playerID)
	if err != nil {
		cs.Log.Error("Failed to reload player", "error", err, "player_id", playerID)
		respondWithError(w, http.StatusInternalServerError, "Failed to reassign player")
		return
	}

	cs.Log.Info("Player reassigned", "player_id", playerID, "set_id", req.PlayerSet)
	respondWithJSON(w, http.StatusOK, player)
}
