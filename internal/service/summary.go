package service

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"cricket-auction/internal/logger"
	"cricket-auction/internal/store"
	"cricket-auction/internal/summary"
)

// SummaryService serves the reporting projections consumed by the display
// and summary pages. All endpoints are read-only and public.
type SummaryService struct {
	Agg *summary.Aggregator
	Log *logger.Logger
}

// NewSummaryService initializes the summary boundary.
func NewSummaryService(agg *summary.Aggregator) *SummaryService {
	return &SummaryService{Agg: agg, Log: logger.NewLogger("summary-service")}
}

// BySet returns the ordered player projections of one set.
func (ss *SummaryService) BySet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	players, err := ss.Agg.BySet(r.Context(), vars["setId"])
	if err != nil {
		ss.Log.Error("Failed to build by-set summary", "error", err, "set_id", vars["setId"])
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch summary by set")
		return
	}
	respondWithJSON(w, http.StatusOK, players)
}

// ByTeam returns the team record, roster and computed totals.
func (ss *SummaryService) ByTeam(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ts, err := ss.Agg.ByTeam(r.Context(), vars["teamId"])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Team not found")
			return
		}
		ss.Log.Error("Failed to build by-team summary", "error", err, "team_id", vars["teamId"])
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch summary by team")
		return
	}
	respondWithJSON(w, http.StatusOK, ts)
}

// Global returns the auction-wide totals.
func (ss *SummaryService) Global(w http.ResponseWriter, r *http.Request) {
	g, err := ss.Agg.Global(r.Context())
	if err != nil {
		ss.Log.Error("Failed to build global summary", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch global summary")
		return
	}
	respondWithJSON(w, http.StatusOK, g)
}
