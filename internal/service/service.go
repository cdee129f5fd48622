// Package service is the HTTP boundary of the auction ledger: request and
// response shapes, status codes and the mapping from engine errors to the
// structured rejections the admin panel consumes.
package service

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"cricket-auction/internal/auction"
	"cricket-auction/internal/store"
)

// Helper functions for HTTP responses
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshaling JSON: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// rejectionBody is the structured rejection returned for illegal operations.
type rejectionBody struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

// respondWithLedgerError maps the ledger error taxonomy onto HTTP statuses:
// validation rejections are 409 (404 for missing records), a lost
// serialization race is 503 and retryable from the client, anything else is
// an opaque 500 with no partial mutation left behind.
func respondWithLedgerError(w http.ResponseWriter, err error) {
	if rej, ok := auction.AsRejection(err); ok {
		code := http.StatusConflict
		if rej.Reason == auction.ReasonNotFound {
			code = http.StatusNotFound
		}
		respondWithJSON(w, code, rejectionBody{Error: rej.Message, Reason: string(rej.Reason)})
		return
	}
	if errors.Is(err, auction.ErrConflict) {
		respondWithJSON(w, http.StatusServiceUnavailable,
			rejectionBody{Error: "settlement conflict, please retry", Reason: "Conflict"})
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		respondWithError(w, http.StatusNotFound, "Record not found")
		return
	}
	respondWithError(w, http.StatusInternalServerError, "Internal server error")
}
