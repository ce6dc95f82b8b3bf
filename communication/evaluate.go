package communication

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"reversi/searcher"
)

// evaluate answers one Evaluator call with the server's own evaluator.
func (s *Server) evaluate(w http.ResponseWriter, r *http.Request) {
	var req searcher.EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Player != 1 && req.Player != -1 {
		http.Error(w, "bad request: player must be 1 or -1", http.StatusBadRequest)
		return
	}

	index, err := s.evaluator.Choose(r.Context(), req.Player, req.Board, req.Config)
	switch {
	case errors.Is(err, searcher.ErrNoLegalMove):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	case err != nil:
		log.Warn().Err(err).Msg("evaluate failed")
		http.Error(w, "evaluate failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(searcher.EvaluateResponse{Index: index}); err != nil {
		log.Warn().Err(err).Msg("encode evaluate response")
	}
}
