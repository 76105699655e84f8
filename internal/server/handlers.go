package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Asurkatha/calctl/internal/models"
	"github.com/Asurkatha/calctl/internal/timeparse"
)

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ListFilter{
		From:  q.Get("from"),
		To:    q.Get("to"),
		Today: q.Get("today") == "true",
		Week:  q.Get("week") == "true",
	}

	events, err := s.engine.List(filter)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) getEvent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	detail, err := s.engine.Show(id)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	if detail == nil {
		writeError(w, http.StatusNotFound, "Event not found")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) getAgenda(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	agenda, err := s.engine.Agenda(q.Get("date"), q.Get("week") == "true")
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agenda)
}

func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	var parseErr *timeparse.ParseError
	if errors.As(err, &parseErr) {
		writeError(w, http.StatusBadRequest, parseErr.Error())
		return
	}
	s.log.Error().Err(err).Msg("Engine operation failed")
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"status": "error", "message": message})
}
