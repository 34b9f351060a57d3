package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/younwookim/platfight/internal/application/tuning"
	"github.com/younwookim/platfight/internal/domain/entity"
)

// maxBodyBytes bounds tuning request bodies
const maxBodyBytes = 1 << 16

func (h *routerHandlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status": "ok",
		"tick":   h.snapshots.Snapshot().Tick,
	})
}

func (h *routerHandlers) handleGetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.snapshots.Snapshot())
}

func (h *routerHandlers) handleListCharacters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"characters": h.tuning.Names(),
	})
}

func (h *routerHandlers) handleGetTunables(w http.ResponseWriter, r *http.Request) {
	t, err := h.tuning.Movement(chi.URLParam(r, "name"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, t)
}

// handlePutTunables decodes the body over the current values, so a
// partial body edits only the fields it names.
func (h *routerHandlers) handlePutTunables(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	t, err := h.tuning.Movement(name)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	if err := decodeBody(w, r, &t); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if err := h.tuning.SubmitMovement(name, t); err != nil {
		writeStoreError(w, err)
		return
	}
	RecordTuningEdit("api")
	log.Printf("Tunables queued for %s", name)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(t)
}

func (h *routerHandlers) handleGetAttack(w http.ResponseWriter, r *http.Request) {
	a, err := h.tuning.Attack(chi.URLParam(r, "name"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, a)
}

func (h *routerHandlers) handlePutAttack(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	a, err := h.tuning.Attack(name)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	if err := decodeBody(w, r, &a); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if err := h.tuning.SubmitAttack(name, a); err != nil {
		writeStoreError(w, err)
		return
	}
	RecordTuningEdit("api")
	log.Printf("Attack tunables queued for %s", name)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(a)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeStoreError maps tuning store errors to status codes
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tuning.ErrUnknownCharacter):
		writeError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, entity.ErrInvalidTunables):
		writeError(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		writeError(w, "Internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
