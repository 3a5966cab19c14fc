package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"kuyumhesap/internal/pricing"
)

type savedCalculation struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	CreatedAt int64            `json:"createdAt"` // unix milliseconds
	Results   []pricing.Result `json:"results"`
}

func (s *server) handleSavedCalculationsList(w http.ResponseWriter, r *http.Request) {
	items, err := s.listSavedCalculations()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load saved calculations")
		return
	}
	respondJSON(w, http.StatusOK, map[string][]savedCalculation{"items": items})
}

func (s *server) handleSavedCalculationsSave(w http.ResponseWriter, r *http.Request) {
	var calc savedCalculation
	if err := json.NewDecoder(r.Body).Decode(&calc); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(calc.Name) == "" || calc.Results == nil {
		respondError(w, http.StatusBadRequest, "name and results are required")
		return
	}

	saved, err := s.saveCalculation(calc)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save calculation")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"ok": true, "id": saved.ID})
}

func (s *server) handleSavedCalculationsDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	deleted, err := s.deleteSavedCalculation(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete calculation")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted})
}

func (s *server) listSavedCalculations() ([]savedCalculation, error) {
	rows, err := s.db.Query(`
		SELECT id, name, created_at, results
		FROM saved_calculations
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query saved calculations: %w", err)
	}
	defer rows.Close()

	items := make([]savedCalculation, 0)
	for rows.Next() {
		var item savedCalculation
		var resultsJSON string
		if err := rows.Scan(&item.ID, &item.Name, &item.CreatedAt, &resultsJSON); err != nil {
			return nil, fmt.Errorf("scan saved calculation: %w", err)
		}
		if err := json.Unmarshal([]byte(resultsJSON), &item.Results); err != nil {
			return nil, fmt.Errorf("decode results for %s: %w", item.ID, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved calculations: %w", err)
	}

	return items, nil
}

func (s *server) saveCalculation(calc savedCalculation) (savedCalculation, error) {
	if strings.TrimSpace(calc.ID) == "" {
		calc.ID = uuid.NewString()
	}
	if calc.CreatedAt == 0 {
		calc.CreatedAt = time.Now().UnixMilli()
	}

	resultsJSON, err := json.Marshal(calc.Results)
	if err != nil {
		return savedCalculation{}, fmt.Errorf("encode results: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO saved_calculations (id, name, created_at, results)
		VALUES (?, ?, ?, ?)
	`, calc.ID, calc.Name, calc.CreatedAt, string(resultsJSON))
	if err != nil {
		return savedCalculation{}, fmt.Errorf("insert saved calculation: %w", err)
	}

	return calc, nil
}

func (s *server) deleteSavedCalculation(id string) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM saved_calculations WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete saved calculation: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted rows: %w", err)
	}
	return deleted, nil
}
