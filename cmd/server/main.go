package main

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"kuyumhesap/internal/config"
	"kuyumhesap/internal/db"
	"kuyumhesap/internal/migrations"
	"kuyumhesap/internal/pricing"
	"kuyumhesap/internal/rates"
)

type server struct {
	db    *sql.DB
	rates *rates.Client
}

func main() {
	cfg := config.Load()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database, "migrations"); err != nil {
			log.Fatalf("failed to run database migrations: %v", err)
		}
	}

	defaults, err := config.LoadDefaults(cfg.DefaultsPath)
	if err != nil {
		log.Fatalf("failed to load pricing defaults: %v", err)
	}

	srv := &server{
		db:    database,
		rates: rates.NewClient(cfg.ExchangeRateAPIKey, cfg.MetalPriceAPIKey),
	}
	if err := srv.ensureSettings(defaults); err != nil {
		log.Fatalf("failed to ensure settings: %v", err)
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, newRouter(srv, cfg.AllowedOrigin)); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newRouter(s *server, allowedOrigin string) *chi.Mux {
	origins := []string{"*"}
	if allowedOrigin != "" {
		origins = []string{allowedOrigin}
	}

	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler)

	r.Get("/health", s.handleHealth)
	r.Post("/calculate", s.handleCalculate)
	r.Post("/standard-sale-price", s.handleStandardSalePrice)
	r.Get("/rates", s.handleRates)
	r.Post("/sync", s.handleSync)
	r.Get("/saved-calculations", s.handleSavedCalculationsList)
	r.Post("/saved-calculations", s.handleSavedCalculationsSave)
	r.Delete("/saved-calculations/{id}", s.handleSavedCalculationsDelete)
	r.Get("/settings", s.handleSettingsGet)
	r.Put("/settings", s.handleSettingsUpdate)
	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	product, market, expenses, scenarios, err := req.engineInputs()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Sentinel-named scenarios get their sale price re-solved from the
	// target profit rate before the batch runs.
	scenarios = pricing.RefreshAutoPrices(product, market, expenses, scenarios)
	for _, sc := range scenarios {
		if sc.SalePrice <= 0 {
			respondError(w, http.StatusBadRequest, "scenario "+sc.Name+" needs a sale price greater than zero")
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string][]pricing.Result{
		"results": pricing.ProfitAll(product, market, expenses, scenarios),
	})
}

func (s *server) handleStandardSalePrice(w http.ResponseWriter, r *http.Request) {
	var req standardSalePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	product, market, expenses, commissionRate, targetProfitRate, err := req.solverInputs()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	salePrice := pricing.SalePriceForTarget(product, market, expenses, commissionRate, targetProfitRate)
	respondJSON(w, http.StatusOK, map[string]float64{"salePrice": salePrice})
}

func (s *server) handleRates(w http.ResponseWriter, r *http.Request) {
	quote, err := s.rates.Latest(r.Context())
	if err != nil {
		log.Printf("rates fetch failed: %v", err)
		respondError(w, http.StatusBadGateway, "rates unavailable")
		return
	}
	respondJSON(w, http.StatusOK, quote)
}

// handleSync acknowledges a client state snapshot. Snapshots are not
// persisted server-side; clients keep their own state and use this endpoint
// as a heartbeat.
func (s *server) handleSync(w http.ResponseWriter, r *http.Request) {
	var snapshot json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	log.Printf("sync snapshot received (%d bytes)", len(snapshot))
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
