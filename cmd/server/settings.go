package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"kuyumhesap/internal/config"
)

// settings is the singleton pricing-defaults row. It holds the values the
// storefront prefills its forms with; the engine never reads it directly.
type settings struct {
	ProductGram    float64 `json:"productGram"`
	GoldPrice      float64 `json:"goldPrice"`
	SilverPrice    float64 `json:"silverPrice"`
	LaborMilyem    float64 `json:"laborMilyem"`
	LaborUSD       float64 `json:"laborUsd"`
	Shipping       float64 `json:"shipping"`
	Packaging      float64 `json:"packaging"`
	ServiceFee     float64 `json:"serviceFee"`
	ETaxRate       float64 `json:"eTaxRate"`
	Commission     float64 `json:"commission"`
	StandardProfit float64 `json:"standardProfit"`
	LinedProfit    float64 `json:"linedProfit"`
	ExtraCost      float64 `json:"extraCost"`
}

func settingsFromDefaults(d config.Defaults) settings {
	return settings{
		ProductGram:    d.ProductGram,
		GoldPrice:      d.GoldPrice,
		SilverPrice:    d.SilverPrice,
		LaborMilyem:    d.LaborMilyem,
		LaborUSD:       d.LaborUSD,
		Shipping:       d.Shipping,
		Packaging:      d.Packaging,
		ServiceFee:     d.ServiceFee,
		ETaxRate:       d.ETaxRate,
		Commission:     d.Commission,
		StandardProfit: d.StandardProfit,
		LinedProfit:    d.LinedProfit,
		ExtraCost:      d.ExtraCost,
	}
}

func (st settings) validate() error {
	values := []float64{
		st.ProductGram, st.GoldPrice, st.SilverPrice, st.LaborMilyem,
		st.LaborUSD, st.Shipping, st.Packaging, st.ServiceFee,
		st.ETaxRate, st.Commission, st.StandardProfit, st.LinedProfit,
		st.ExtraCost,
	}
	for _, v := range values {
		if v < 0 {
			return errors.New("settings values must be >= 0")
		}
	}
	if st.Commission > 100 || st.ETaxRate > 100 {
		return errors.New("rates must be between 0 and 100")
	}
	return nil
}

func (s *server) handleSettingsGet(w http.ResponseWriter, r *http.Request) {
	st, err := s.getSettings()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	respondJSON(w, http.StatusOK, st)
}

func (s *server) handleSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	var st settings
	if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := st.validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.updateSettings(st); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}
	respondJSON(w, http.StatusOK, st)
}

func (s *server) ensureSettings(d config.Defaults) error {
	st := settingsFromDefaults(d)
	_, err := s.db.Exec(`
		INSERT INTO settings (
			id,
			product_gram,
			gold_price,
			silver_price,
			labor_milyem,
			labor_usd,
			shipping,
			packaging,
			service_fee,
			e_tax_rate,
			commission,
			standard_profit,
			lined_profit,
			extra_cost
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		st.ProductGram, st.GoldPrice, st.SilverPrice, st.LaborMilyem,
		st.LaborUSD, st.Shipping, st.Packaging, st.ServiceFee,
		st.ETaxRate, st.Commission, st.StandardProfit, st.LinedProfit,
		st.ExtraCost,
	)
	if err != nil {
		return fmt.Errorf("insert default settings: %w", err)
	}
	return nil
}

func (s *server) getSettings() (settings, error) {
	var st settings
	err := s.db.QueryRow(`
		SELECT product_gram, gold_price, silver_price, labor_milyem, labor_usd,
			shipping, packaging, service_fee, e_tax_rate, commission,
			standard_profit, lined_profit, extra_cost
		FROM settings
		WHERE id = 1
	`).Scan(
		&st.ProductGram, &st.GoldPrice, &st.SilverPrice, &st.LaborMilyem,
		&st.LaborUSD, &st.Shipping, &st.Packaging, &st.ServiceFee,
		&st.ETaxRate, &st.Commission, &st.StandardProfit, &st.LinedProfit,
		&st.ExtraCost,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return settings{}, fmt.Errorf("settings singleton not found")
		}
		return settings{}, fmt.Errorf("query settings: %w", err)
	}
	return st, nil
}

func (s *server) updateSettings(st settings) error {
	_, err := s.db.Exec(`
		UPDATE settings
		SET
			product_gram = ?,
			gold_price = ?,
			silver_price = ?,
			labor_milyem = ?,
			labor_usd = ?,
			shipping = ?,
			packaging = ?,
			service_fee = ?,
			e_tax_rate = ?,
			commission = ?,
			standard_profit = ?,
			lined_profit = ?,
			extra_cost = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`,
		st.ProductGram, st.GoldPrice, st.SilverPrice, st.LaborMilyem,
		st.LaborUSD, st.Shipping, st.Packaging, st.ServiceFee,
		st.ETaxRate, st.Commission, st.StandardProfit, st.LinedProfit,
		st.ExtraCost,
	)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}
