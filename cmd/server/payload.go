package main

import (
	"errors"
	"fmt"

	"kuyumhesap/internal/pricing"
)

// Request shapes mirror the storefront client's JSON. The handlers validate
// here; the pricing engine itself never rejects inputs.

type productPayload struct {
	ProductGram         float64 `json:"productGram"`
	LaborMilyem         float64 `json:"laborMilyem"`
	LaborUSD            float64 `json:"laborUsd"`
	LaserCuttingEnabled bool    `json:"laserCuttingEnabled"`
	LaserCuttingMilyem  float64 `json:"laserCuttingMilyem"`
	LaserCuttingUSD     float64 `json:"laserCuttingUsd"`
}

type marketPayload struct {
	GoldPrice   float64 `json:"goldPrice"`
	SilverPrice float64 `json:"silverPrice"`
	USDTRYRate  float64 `json:"usdTryRate"`
}

type expensesPayload struct {
	Shipping         float64 `json:"shipping"`
	Packaging        float64 `json:"packaging"`
	ServiceFee       float64 `json:"serviceFee"`
	ExtraChain       float64 `json:"extraChain"`
	SpecialPackaging float64 `json:"specialPackaging"`
	ECommerceTaxRate float64 `json:"eCommerceTaxRate"`
}

type scenarioPayload struct {
	Name             string  `json:"name"`
	CommissionRate   float64 `json:"commissionRate"`
	SalePrice        float64 `json:"salePrice"`
	TargetProfitRate float64 `json:"targetProfitRate"`
}

type calculateRequest struct {
	Material  string            `json:"material"`
	Product   productPayload    `json:"product"`
	Market    marketPayload     `json:"market"`
	Expenses  expensesPayload   `json:"expenses"`
	Scenarios []scenarioPayload `json:"scenarios"`
}

type standardSalePriceRequest struct {
	Material         string          `json:"material"`
	Product          productPayload  `json:"product"`
	Market           marketPayload   `json:"market"`
	Expenses         expensesPayload `json:"expenses"`
	CommissionRate   float64         `json:"commissionRate"`
	TargetProfitRate float64         `json:"targetProfitRate"`
}

func (req calculateRequest) engineInputs() (pricing.Product, pricing.Market, pricing.Expenses, []pricing.Scenario, error) {
	product, market, expenses, err := buildCommonInputs(req.Material, req.Product, req.Market, req.Expenses)
	if err != nil {
		return nil, pricing.Market{}, pricing.Expenses{}, nil, err
	}

	if len(req.Scenarios) == 0 {
		return nil, pricing.Market{}, pricing.Expenses{}, nil, errors.New("at least one scenario is required")
	}
	scenarios := make([]pricing.Scenario, 0, len(req.Scenarios))
	for _, sc := range req.Scenarios {
		if sc.CommissionRate < 0 || sc.CommissionRate > 100 {
			return nil, pricing.Market{}, pricing.Expenses{}, nil, fmt.Errorf("scenario %q: commissionRate must be between 0 and 100", sc.Name)
		}
		scenarios = append(scenarios, pricing.Scenario{
			Name:             sc.Name,
			CommissionRate:   sc.CommissionRate,
			SalePrice:        sc.SalePrice,
			TargetProfitRate: sc.TargetProfitRate,
		})
	}

	return product, market, expenses, scenarios, nil
}

func (req standardSalePriceRequest) solverInputs() (pricing.Product, pricing.Market, pricing.Expenses, float64, float64, error) {
	product, market, expenses, err := buildCommonInputs(req.Material, req.Product, req.Market, req.Expenses)
	if err != nil {
		return nil, pricing.Market{}, pricing.Expenses{}, 0, 0, err
	}

	commissionRate := req.CommissionRate
	if commissionRate == 0 {
		commissionRate = pricing.DefaultCommissionRate
	}
	targetProfitRate := req.TargetProfitRate
	if targetProfitRate == 0 {
		targetProfitRate = pricing.DefaultTargetProfitRate
	}
	if commissionRate < 0 || commissionRate > 100 {
		return nil, pricing.Market{}, pricing.Expenses{}, 0, 0, errors.New("commissionRate must be between 0 and 100")
	}

	return product, market, expenses, commissionRate, targetProfitRate, nil
}

func buildCommonInputs(material string, p productPayload, m marketPayload, e expensesPayload) (pricing.Product, pricing.Market, pricing.Expenses, error) {
	product, err := buildProduct(material, p, m)
	if err != nil {
		return nil, pricing.Market{}, pricing.Expenses{}, err
	}

	if m.GoldPrice < 0 || m.SilverPrice < 0 {
		return nil, pricing.Market{}, pricing.Expenses{}, errors.New("market prices must be >= 0")
	}
	if e.Shipping < 0 || e.Packaging < 0 || e.ServiceFee < 0 || e.ExtraChain < 0 || e.SpecialPackaging < 0 || e.ECommerceTaxRate < 0 {
		return nil, pricing.Market{}, pricing.Expenses{}, errors.New("expenses must be >= 0")
	}

	market := pricing.Market{
		GoldPrice:   m.GoldPrice,
		SilverPrice: m.SilverPrice,
		USDTRY:      m.USDTRYRate,
	}
	expenses := pricing.Expenses{
		Shipping:         e.Shipping,
		Packaging:        e.Packaging,
		ServiceFee:       e.ServiceFee,
		ExtraChain:       e.ExtraChain,
		SpecialPackaging: e.SpecialPackaging,
		ECommerceTaxRate: e.ECommerceTaxRate,
	}
	return product, market, expenses, nil
}

func buildProduct(material string, p productPayload, m marketPayload) (pricing.Product, error) {
	if p.ProductGram < 0 {
		return nil, errors.New("productGram must be >= 0")
	}

	switch material {
	case "gold":
		if p.LaborMilyem < 0 || p.LaserCuttingMilyem < 0 {
			return nil, errors.New("millème values must be >= 0")
		}
		return pricing.GoldProduct{
			WeightGrams:        p.ProductGram,
			LaborMilyem:        p.LaborMilyem,
			LaserCutting:       p.LaserCuttingEnabled,
			LaserCuttingMilyem: p.LaserCuttingMilyem,
		}, nil
	case "silver":
		if p.LaborUSD < 0 || p.LaserCuttingUSD < 0 {
			return nil, errors.New("labor USD values must be >= 0")
		}
		if m.USDTRYRate <= 0 {
			return nil, errors.New("usdTryRate must be > 0 for silver")
		}
		return pricing.SilverProduct{
			WeightGrams:     p.ProductGram,
			LaborUSD:        p.LaborUSD,
			LaserCutting:    p.LaserCuttingEnabled,
			LaserCuttingUSD: p.LaserCuttingUSD,
		}, nil
	case "wholesale":
		return pricing.WholesaleProduct{WeightGrams: p.ProductGram}, nil
	default:
		return nil, fmt.Errorf("unknown material %q", material)
	}
}
