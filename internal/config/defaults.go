package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults is the on-disk pricing defaults shape (YAML). It seeds the
// settings row on first boot; after that the stored settings win.
type Defaults struct {
	ProductGram    float64 `yaml:"product_gram"`
	GoldPrice      float64 `yaml:"gold_price"`
	SilverPrice    float64 `yaml:"silver_price"`
	LaborMilyem    float64 `yaml:"labor_milyem"`
	LaborUSD       float64 `yaml:"labor_usd"`
	Shipping       float64 `yaml:"shipping"`
	Packaging      float64 `yaml:"packaging"`
	ServiceFee     float64 `yaml:"service_fee"`
	ETaxRate       float64 `yaml:"e_tax_rate"`
	Commission     float64 `yaml:"commission"`
	StandardProfit float64 `yaml:"standard_profit"`
	LinedProfit    float64 `yaml:"lined_profit"`
	ExtraCost      float64 `yaml:"extra_cost"`
}

// builtinDefaults mirrors the storefront's factory settings.
var builtinDefaults = Defaults{
	ProductGram:    0.80,
	GoldPrice:      5900,
	SilverPrice:    100,
	LaborMilyem:    0.050,
	LaborUSD:       0.50,
	Shipping:       120,
	Packaging:      120,
	ServiceFee:     20,
	ETaxRate:       1.00,
	Commission:     22,
	StandardProfit: 15,
	LinedProfit:    20,
	ExtraCost:      150,
}

// LoadDefaults reads the pricing defaults file at path. A missing file is
// not an error; the builtin defaults apply. Fields absent from the file keep
// their builtin value.
func LoadDefaults(path string) (Defaults, error) {
	d := builtinDefaults

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return d, nil
		}
		return d, fmt.Errorf("read pricing defaults: %w", err)
	}

	if err := yaml.Unmarshal(raw, &d); err != nil {
		return builtinDefaults, fmt.Errorf("parse pricing defaults: %w", err)
	}
	return d, nil
}
