// Command calc computes a single pricing scenario from the command line and
// prints a formatted breakdown. Handy for spot-checking a price without
// running the server.
package main

import (
	"flag"
	"fmt"
	"os"

	"kuyumhesap/internal/format"
	"kuyumhesap/internal/pricing"
)

func main() {
	material := flag.String("material", "gold", "material variant: gold, silver or wholesale")
	gram := flag.Float64("gram", 0.80, "product weight in grams")
	laborMilyem := flag.Float64("labor-milyem", 0.050, "gold labor in millème")
	laborUSD := flag.Float64("labor-usd", 0.50, "silver labor in USD")
	goldPrice := flag.Float64("gold-price", 5900, "gold price, TRY per gram")
	silverPrice := flag.Float64("silver-price", 100, "silver price, TRY per gram")
	usdTry := flag.Float64("usdtry", 35, "USD/TRY exchange rate")
	shipping := flag.Float64("shipping", 120, "shipping cost, TRY")
	packaging := flag.Float64("packaging", 120, "packaging cost, TRY")
	serviceFee := flag.Float64("service-fee", 20, "service fee, TRY")
	taxRate := flag.Float64("tax-rate", 1.00, "e-commerce withholding rate, percent")
	commission := flag.Float64("commission", pricing.DefaultCommissionRate, "commission rate, percent")
	salePrice := flag.Float64("sale-price", 0, "sale price, TRY; 0 solves for the standard target")
	targetProfit := flag.Float64("target-profit", pricing.DefaultTargetProfitRate, "target profit rate for the solve, percent")
	flag.Parse()

	var product pricing.Product
	switch *material {
	case "gold":
		product = pricing.GoldProduct{WeightGrams: *gram, LaborMilyem: *laborMilyem}
	case "silver":
		product = pricing.SilverProduct{WeightGrams: *gram, LaborUSD: *laborUSD}
	case "wholesale":
		product = pricing.WholesaleProduct{WeightGrams: *gram}
	default:
		fmt.Fprintf(os.Stderr, "unknown material %q\n", *material)
		os.Exit(2)
	}

	market := pricing.Market{GoldPrice: *goldPrice, SilverPrice: *silverPrice, USDTRY: *usdTry}
	expenses := pricing.Expenses{
		Shipping:         *shipping,
		Packaging:        *packaging,
		ServiceFee:       *serviceFee,
		ECommerceTaxRate: *taxRate,
	}

	price := *salePrice
	if price <= 0 {
		price = pricing.SalePriceForTarget(product, market, expenses, *commission, *targetProfit)
		fmt.Printf("solved sale price for %s target: %s\n", format.Percent(*targetProfit), format.TL(price, 0))
	}

	result := pricing.Profit(product, market, expenses, pricing.Scenario{
		Name:           pricing.NameStandard,
		CommissionRate: *commission,
		SalePrice:      price,
	})

	fmt.Printf("purchase price   %s\n", format.TL(result.PurchasePrice, 2))
	fmt.Printf("sale price       %s\n", format.TL(result.SalePrice, 0))
	fmt.Printf("commission       %s\n", format.TL(result.CommissionAmount, 2))
	fmt.Printf("total expenses   %s\n", format.TL(result.TotalExpenses, 2))
	fmt.Printf("net profit       %s\n", format.TL(result.NetProfit, 2))
	fmt.Printf("profit rate      %s\n", format.Percent(result.ProfitRate))
	fmt.Printf("bank deposit     %s\n", format.TL(result.BankDeposit, 2))
	fmt.Printf("optimum score    %s\n", format.Number(result.OptimumScore))
}
