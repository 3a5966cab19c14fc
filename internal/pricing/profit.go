package pricing

// Rates applied when a caller leaves the corresponding field unset.
const (
	DefaultCommissionRate   = 22.0
	DefaultTargetProfitRate = 15.0
	DefaultLinedProfitRate  = 20.0

	defaultTaxRate = 1.00

	// referenceProfitRate anchors the optimum score. Domain policy shared by
	// all three material variants; not configurable.
	referenceProfitRate = 15.0
)

// Result is the computed outcome for one scenario. It echoes the scenario's
// identity and then the derived figures; it is a read-only snapshot.
type Result struct {
	Platform         string  `json:"platform"`
	CommissionRate   float64 `json:"commissionRate"`
	SalePrice        float64 `json:"salePrice"`
	CommissionAmount float64 `json:"commissionAmount"`
	TotalExpenses    float64 `json:"totalExpenses"`
	NetProfit        float64 `json:"netProfit"`
	ProfitRate       float64 `json:"profitRate"`
	BankDeposit      float64 `json:"bankDeposit"`
	PurchasePrice    float64 `json:"purchasePrice"`
	OptimumScore     float64 `json:"optimumScore"`
}

// Profit computes the outcome of selling p through the given scenario. Pure:
// identical inputs always produce identical results.
//
// The engine does not validate inputs. A zero sale price yields a non-finite
// ProfitRate instead of an error; callers wanting to reject that case must
// check SalePrice before calling, or inspect the result with math.IsInf and
// math.IsNaN.
func Profit(p Product, mkt Market, exp Expenses, sc Scenario) Result {
	purchasePrice := p.PurchasePrice(mkt)

	commission := round2(sc.SalePrice * sc.CommissionRate / 100)
	taxAmount := round2(sc.SalePrice * exp.taxRate() / 100)

	totalExpenses := round2(exp.Shipping + exp.Packaging + taxAmount + exp.ServiceFee + exp.ExtraChain + exp.SpecialPackaging)
	totalCost := round2(purchasePrice + totalExpenses + commission)
	netProfit := round2(sc.SalePrice - totalCost)
	profitRate := round4(netProfit / sc.SalePrice * 100)

	// Cash received on settlement: only commission, shipping and withholding
	// are netted out. Narrower than net profit; do not conflate the two.
	bankDeposit := round2(sc.SalePrice - (commission + exp.Shipping + taxAmount))

	return Result{
		Platform:         sc.Name,
		CommissionRate:   sc.CommissionRate,
		SalePrice:        sc.SalePrice,
		CommissionAmount: commission,
		TotalExpenses:    totalExpenses,
		NetProfit:        netProfit,
		ProfitRate:       profitRate,
		BankDeposit:      bankDeposit,
		PurchasePrice:    purchasePrice,
		OptimumScore:     optimumScore(p, mkt, exp, sc, profitRate),
	}
}

// optimumScore normalizes a scenario against the sale price a 15%-profit
// sale would need at the same commission rate. A scenario priced above that
// reference while still holding a high profit rate scores above 100.
func optimumScore(p Product, mkt Market, exp Expenses, sc Scenario, profitRate float64) float64 {
	reference := SalePriceForTarget(p, mkt, exp, sc.CommissionRate, referenceProfitRate)
	coefficient := 1.0
	if reference > 0 {
		coefficient = round4(sc.SalePrice / reference)
	}
	return round2(profitRate / referenceProfitRate * coefficient * 100)
}
