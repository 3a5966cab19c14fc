package pricing

// Expenses is the fixed per-sale cost bundle. All amounts are TRY.
type Expenses struct {
	Shipping         float64
	Packaging        float64
	ServiceFee       float64
	ExtraChain       float64
	SpecialPackaging float64
	// ECommerceTaxRate is the e-commerce withholding rate in percent. A zero
	// value falls back to 1.00, so a true zero-tax scenario is currently not
	// expressible. Kept compatible with the reference sheet; see DESIGN.md.
	ECommerceTaxRate float64
}

func (e Expenses) taxRate() float64 {
	if e.ECommerceTaxRate == 0 {
		return defaultTaxRate
	}
	return e.ECommerceTaxRate
}

// fixedTotal is the sale-price-independent portion of the expenses.
// Withholding tax scales with sale price and is excluded.
func (e Expenses) fixedTotal() float64 {
	return e.Shipping + e.Packaging + e.ServiceFee + e.ExtraChain + e.SpecialPackaging
}

// Kind classifies a scenario by pricing behavior. Auto-priced kinds get
// their sale price recomputed from the target profit rate whenever inputs
// change; Custom keeps whatever price the caller set.
type Kind int

const (
	KindCustom Kind = iota
	KindStandard
	KindLined
)

// Sentinel display names carried over from the Turkish storefront UI.
const (
	NameStandard = "Standart"
	NameLined    = "Astarlı Ürün"
)

// KindOf maps the sentinel names to their kind; every other name is Custom.
func KindOf(name string) Kind {
	switch name {
	case NameStandard:
		return KindStandard
	case NameLined:
		return KindLined
	default:
		return KindCustom
	}
}

// Scenario is one named sales channel: a commission rate plus a sale price.
// TargetProfitRate is consulted only when the scenario's kind is auto-priced.
type Scenario struct {
	Name             string
	CommissionRate   float64 // percent of sale price
	SalePrice        float64 // TRY
	TargetProfitRate float64 // percent
}

func (s Scenario) Kind() Kind { return KindOf(s.Name) }
