package pricing

// Fineness constants fixed by trade convention. These are domain constants,
// never user inputs.
const (
	goldFineness14K   = 0.585
	silverFineness925 = 0.925
)

// Market carries the current per-gram metal prices in TRY and the USD/TRY
// rate used to localize silver labor.
type Market struct {
	GoldPrice   float64 // TRY per gram of pure gold
	SilverPrice float64 // TRY per gram of pure silver
	USDTRY      float64
}

// Product converts physical product attributes into a TRY cost basis. The
// three implementations combine labor differently on purpose: gold embeds it
// in the millème fraction, silver adds it as a separate localized amount,
// wholesale trades raw weight with no adjustment at all. The asymmetry is
// business convention, not an inconsistency.
type Product interface {
	// PurchasePrice is the cost basis in TRY for one unit.
	PurchasePrice(mkt Market) float64
	// rawAmount is weight times the bare gram price, the basis for the
	// solver's infeasibility fallback.
	rawAmount(mkt Market) float64
}

// GoldProduct is a retail 14-karat gold item. Labor and the optional laser
// cutting surcharge are expressed in millème (parts-per-thousand of product
// weight attributed to labor).
type GoldProduct struct {
	WeightGrams        float64
	LaborMilyem        float64
	LaserCutting       bool
	LaserCuttingMilyem float64
}

// PureGoldGrams is the pure-metal-equivalent weight: labor millème plus the
// fixed 14-karat fineness, applied to the product weight.
func (g GoldProduct) PureGoldGrams() float64 {
	milyem := g.LaborMilyem
	if g.LaserCutting {
		milyem += g.LaserCuttingMilyem
	}
	return round4((milyem + goldFineness14K) * g.WeightGrams)
}

func (g GoldProduct) PurchasePrice(mkt Market) float64 {
	// Labor already lives inside the millème fraction; nothing is added.
	return round2(g.PureGoldGrams() * mkt.GoldPrice)
}

func (g GoldProduct) rawAmount(mkt Market) float64 {
	return g.WeightGrams * mkt.GoldPrice
}

// SilverProduct is a retail 925 silver item. Unlike gold, labor is not part
// of the fineness fraction; it is quoted in USD and added on top after
// conversion through the USD/TRY rate.
type SilverProduct struct {
	WeightGrams     float64
	LaborUSD        float64
	LaserCutting    bool
	LaserCuttingUSD float64
}

func (s SilverProduct) PureSilverGrams() float64 {
	return round4(silverFineness925 * s.WeightGrams)
}

// LaborCost is the localized labor charge in TRY.
func (s SilverProduct) LaborCost(mkt Market) float64 {
	usd := s.LaborUSD
	if s.LaserCutting {
		usd += s.LaserCuttingUSD
	}
	return round2(usd * mkt.USDTRY)
}

func (s SilverProduct) PurchasePrice(mkt Market) float64 {
	productAmount := round2(s.PureSilverGrams() * mkt.SilverPrice)
	return round2(productAmount + s.LaborCost(mkt))
}

func (s SilverProduct) rawAmount(mkt Market) float64 {
	return s.WeightGrams * mkt.SilverPrice
}

// WholesaleProduct is bullion-equivalent gold traded by raw weight; no
// fineness or labor adjustment applies.
type WholesaleProduct struct {
	WeightGrams float64
}

func (w WholesaleProduct) PurchasePrice(mkt Market) float64 {
	return round2(w.WeightGrams * mkt.GoldPrice)
}

func (w WholesaleProduct) rawAmount(mkt Market) float64 {
	return w.WeightGrams * mkt.GoldPrice
}
