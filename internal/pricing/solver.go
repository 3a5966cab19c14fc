package pricing

import "math"

// SalePriceForTarget inverts the profit equation and returns the minimum
// sale price in whole TRY that achieves targetProfitRate. Because tax and
// commission scale with the sale price, the equation
//
//	sale = purchase + fixed + tax%·sale + commission%·sale + profit%·sale
//
// rearranges to (purchase + fixed) / (1 - tax% - commission% - profit%).
// The result is always rounded up to the next whole unit, so the achieved
// rate exceeds the target by a sub-unit margin.
//
// When commission, withholding and target profit together reach 100% no
// finite price satisfies the equation. The solver then degrades to raw
// material value plus a 20% markup; that price does not hit the target rate.
// Callers that must detect infeasibility have to recompute the denominator
// themselves, since the fallback is indistinguishable from a real solve.
func SalePriceForTarget(p Product, mkt Market, exp Expenses, commissionRate, targetProfitRate float64) float64 {
	denominator := round4(1 - exp.taxRate()/100 - commissionRate/100 - targetProfitRate/100)
	if denominator <= 0 {
		return math.Ceil(round2(p.rawAmount(mkt) * 1.2))
	}
	return math.Ceil(round2((p.PurchasePrice(mkt) + exp.fixedTotal()) / denominator))
}
