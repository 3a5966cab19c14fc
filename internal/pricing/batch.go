package pricing

import (
	"regexp"
	"sort"
	"strconv"
)

var scenarioNumber = regexp.MustCompile(`Senaryo (\d+)`)

// ProfitAll computes every scenario and returns the results in canonical
// display order: "Standart" first, numbered "Senaryo N" entries ascending,
// everything else alphabetically. Ordering is a presentation convention
// only; each result is computed independently of its position.
func ProfitAll(p Product, mkt Market, exp Expenses, scenarios []Scenario) []Result {
	ordered := make([]Scenario, len(scenarios))
	copy(ordered, scenarios)
	sort.SliceStable(ordered, func(i, j int) bool {
		return scenarioLess(ordered[i].Name, ordered[j].Name)
	})

	results := make([]Result, 0, len(ordered))
	for _, sc := range ordered {
		results = append(results, Profit(p, mkt, exp, sc))
	}
	return results
}

func scenarioLess(a, b string) bool {
	if a == NameStandard || b == NameStandard {
		return a == NameStandard && b != NameStandard
	}
	na, aNumbered := scenarioOrdinal(a)
	nb, bNumbered := scenarioOrdinal(b)
	switch {
	case aNumbered && bNumbered:
		return na < nb
	case aNumbered != bNumbered:
		return aNumbered
	default:
		return a < b
	}
}

func scenarioOrdinal(name string) (int, bool) {
	m := scenarioNumber.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// RefreshAutoPrices recomputes the sale price of auto-priced scenarios
// (Standard and Lined) from their target profit rate via the solver,
// leaving Custom scenarios untouched. Unset commission and target rates
// fall back to the channel defaults (lined products target 20%, standard
// 15%). The input slice is not modified.
func RefreshAutoPrices(p Product, mkt Market, exp Expenses, scenarios []Scenario) []Scenario {
	out := make([]Scenario, len(scenarios))
	copy(out, scenarios)
	for i, sc := range out {
		kind := sc.Kind()
		if kind == KindCustom {
			continue
		}

		commission := sc.CommissionRate
		if commission == 0 {
			commission = DefaultCommissionRate
		}
		target := sc.TargetProfitRate
		if target == 0 {
			if kind == KindLined {
				target = DefaultLinedProfitRate
			} else {
				target = DefaultTargetProfitRate
			}
		}

		out[i].CommissionRate = commission
		out[i].TargetProfitRate = target
		out[i].SalePrice = SalePriceForTarget(p, mkt, exp, commission, target)
	}
	return out
}
