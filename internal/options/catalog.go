// Package options maps an aggregated technical signal onto a concrete
// options-strategy suggestion from a fixed catalog. It is a decision table
// plus string arithmetic, not a pricing model.
package options

import "sort"

// StrategyType is the directional character of a catalog entry.
type StrategyType string

const (
	BullishStrategy    StrategyType = "BULLISH"
	BearishStrategy    StrategyType = "BEARISH"
	NeutralStrategy    StrategyType = "NEUTRAL"
	VolatilityStrategy StrategyType = "VOLATILITY"
)

// Complexity is the experience tier a strategy is suited to.
type Complexity string

const (
	Beginner     Complexity = "BEGINNER"
	Intermediate Complexity = "INTERMEDIATE"
	Advanced     Complexity = "ADVANCED"
)

// Strategy is a static catalog descriptor. The selector only ever chooses
// among these entries; it never invents new ones. SuccessProbability is a
// fixed historical estimate, a design constant like pattern confidence.
type Strategy struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	Type               StrategyType `json:"type"`
	Complexity         Complexity   `json:"complexity"`
	MaxRisk            string       `json:"max_risk"`
	MaxProfit          string       `json:"max_profit"`
	Breakeven          string       `json:"breakeven"`
	TimeDecay          string       `json:"time_decay"`
	VolatilityImpact   string       `json:"volatility_impact"`
	SuccessProbability int          `json:"success_probability"`
	IdealConditions    []string     `json:"ideal_conditions"`
	ExitStrategy       string       `json:"exit_strategy"`
	Adjustments        string       `json:"adjustments"`
}

const (
	LongCall            = "long-call"
	LongPut             = "long-put"
	BullCallSpread      = "bull-call-spread"
	BearPutSpread       = "bear-put-spread"
	CallRatioBackspread = "call-ratio-backspread"
	PutRatioBackspread  = "put-ratio-backspread"
	LongStraddle        = "long-straddle"
	LongStrangle        = "long-strangle"
	IronCondor          = "iron-condor"
	IronButterfly       = "iron-butterfly"
)

var catalog = map[string]Strategy{
	LongCall: {
		ID:                 LongCall,
		Name:               "Long Call",
		Type:               BullishStrategy,
		Complexity:         Beginner,
		MaxRisk:            "Premium paid",
		MaxProfit:          "Unlimited above breakeven",
		Breakeven:          "Strike + premium paid",
		TimeDecay:          "Works against the position",
		VolatilityImpact:   "Rising IV helps, falling IV hurts",
		SuccessProbability: 45,
		IdealConditions:    []string{"Strong bullish signal", "Rising or stable IV", "Clear upside room to resistance"},
		ExitStrategy:       "Exit at 50-100% gain or when the bullish signal invalidates",
		Adjustments:        "Roll up and out if the move extends; convert to a spread to lock in gains",
	},
	LongPut: {
		ID:                 LongPut,
		Name:               "Long Put",
		Type:               BearishStrategy,
		Complexity:         Beginner,
		MaxRisk:            "Premium paid",
		MaxProfit:          "Substantial, down to a zero underlying",
		Breakeven:          "Strike - premium paid",
		TimeDecay:          "Works against the position",
		VolatilityImpact:   "Rising IV helps, falling IV hurts",
		SuccessProbability: 45,
		IdealConditions:    []string{"Strong bearish signal", "Rising or stable IV", "Clear downside room to support"},
		ExitStrategy:       "Exit at 50-100% gain or when the bearish signal invalidates",
		Adjustments:        "Roll down and out if the move extends; convert to a spread to lock in gains",
	},
	BullCallSpread: {
		ID:                 BullCallSpread,
		Name:               "Bull Call Spread",
		Type:               BullishStrategy,
		Complexity:         Intermediate,
		MaxRisk:            "Net debit paid",
		MaxProfit:          "Strike width - net debit",
		Breakeven:          "Long strike + net debit",
		TimeDecay:          "Mildly against the position",
		VolatilityImpact:   "Largely neutral to IV changes",
		SuccessProbability: 55,
		IdealConditions:    []string{"Moderate bullish signal", "Defined upside target", "Elevated option premiums"},
		ExitStrategy:       "Take profit at 50-75% of max value; close before the final week",
		Adjustments:        "Roll the short leg up if the underlying runs through it",
	},
	BearPutSpread: {
		ID:                 BearPutSpread,
		Name:               "Bear Put Spread",
		Type:               BearishStrategy,
		Complexity:         Intermediate,
		MaxRisk:            "Net debit paid",
		MaxProfit:          "Strike width - net debit",
		Breakeven:          "Long strike - net debit",
		TimeDecay:          "Mildly against the position",
		VolatilityImpact:   "Largely neutral to IV changes",
		SuccessProbability: 55,
		IdealConditions:    []string{"Moderate bearish signal", "Defined downside target", "Elevated option premiums"},
		ExitStrategy:       "Take profit at 50-75% of max value; close before the final week",
		Adjustments:        "Roll the short leg down if the underlying runs through it",
	},
	CallRatioBackspread: {
		ID:                 CallRatioBackspread,
		Name:               "Call Ratio Backspread",
		Type:               BullishStrategy,
		Complexity:         Advanced,
		MaxRisk:            "Limited; worst case near the long strikes at expiration",
		MaxProfit:          "Unlimited on a strong rally",
		Breakeven:          "Upper breakeven at long strike + spread width - net credit",
		TimeDecay:          "Against the position near the strikes",
		VolatilityImpact:   "Strongly helped by rising IV",
		SuccessProbability: 40,
		IdealConditions:    []string{"Strong bullish signal with high-reliability pattern", "Confirmed uptrend", "Expectation of an accelerating move"},
		ExitStrategy:       "Exit on the measured move to resistance or if the trend confidence drops",
		Adjustments:        "Close the short leg early if the rally stalls at the short strike",
	},
	PutRatioBackspread: {
		ID:                 PutRatioBackspread,
		Name:               "Put Ratio Backspread",
		Type:               BearishStrategy,
		Complexity:         Advanced,
		MaxRisk:            "Limited; worst case near the long strikes at expiration",
		MaxProfit:          "Substantial on a strong decline",
		Breakeven:          "Lower breakeven at long strike - spread width + net credit",
		TimeDecay:          "Against the position near the strikes",
		VolatilityImpact:   "Strongly helped by rising IV",
		SuccessProbability: 40,
		IdealConditions:    []string{"Strong bearish signal with high-reliability pattern", "Confirmed downtrend", "Expectation of an accelerating move"},
		ExitStrategy:       "Exit on the measured move to support or if the trend confidence drops",
		Adjustments:        "Close the short leg early if the decline stalls at the short strike",
	},
	LongStraddle: {
		ID:                 LongStraddle,
		Name:               "Long Straddle",
		Type:               VolatilityStrategy,
		Complexity:         Intermediate,
		MaxRisk:            "Total premium paid",
		MaxProfit:          "Unlimited either direction beyond the breakevens",
		Breakeven:          "Strike +/- total premium",
		TimeDecay:          "Strongly against the position",
		VolatilityImpact:   "Strongly helped by rising IV",
		SuccessProbability: 40,
		IdealConditions:    []string{"Reversal pattern with unclear direction", "Low IV relative to expected movement", "Catalyst expected inside the expiration window"},
		ExitStrategy:       "Exit the winning leg on a decisive break; cut at 50% premium loss",
		Adjustments:        "Leg out of the losing side once direction is confirmed",
	},
	LongStrangle: {
		ID:                 LongStrangle,
		Name:               "Long Strangle",
		Type:               VolatilityStrategy,
		Complexity:         Intermediate,
		MaxRisk:            "Total premium paid",
		MaxProfit:          "Unlimited either direction beyond the breakevens",
		Breakeven:          "Call strike + premium / put strike - premium",
		TimeDecay:          "Strongly against the position",
		VolatilityImpact:   "Strongly helped by rising IV",
		SuccessProbability: 38,
		IdealConditions:    []string{"Rangebound price with cheap wings", "Low IV", "Expected breakout from the range"},
		ExitStrategy:       "Exit on a decisive range break; cut at 50% premium loss",
		Adjustments:        "Roll strikes toward price if the range drifts",
	},
	IronCondor: {
		ID:                 IronCondor,
		Name:               "Iron Condor",
		Type:               NeutralStrategy,
		Complexity:         Intermediate,
		MaxRisk:            "Wing width - net credit",
		MaxProfit:          "Net credit received",
		Breakeven:          "Short strikes +/- net credit",
		TimeDecay:          "Works for the position",
		VolatilityImpact:   "Helped by falling IV",
		SuccessProbability: 65,
		IdealConditions:    []string{"Sideways trend", "High IV to sell", "Well-defined support and resistance"},
		ExitStrategy:       "Take profit at 50% of the credit; exit if a short strike is threatened",
		Adjustments:        "Roll the threatened side away from price; keep wings balanced",
	},
	IronButterfly: {
		ID:                 IronButterfly,
		Name:               "Iron Butterfly",
		Type:               NeutralStrategy,
		Complexity:         Advanced,
		MaxRisk:            "Wing width - net credit",
		MaxProfit:          "Net credit received",
		Breakeven:          "Body strike +/- net credit",
		TimeDecay:          "Works for the position",
		VolatilityImpact:   "Helped by falling IV",
		SuccessProbability: 60,
		IdealConditions:    []string{"Reversal exhaustion near a level", "High IV to sell", "Expectation of a pin near the current price"},
		ExitStrategy:       "Take profit at 25-50% of the credit; exit on a decisive break of either wing",
		Adjustments:        "Convert to an iron condor by widening the body if price drifts",
	},
}

// Lookup returns a catalog entry by ID. The catalog is a closed set; asking
// for an unknown ID is a programming error and panics.
func Lookup(id string) Strategy {
	s, ok := catalog[id]
	if !ok {
		panic("options: unknown strategy id " + id)
	}
	return s
}

// Catalog returns every strategy, sorted by ID.
func Catalog() []Strategy {
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]Strategy, 0, len(ids))
	for _, id := range ids {
		out = append(out, catalog[id])
	}
	return out
}
