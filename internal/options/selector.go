package options

import (
	"fmt"

	"pattern-analyzer/internal/patterns"
	"pattern-analyzer/internal/trend"
)

// DefaultImpliedVolatility is used when the caller supplies no estimate. It
// sits exactly on the long-volatility vs premium-selling branch threshold.
const DefaultImpliedVolatility = 0.20

// volThreshold splits long-volatility entries (below) from premium-selling
// entries (at or above).
const volThreshold = 0.20

// IVBand is the coarse classification of the supplied volatility estimate.
type IVBand string

const (
	LowIV    IVBand = "LOW"
	MediumIV IVBand = "MEDIUM"
	HighIV   IVBand = "HIGH"
)

// RiskLevel grades the suggestion from the evidence backing it.
type RiskLevel string

const (
	LowRisk    RiskLevel = "LOW"
	MediumRisk RiskLevel = "MEDIUM"
	HighRisk   RiskLevel = "HIGH"
)

// Input carries everything the selector needs. CurrentPrice must be
// positive; ImpliedVolatility of zero means "use the default".
type Input struct {
	Overall           patterns.Signal
	Trend             trend.Analysis
	Patterns          []patterns.Pattern
	CurrentPrice      float64
	ImpliedVolatility float64
}

// MarketContext describes the conditions the selection was made under.
type MarketContext struct {
	ImpliedVolatilityBand IVBand    `json:"implied_volatility_band"`
	TechnicalBias         string    `json:"technical_bias"`
	RiskLevel             RiskLevel `json:"risk_level"`
}

// Recommendations are the derived numeric/textual trade parameters.
type Recommendations struct {
	PositionSize     string `json:"position_size"`
	ExpirationWindow string `json:"expiration_window"`
	StrikeSelection  string `json:"strike_selection"`
	EntryTiming      string `json:"entry_timing"`
	Hedging          string `json:"hedging"`
}

// Result is the selector's output: one primary strategy plus ranked
// alternatives and the derived recommendations.
type Result struct {
	PrimaryStrategy       Strategy        `json:"primary_strategy"`
	AlternativeStrategies []Strategy      `json:"alternative_strategies"`
	MarketContext         MarketContext   `json:"market_context"`
	Recommendations       Recommendations `json:"recommendations"`
}

// Select walks the decision table in priority order, first match wins, and
// derives the trade parameters from current price and the trend levels.
// Identical inputs always produce identical output.
func Select(in Input) Result {
	iv := in.ImpliedVolatility
	if iv <= 0 {
		iv = DefaultImpliedVolatility
	}

	hasHighReliability := false
	hasReversal := false
	for _, p := range in.Patterns {
		if p.Reliability == patterns.High {
			hasHighReliability = true
		}
		if p.Type == patterns.Reversal {
			hasReversal = true
		}
	}

	primaryID, altIDs := choose(in, iv, hasHighReliability, hasReversal)

	primary := Lookup(primaryID)
	alts := make([]Strategy, 0, len(altIDs))
	for _, id := range altIDs {
		alts = append(alts, Lookup(id))
	}

	risk := riskLevel(in.Patterns, hasHighReliability)

	return Result{
		PrimaryStrategy:       primary,
		AlternativeStrategies: alts,
		MarketContext: MarketContext{
			ImpliedVolatilityBand: ivBand(iv),
			TechnicalBias:         technicalBias(in.Overall),
			RiskLevel:             risk,
		},
		Recommendations: Recommendations{
			PositionSize:     positionSize(risk),
			ExpirationWindow: expirationWindow(primaryID, hasReversal),
			StrikeSelection:  strikeSelection(primary, in),
			EntryTiming:      entryTiming(in.Patterns),
			Hedging:          hedging(primary, risk, in),
		},
	}
}

// choose implements the selection priority table.
func choose(in Input, iv float64, hasHighReliability, hasReversal bool) (string, []string) {
	strongTrend := in.Trend.Confidence > 80

	switch {
	case in.Overall == patterns.StrongBuy && in.Trend.Direction == trend.Uptrend:
		if hasHighReliability && strongTrend {
			return CallRatioBackspread, []string{LongCall, BullCallSpread}
		}
		return LongCall, []string{BullCallSpread, CallRatioBackspread}

	case in.Overall == patterns.StrongSell && in.Trend.Direction == trend.Downtrend:
		if hasHighReliability && strongTrend {
			return PutRatioBackspread, []string{LongPut, BearPutSpread}
		}
		return LongPut, []string{BearPutSpread, PutRatioBackspread}

	case in.Overall == patterns.Buy && in.Trend.Direction == trend.Uptrend:
		return BullCallSpread, []string{LongCall}

	case in.Overall == patterns.Sell && in.Trend.Direction == trend.Downtrend:
		return BearPutSpread, []string{LongPut}

	case hasReversal:
		if iv < volThreshold {
			return LongStraddle, []string{LongStrangle}
		}
		return IronButterfly, []string{IronCondor}

	case in.Trend.Direction == trend.Sideways &&
		in.Overall != patterns.StrongBuy && in.Overall != patterns.StrongSell:
		if iv < volThreshold {
			return LongStrangle, []string{LongStraddle}
		}
		return IronCondor, []string{IronButterfly}
	}

	return IronCondor, []string{IronButterfly}
}

func ivBand(iv float64) IVBand {
	switch {
	case iv < 0.15:
		return LowIV
	case iv <= 0.25:
		return MediumIV
	default:
		return HighIV
	}
}

func technicalBias(s patterns.Signal) string {
	switch s {
	case patterns.StrongBuy, patterns.Buy:
		return "BULLISH"
	case patterns.StrongSell, patterns.Sell:
		return "BEARISH"
	default:
		return "NEUTRAL"
	}
}

// riskLevel grades the evidence: multiple patterns with a high-reliability
// match is the best footing, no patterns at all the worst.
func riskLevel(matched []patterns.Pattern, hasHighReliability bool) RiskLevel {
	switch {
	case len(matched) >= 2 && hasHighReliability:
		return LowRisk
	case len(matched) >= 1:
		return MediumRisk
	default:
		return HighRisk
	}
}

func positionSize(risk RiskLevel) string {
	switch risk {
	case LowRisk:
		return "5-7% of portfolio"
	case MediumRisk:
		return "3-5% of portfolio"
	default:
		return "1-2% of portfolio"
	}
}

// expirationWindow is a fixed per-strategy lookup, shortened when reversal
// patterns suggest the move resolves quickly.
func expirationWindow(id string, hasReversal bool) string {
	windows := map[string]string{
		LongCall:            "30-45 days",
		LongPut:             "30-45 days",
		BullCallSpread:      "30-60 days",
		BearPutSpread:       "30-60 days",
		CallRatioBackspread: "45-60 days",
		PutRatioBackspread:  "45-60 days",
		LongStraddle:        "20-30 days",
		LongStrangle:        "20-30 days",
		IronCondor:          "30-45 days",
		IronButterfly:       "20-30 days",
	}
	short := map[string]string{
		LongCall:            "14-30 days",
		LongPut:             "14-30 days",
		BullCallSpread:      "21-40 days",
		BearPutSpread:       "21-40 days",
		CallRatioBackspread: "30-45 days",
		PutRatioBackspread:  "30-45 days",
		LongStraddle:        "10-21 days",
		LongStrangle:        "10-21 days",
		IronCondor:          "21-30 days",
		IronButterfly:       "14-21 days",
	}
	if hasReversal {
		return short[id]
	}
	return windows[id]
}

// strikeSelection derives concrete strike text from the current price and
// the trend's support/resistance levels.
func strikeSelection(primary Strategy, in Input) string {
	price := in.CurrentPrice
	support := in.Trend.SupportLevel
	resistance := in.Trend.ResistanceLevel

	switch primary.Type {
	case BullishStrategy:
		target := resistance
		if target <= price {
			target = price * 1.05
		}
		return fmt.Sprintf(
			"Buy near-the-money around %.2f; short/target strikes 2-5%% higher (%.2f-%.2f), capped by resistance at %.2f",
			price, price*1.02, price*1.05, target)
	case BearishStrategy:
		target := support
		if target <= 0 || target >= price {
			target = price * 0.95
		}
		return fmt.Sprintf(
			"Buy near-the-money around %.2f; short/target strikes 2-5%% lower (%.2f-%.2f), floored by support at %.2f",
			price, price*0.98, price*0.95, target)
	case VolatilityStrategy:
		return fmt.Sprintf(
			"Center at %.2f; for strangles place wings near +/-5%% (%.2f / %.2f)",
			price, price*0.95, price*1.05)
	default:
		putSide := support
		if putSide <= 0 {
			putSide = price * 0.93
		}
		callSide := resistance
		if callSide <= 0 {
			callSide = price * 1.07
		}
		return fmt.Sprintf(
			"Sell the range: put side near support %.2f, call side near resistance %.2f, wings 2-3%% beyond",
			putSide, callSide)
	}
}

// entryTiming comes from pattern count and average confidence.
func entryTiming(matched []patterns.Pattern) string {
	if len(matched) == 0 {
		return "Wait for a confirmed pattern before entering"
	}
	total := 0
	for _, p := range matched {
		total += p.Confidence
	}
	avg := total / len(matched)
	if avg >= 80 && len(matched) >= 2 {
		return "Enter now; multiple high-confidence patterns are aligned"
	}
	return "Enter after the next candle confirms the pattern direction"
}

// hedging depends on whether the structure already defines its risk.
func hedging(primary Strategy, risk RiskLevel, in Input) string {
	switch primary.ID {
	case BullCallSpread, BearPutSpread, IronCondor, IronButterfly,
		CallRatioBackspread, PutRatioBackspread:
		return "Risk is defined by the structure; no additional hedge required"
	}
	if risk == HighRisk {
		return "Keep premium at risk within the position size; exit on a close beyond the invalid level"
	}
	level := in.Trend.SupportLevel
	if primary.Type == BearishStrategy {
		level = in.Trend.ResistanceLevel
	}
	if level > 0 {
		return fmt.Sprintf("Invalidate the position on a close through %.2f", level)
	}
	return "Limit exposure to the premium paid; no underlying hedge required"
}
