package options

import (
	"reflect"
	"strings"
	"testing"

	"pattern-analyzer/internal/patterns"
	"pattern-analyzer/internal/trend"
)

func strongBullInput() Input {
	return Input{
		Overall: patterns.StrongBuy,
		Trend: trend.Analysis{
			Direction:       trend.Uptrend,
			Strength:        trend.Strong,
			Confidence:      90,
			SupportLevel:    95,
			ResistanceLevel: 110,
		},
		Patterns: []patterns.Pattern{
			{ID: "three-white-soldiers", Type: patterns.Bullish, Reliability: patterns.High, Signal: patterns.StrongBuy, Confidence: 90},
			{ID: "bullish-engulfing", Type: patterns.Bullish, Reliability: patterns.High, Signal: patterns.Buy, Confidence: 85},
		},
		CurrentPrice: 100,
	}
}

func TestSelectDeterministic(t *testing.T) {
	in := strongBullInput()
	a, b := Select(in), Select(in)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs must produce identical results")
	}
}

func TestSelectStrongBuyWithConfirmedTrend(t *testing.T) {
	got := Select(strongBullInput())

	if got.PrimaryStrategy.ID != CallRatioBackspread {
		t.Errorf("primary = %s, want %s", got.PrimaryStrategy.ID, CallRatioBackspread)
	}
	if got.MarketContext.TechnicalBias != "BULLISH" {
		t.Errorf("bias = %s, want BULLISH", got.MarketContext.TechnicalBias)
	}
	if got.MarketContext.RiskLevel != LowRisk {
		t.Errorf("risk = %s, want %s with two patterns and a high-reliability match", got.MarketContext.RiskLevel, LowRisk)
	}
	if got.Recommendations.PositionSize != "5-7% of portfolio" {
		t.Errorf("position size = %q", got.Recommendations.PositionSize)
	}
	if !strings.Contains(got.Recommendations.EntryTiming, "Enter now") {
		t.Errorf("entry timing = %q, want immediate entry with aligned patterns", got.Recommendations.EntryTiming)
	}
}

func TestSelectStrongBuyWithoutHighReliability(t *testing.T) {
	in := strongBullInput()
	in.Patterns = []patterns.Pattern{
		{ID: "hammer", Type: patterns.Bullish, Reliability: patterns.Medium, Signal: patterns.Buy, Confidence: 70},
	}

	got := Select(in)
	if got.PrimaryStrategy.ID != LongCall {
		t.Errorf("primary = %s, want %s without high-reliability backing", got.PrimaryStrategy.ID, LongCall)
	}
	if got.MarketContext.RiskLevel != MediumRisk {
		t.Errorf("risk = %s, want %s", got.MarketContext.RiskLevel, MediumRisk)
	}
}

func TestSelectStrongSellMirror(t *testing.T) {
	in := Input{
		Overall: patterns.StrongSell,
		Trend: trend.Analysis{
			Direction:       trend.Downtrend,
			Confidence:      90,
			SupportLevel:    90,
			ResistanceLevel: 105,
		},
		Patterns: []patterns.Pattern{
			{ID: "three-black-crows", Type: patterns.Bearish, Reliability: patterns.High, Signal: patterns.StrongSell, Confidence: 90},
		},
		CurrentPrice: 100,
	}

	got := Select(in)
	if got.PrimaryStrategy.ID != PutRatioBackspread {
		t.Errorf("primary = %s, want %s", got.PrimaryStrategy.ID, PutRatioBackspread)
	}
	if got.MarketContext.TechnicalBias != "BEARISH" {
		t.Errorf("bias = %s, want BEARISH", got.MarketContext.TechnicalBias)
	}
}

func TestSelectModerateSignalsUseSpreads(t *testing.T) {
	in := Input{
		Overall:      patterns.Buy,
		Trend:        trend.Analysis{Direction: trend.Uptrend, Confidence: 70},
		CurrentPrice: 100,
	}
	if got := Select(in); got.PrimaryStrategy.ID != BullCallSpread {
		t.Errorf("BUY in uptrend: primary = %s, want %s", got.PrimaryStrategy.ID, BullCallSpread)
	}

	in = Input{
		Overall:      patterns.Sell,
		Trend:        trend.Analysis{Direction: trend.Downtrend, Confidence: 70},
		CurrentPrice: 100,
	}
	if got := Select(in); got.PrimaryStrategy.ID != BearPutSpread {
		t.Errorf("SELL in downtrend: primary = %s, want %s", got.PrimaryStrategy.ID, BearPutSpread)
	}
}

func TestSelectReversalBranchSplitsOnVolatility(t *testing.T) {
	in := Input{
		Overall: patterns.NeutralSignal,
		Trend:   trend.Analysis{Direction: trend.Uptrend, Confidence: 60},
		Patterns: []patterns.Pattern{
			{ID: "morning-star", Type: patterns.Reversal, Reliability: patterns.High, Signal: patterns.StrongBuy, Confidence: 90},
		},
		CurrentPrice:      100,
		ImpliedVolatility: 0.12,
	}

	got := Select(in)
	if got.PrimaryStrategy.ID != LongStraddle {
		t.Errorf("low IV reversal: primary = %s, want %s", got.PrimaryStrategy.ID, LongStraddle)
	}
	if got.MarketContext.ImpliedVolatilityBand != LowIV {
		t.Errorf("band = %s, want %s", got.MarketContext.ImpliedVolatilityBand, LowIV)
	}
	// reversal shortens the expiration window
	if got.Recommendations.ExpirationWindow != "10-21 days" {
		t.Errorf("expiration = %q, want shortened window", got.Recommendations.ExpirationWindow)
	}

	in.ImpliedVolatility = 0.35
	got = Select(in)
	if got.PrimaryStrategy.ID != IronButterfly {
		t.Errorf("high IV reversal: primary = %s, want %s", got.PrimaryStrategy.ID, IronButterfly)
	}
	if got.MarketContext.ImpliedVolatilityBand != HighIV {
		t.Errorf("band = %s, want %s", got.MarketContext.ImpliedVolatilityBand, HighIV)
	}
}

func TestSelectSidewaysBranch(t *testing.T) {
	in := Input{
		Overall:           patterns.NeutralSignal,
		Trend:             trend.Analysis{Direction: trend.Sideways, Confidence: 50, SupportLevel: 95, ResistanceLevel: 105},
		CurrentPrice:      100,
		ImpliedVolatility: 0.10,
	}

	got := Select(in)
	if got.PrimaryStrategy.ID != LongStrangle {
		t.Errorf("low IV sideways: primary = %s, want %s", got.PrimaryStrategy.ID, LongStrangle)
	}
	if got.MarketContext.RiskLevel != HighRisk {
		t.Errorf("risk = %s, want %s with no patterns", got.MarketContext.RiskLevel, HighRisk)
	}
	if got.Recommendations.PositionSize != "1-2% of portfolio" {
		t.Errorf("position size = %q", got.Recommendations.PositionSize)
	}

	in.ImpliedVolatility = 0.30
	got = Select(in)
	if got.PrimaryStrategy.ID != IronCondor {
		t.Errorf("high IV sideways: primary = %s, want %s", got.PrimaryStrategy.ID, IronCondor)
	}
}

func TestSelectDefaultsVolatility(t *testing.T) {
	in := Input{
		Overall:      patterns.NeutralSignal,
		Trend:        trend.Analysis{Direction: trend.Sideways, Confidence: 50},
		CurrentPrice: 100,
	}

	// zero IV falls back to the 0.20 default, which lands on the
	// premium-selling side of the threshold
	got := Select(in)
	if got.PrimaryStrategy.ID != IronCondor {
		t.Errorf("default IV sideways: primary = %s, want %s", got.PrimaryStrategy.ID, IronCondor)
	}
	if got.MarketContext.ImpliedVolatilityBand != MediumIV {
		t.Errorf("band = %s, want %s", got.MarketContext.ImpliedVolatilityBand, MediumIV)
	}
}

func TestSelectFallbackIsIronCondor(t *testing.T) {
	// strong signal against the trend with no reversal falls through the
	// whole table
	in := Input{
		Overall:      patterns.StrongBuy,
		Trend:        trend.Analysis{Direction: trend.Downtrend, Confidence: 85},
		CurrentPrice: 100,
	}
	if got := Select(in); got.PrimaryStrategy.ID != IronCondor {
		t.Errorf("fallback primary = %s, want %s", got.PrimaryStrategy.ID, IronCondor)
	}
}

func TestDefinedRiskStructuresNeedNoHedge(t *testing.T) {
	got := Select(strongBullInput())
	if !strings.Contains(got.Recommendations.Hedging, "no additional hedge") {
		t.Errorf("hedging = %q, want defined-risk note for %s", got.Recommendations.Hedging, got.PrimaryStrategy.ID)
	}
}

func TestLookupKnownStrategies(t *testing.T) {
	for _, id := range []string{
		LongCall, LongPut, BullCallSpread, BearPutSpread,
		CallRatioBackspread, PutRatioBackspread,
		LongStraddle, LongStrangle, IronCondor, IronButterfly,
	} {
		s := Lookup(id)
		if s.ID != id {
			t.Errorf("Lookup(%s).ID = %s", id, s.ID)
		}
		if s.Name == "" || s.MaxRisk == "" || s.ExitStrategy == "" {
			t.Errorf("Lookup(%s) has empty metadata", id)
		}
		if len(s.IdealConditions) == 0 {
			t.Errorf("Lookup(%s) has no ideal conditions", id)
		}
	}
}
