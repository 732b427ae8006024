// Package signal fuses pattern matches with the fitted trend into a single
// five-level directional recommendation.
package signal

import (
	"pattern-analyzer/internal/patterns"
	"pattern-analyzer/internal/trend"
)

// trendWeight is the fixed weight of the trend term relative to the
// reliability-tier weights of individual patterns.
const trendWeight = 2.0

// Summary is the fused result of one aggregation pass.
type Summary struct {
	Overall             patterns.Signal `json:"overall_signal"`
	NetScore            float64         `json:"net_score"`
	BullishScore        float64         `json:"bullish_score"`
	BearishScore        float64         `json:"bearish_score"`
	TotalWeight         float64         `json:"total_weight"`
	PatternConfirmation bool            `json:"pattern_confirmation"`
	ConflictingSignals  bool            `json:"conflicting_signals"`
}

// Aggregate accumulates each pattern's reliability weight, scaled by its
// confidence, into a bullish or bearish bucket, adds the fixed trend term,
// and maps the normalized net score onto the five-level signal. Neutral
// patterns and a sideways trend feed no bucket but still dilute the total
// weight, so indecision pulls the result toward NEUTRAL.
func Aggregate(matched []patterns.Pattern, tr trend.Analysis) Summary {
	var s Summary

	for _, p := range matched {
		w := p.Reliability.Weight()
		s.TotalWeight += w
		scaled := w * float64(p.Confidence) / 100
		switch {
		case p.IsBullishLeaning():
			s.BullishScore += scaled
		case p.IsBearishLeaning():
			s.BearishScore += scaled
		}
	}

	s.TotalWeight += trendWeight
	trendScaled := trendWeight * float64(tr.Confidence) / 100
	switch tr.Direction {
	case trend.Uptrend:
		s.BullishScore += trendScaled
	case trend.Downtrend:
		s.BearishScore += trendScaled
	}

	if s.TotalWeight > 0 {
		s.NetScore = (s.BullishScore - s.BearishScore) / s.TotalWeight
	}

	s.Overall = mapSignal(s.NetScore)
	s.PatternConfirmation = confirmation(matched, tr.Direction)
	s.ConflictingSignals = conflicting(matched)

	return s
}

// mapSignal applies the fixed net-score cut points.
func mapSignal(net float64) patterns.Signal {
	switch {
	case net > 0.6:
		return patterns.StrongBuy
	case net > 0.2:
		return patterns.Buy
	case net < -0.6:
		return patterns.StrongSell
	case net < -0.2:
		return patterns.Sell
	default:
		return patterns.NeutralSignal
	}
}

// confirmation is true when at least one pattern leans the same way as a
// directional trend.
func confirmation(matched []patterns.Pattern, direction trend.Direction) bool {
	for _, p := range matched {
		if direction == trend.Uptrend && p.IsBullishLeaning() {
			return true
		}
		if direction == trend.Downtrend && p.IsBearishLeaning() {
			return true
		}
	}
	return false
}

// conflicting is true when bullish- and bearish-leaning patterns coexist,
// regardless of trend.
func conflicting(matched []patterns.Pattern) bool {
	hasBull, hasBear := false, false
	for _, p := range matched {
		if p.IsBullishLeaning() {
			hasBull = true
		}
		if p.IsBearishLeaning() {
			hasBear = true
		}
	}
	return hasBull && hasBear
}
