// Package analysis is the core's single public entry point: it runs the
// pattern classifier and trend fitter over a candle sequence, fuses their
// signals, and attaches an options-strategy suggestion. Every call is a pure
// function of its inputs; concurrent callers need no coordination.
package analysis

import (
	"pattern-analyzer/internal/candle"
	"pattern-analyzer/internal/options"
	"pattern-analyzer/internal/patterns"
	"pattern-analyzer/internal/signal"
	"pattern-analyzer/internal/trend"
)

// Options are the caller-supplied knobs. Timeframe is an opaque label echoed
// back in the result. A zero CurrentPrice defaults to the final close; a
// zero ImpliedVolatility defaults to options.DefaultImpliedVolatility.
type Options struct {
	Timeframe         string  `json:"timeframe"`
	CurrentPrice      float64 `json:"current_price"`
	ImpliedVolatility float64 `json:"implied_volatility"`
}

// Result is the terminal output value of one analysis pass.
type Result struct {
	Timeframe           string             `json:"timeframe,omitempty"`
	DetectedPatterns    []patterns.Pattern `json:"detected_patterns"`
	Trend               trend.Analysis     `json:"trend_analysis"`
	OverallSignal       patterns.Signal    `json:"overall_signal"`
	NetScore            float64            `json:"net_score"`
	PatternConfirmation bool               `json:"pattern_confirmation"`
	ConflictingSignals  bool               `json:"conflicting_signals"`
	OptionsSuggestion   options.Result     `json:"options_recommendation"`
}

// Analyze classifies patterns at the final position of the candle sequence,
// fits the trend over the whole window, aggregates both into the overall
// signal, and selects an options strategy. The sequence must be
// chronological, oldest first. An empty sequence is the only rejected input.
func Analyze(candles []candle.Candle, opts Options) (*Result, error) {
	if len(candles) == 0 {
		return nil, candle.ErrNoCandles
	}

	matched := patterns.Detect(candles)
	fitted := trend.Fit(candles)
	fused := signal.Aggregate(matched, fitted)

	price := opts.CurrentPrice
	if price <= 0 {
		price = candles[len(candles)-1].Close
	}

	suggestion := options.Select(options.Input{
		Overall:           fused.Overall,
		Trend:             fitted,
		Patterns:          matched,
		CurrentPrice:      price,
		ImpliedVolatility: opts.ImpliedVolatility,
	})

	return &Result{
		Timeframe:           opts.Timeframe,
		DetectedPatterns:    matched,
		Trend:               fitted,
		OverallSignal:       fused.Overall,
		NetScore:            fused.NetScore,
		PatternConfirmation: fused.PatternConfirmation,
		ConflictingSignals:  fused.ConflictingSignals,
		OptionsSuggestion:   suggestion,
	}, nil
}
