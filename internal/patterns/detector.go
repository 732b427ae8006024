package patterns

import (
	"pattern-analyzer/internal/candle"
)

// Type classifies the directional character of a pattern.
type Type string

const (
	Bullish      Type = "BULLISH"
	Bearish      Type = "BEARISH"
	Neutral      Type = "NEUTRAL"
	Reversal     Type = "REVERSAL"
	Continuation Type = "CONTINUATION"
)

// Reliability is the fixed qualitative weight tier attached to a rule.
type Reliability string

const (
	High   Reliability = "HIGH"
	Medium Reliability = "MEDIUM"
	Low    Reliability = "LOW"
)

// Weight returns the aggregation weight for the tier.
func (r Reliability) Weight() float64 {
	switch r {
	case High:
		return 3
	case Medium:
		return 2
	default:
		return 1
	}
}

// Signal is the five-level directional signal attached to a pattern.
type Signal string

const (
	StrongBuy     Signal = "STRONG_BUY"
	Buy           Signal = "BUY"
	NeutralSignal Signal = "NEUTRAL"
	Sell          Signal = "SELL"
	StrongSell    Signal = "STRONG_SELL"
)

// Pattern is a single detected candlestick pattern. Confidence and
// reliability are design constants fixed per rule, not sample statistics.
type Pattern struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Type            Type        `json:"type"`
	Reliability     Reliability `json:"reliability"`
	Signal          Signal      `json:"signal"`
	Confidence      int         `json:"confidence"`
	CandlesRequired int         `json:"candles_required"`
	DetectedAt      int64       `json:"detected_at"`
}

// IsBullishLeaning reports whether the pattern argues for upside.
func (p Pattern) IsBullishLeaning() bool {
	return p.Type == Bullish || p.Signal == Buy || p.Signal == StrongBuy
}

// IsBearishLeaning reports whether the pattern argues for downside.
func (p Pattern) IsBearishLeaning() bool {
	return p.Type == Bearish || p.Signal == Sell || p.Signal == StrongSell
}

// rule pairs a predicate with the trailing window length it inspects.
type rule struct {
	window int
	detect func(w []candle.Candle) *Pattern
}

// The rule list is ordered single-candle first, then two, then three, so
// results come out grouped by window size. Every rule is independent;
// several may match the same final candle.
var rules = []rule{
	{1, detectHammer},
	{1, detectShootingStar},
	{1, detectDragonflyDoji},
	{1, detectGravestoneDoji},
	{1, detectDoji},
	{1, detectPinBar},
	{2, detectBullishEngulfing},
	{2, detectBearishEngulfing},
	{2, detectBullishHarami},
	{2, detectBearishHarami},
	{2, detectInsideBar},
	{2, detectOutsideBar},
	{3, detectMorningStar},
	{3, detectEveningStar},
	{3, detectThreeWhiteSoldiers},
	{3, detectThreeBlackCrows},
}

// Detect runs every pattern rule against the final position of the candle
// sequence and returns all matches. Rules that need more history than is
// available are skipped, never errored. Callers wanting matches at every
// historical position slide the window themselves.
func Detect(candles []candle.Candle) []Pattern {
	if len(candles) == 0 {
		return nil
	}

	last := candles[len(candles)-1]
	var matches []Pattern

	for _, r := range rules {
		if len(candles) < r.window {
			continue
		}
		w := candles[len(candles)-r.window:]
		if p := r.detect(w); p != nil {
			p.DetectedAt = last.Timestamp
			matches = append(matches, *p)
		}
	}

	return matches
}
