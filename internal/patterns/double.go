package patterns

import (
	"pattern-analyzer/internal/candle"
)

// Two-candle rules. w[0] is the previous candle, w[1] the current one.

// detectBullishEngulfing requires a bearish candle followed by a bullish
// candle whose body strictly contains and exceeds the previous body. The
// strict comparisons mean two identical candles can never engulf each other.
func detectBullishEngulfing(w []candle.Candle) *Pattern {
	prev, cur := w[0], w[1]
	if !prev.IsBearish() || !cur.IsBullish() {
		return nil
	}
	if cur.Open >= prev.Close || cur.Close <= prev.Open {
		return nil
	}
	if cur.Body() <= prev.Body() {
		return nil
	}
	return &Pattern{
		ID:              "bullish-engulfing",
		Name:            "Bullish Engulfing",
		Type:            Bullish,
		Reliability:     High,
		Signal:          Buy,
		Confidence:      85,
		CandlesRequired: 2,
	}
}

func detectBearishEngulfing(w []candle.Candle) *Pattern {
	prev, cur := w[0], w[1]
	if !prev.IsBullish() || !cur.IsBearish() {
		return nil
	}
	if cur.Open <= prev.Close || cur.Close >= prev.Open {
		return nil
	}
	if cur.Body() <= prev.Body() {
		return nil
	}
	return &Pattern{
		ID:              "bearish-engulfing",
		Name:            "Bearish Engulfing",
		Type:            Bearish,
		Reliability:     High,
		Signal:          Sell,
		Confidence:      85,
		CandlesRequired: 2,
	}
}

// detectBullishHarami requires a large bearish candle followed by a smaller
// bullish candle whose body sits strictly inside the previous body.
func detectBullishHarami(w []candle.Candle) *Pattern {
	prev, cur := w[0], w[1]
	if !prev.IsBearish() || !cur.IsBullish() {
		return nil
	}
	if cur.Open <= prev.Close || cur.Close >= prev.Open {
		return nil
	}
	if cur.Body() >= prev.Body() {
		return nil
	}
	return &Pattern{
		ID:              "bullish-harami",
		Name:            "Bullish Harami",
		Type:            Bullish,
		Reliability:     Medium,
		Signal:          Buy,
		Confidence:      65,
		CandlesRequired: 2,
	}
}

func detectBearishHarami(w []candle.Candle) *Pattern {
	prev, cur := w[0], w[1]
	if !prev.IsBullish() || !cur.IsBearish() {
		return nil
	}
	if cur.Open >= prev.Close || cur.Close <= prev.Open {
		return nil
	}
	if cur.Body() >= prev.Body() {
		return nil
	}
	return &Pattern{
		ID:              "bearish-harami",
		Name:            "Bearish Harami",
		Type:            Bearish,
		Reliability:     Medium,
		Signal:          Sell,
		Confidence:      65,
		CandlesRequired: 2,
	}
}

// detectInsideBar matches a candle whose high/low sit strictly within the
// previous candle's high/low. Direction-neutral consolidation.
func detectInsideBar(w []candle.Candle) *Pattern {
	prev, cur := w[0], w[1]
	if cur.High >= prev.High || cur.Low <= prev.Low {
		return nil
	}
	return &Pattern{
		ID:              "inside-bar",
		Name:            "Inside Bar",
		Type:            Continuation,
		Reliability:     Low,
		Signal:          NeutralSignal,
		Confidence:      55,
		CandlesRequired: 2,
	}
}

// detectOutsideBar matches a candle strictly beyond both sides of the
// previous candle's range. The close decides direction; a flat close is no
// signal.
func detectOutsideBar(w []candle.Candle) *Pattern {
	prev, cur := w[0], w[1]
	if cur.High <= prev.High || cur.Low >= prev.Low {
		return nil
	}
	switch {
	case cur.IsBullish():
		return &Pattern{
			ID:              "bullish-outside-bar",
			Name:            "Bullish Outside Bar",
			Type:            Bullish,
			Reliability:     Medium,
			Signal:          Buy,
			Confidence:      65,
			CandlesRequired: 2,
		}
	case cur.IsBearish():
		return &Pattern{
			ID:              "bearish-outside-bar",
			Name:            "Bearish Outside Bar",
			Type:            Bearish,
			Reliability:     Medium,
			Signal:          Sell,
			Confidence:      65,
			CandlesRequired: 2,
		}
	}
	return nil
}
