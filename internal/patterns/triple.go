package patterns

import (
	"pattern-analyzer/internal/candle"
)

// Three-candle rules. w[0] is the oldest candle, w[2] the current one.

// detectMorningStar: long bearish candle, small-bodied middle candle, long
// bullish candle closing above the midpoint of the first body.
func detectMorningStar(w []candle.Candle) *Pattern {
	c1, c2, c3 := w[0], w[1], w[2]
	if !c1.IsBearish() || c1.BodyPercent() < 0.60 {
		return nil
	}
	if c2.Body() > c1.Body()*0.4 {
		return nil
	}
	if !c3.IsBullish() || c3.BodyPercent() < 0.60 {
		return nil
	}
	midpoint := (c1.Open + c1.Close) / 2
	if c3.Close < midpoint {
		return nil
	}
	return &Pattern{
		ID:              "morning-star",
		Name:            "Morning Star",
		Type:            Reversal,
		Reliability:     High,
		Signal:          StrongBuy,
		Confidence:      90,
		CandlesRequired: 3,
	}
}

// detectEveningStar is the bearish mirror of detectMorningStar.
func detectEveningStar(w []candle.Candle) *Pattern {
	c1, c2, c3 := w[0], w[1], w[2]
	if !c1.IsBullish() || c1.BodyPercent() < 0.60 {
		return nil
	}
	if c2.Body() > c1.Body()*0.4 {
		return nil
	}
	if !c3.IsBearish() || c3.BodyPercent() < 0.60 {
		return nil
	}
	midpoint := (c1.Open + c1.Close) / 2
	if c3.Close > midpoint {
		return nil
	}
	return &Pattern{
		ID:              "evening-star",
		Name:            "Evening Star",
		Type:            Reversal,
		Reliability:     High,
		Signal:          StrongSell,
		Confidence:      90,
		CandlesRequired: 3,
	}
}

// detectThreeWhiteSoldiers: three full-bodied bullish candles with strictly
// rising opens and closes.
func detectThreeWhiteSoldiers(w []candle.Candle) *Pattern {
	c1, c2, c3 := w[0], w[1], w[2]
	for _, c := range w {
		if !c.IsBullish() || c.BodyPercent() <= 0.50 {
			return nil
		}
	}
	if !(c3.Close > c2.Close && c2.Close > c1.Close) {
		return nil
	}
	if !(c3.Open > c2.Open && c2.Open > c1.Open) {
		return nil
	}
	return &Pattern{
		ID:              "three-white-soldiers",
		Name:            "Three White Soldiers",
		Type:            Bullish,
		Reliability:     High,
		Signal:          StrongBuy,
		Confidence:      90,
		CandlesRequired: 3,
	}
}

// detectThreeBlackCrows is the bearish mirror of detectThreeWhiteSoldiers.
func detectThreeBlackCrows(w []candle.Candle) *Pattern {
	c1, c2, c3 := w[0], w[1], w[2]
	for _, c := range w {
		if !c.IsBearish() || c.BodyPercent() <= 0.50 {
			return nil
		}
	}
	if !(c3.Close < c2.Close && c2.Close < c1.Close) {
		return nil
	}
	if !(c3.Open < c2.Open && c2.Open < c1.Open) {
		return nil
	}
	return &Pattern{
		ID:              "three-black-crows",
		Name:            "Three Black Crows",
		Type:            Bearish,
		Reliability:     High,
		Signal:          StrongSell,
		Confidence:      90,
		CandlesRequired: 3,
	}
}
