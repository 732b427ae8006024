package patterns

import (
	"pattern-analyzer/internal/candle"
)

// Single-candle rules. All thresholds are fractions of the candle's range or
// body, never absolute price, so detection is scale invariant. A zero-range
// candle (high == low) matches nothing here.

const dojiBodyMax = 0.10

// detectHammer matches a small body near the top of the range with a
// dominant lower wick. The body must exceed the doji band so Hammer and Doji
// stay mutually exclusive on one candle.
func detectHammer(w []candle.Candle) *Pattern {
	c := w[0]
	if c.Range() <= 0 {
		return nil
	}
	bp := c.BodyPercent()
	if bp <= dojiBodyMax || bp >= 0.30 {
		return nil
	}
	if c.LowerShadow() < 2*c.Body() || c.UpperShadow() > 0.5*c.Body() {
		return nil
	}
	return &Pattern{
		ID:              "hammer",
		Name:            "Hammer",
		Type:            Bullish,
		Reliability:     Medium,
		Signal:          Buy,
		Confidence:      70,
		CandlesRequired: 1,
	}
}

// detectShootingStar is the mirror of detectHammer: dominant upper wick,
// small body near the bottom of the range.
func detectShootingStar(w []candle.Candle) *Pattern {
	c := w[0]
	if c.Range() <= 0 {
		return nil
	}
	bp := c.BodyPercent()
	if bp <= dojiBodyMax || bp >= 0.30 {
		return nil
	}
	if c.UpperShadow() < 2*c.Body() || c.LowerShadow() > 0.5*c.Body() {
		return nil
	}
	return &Pattern{
		ID:              "shooting-star",
		Name:            "Shooting Star",
		Type:            Bearish,
		Reliability:     Medium,
		Signal:          Sell,
		Confidence:      70,
		CandlesRequired: 1,
	}
}

func detectDragonflyDoji(w []candle.Candle) *Pattern {
	c := w[0]
	if c.Range() <= 0 {
		return nil
	}
	if c.BodyPercent() > dojiBodyMax {
		return nil
	}
	if c.LowerShadowPercent() <= 0.60 || c.UpperShadowPercent() >= 0.10 {
		return nil
	}
	return &Pattern{
		ID:              "dragonfly-doji",
		Name:            "Dragonfly Doji",
		Type:            Bullish,
		Reliability:     Medium,
		Signal:          Buy,
		Confidence:      65,
		CandlesRequired: 1,
	}
}

func detectGravestoneDoji(w []candle.Candle) *Pattern {
	c := w[0]
	if c.Range() <= 0 {
		return nil
	}
	if c.BodyPercent() > dojiBodyMax {
		return nil
	}
	if c.UpperShadowPercent() <= 0.60 || c.LowerShadowPercent() >= 0.10 {
		return nil
	}
	return &Pattern{
		ID:              "gravestone-doji",
		Name:            "Gravestone Doji",
		Type:            Bearish,
		Reliability:     Medium,
		Signal:          Sell,
		Confidence:      65,
		CandlesRequired: 1,
	}
}

// detectDoji matches the plain indecision doji. The dragonfly and gravestone
// variants are separate rules and may not double-fire with this one.
func detectDoji(w []candle.Candle) *Pattern {
	c := w[0]
	if c.Range() <= 0 {
		return nil
	}
	if c.BodyPercent() > dojiBodyMax {
		return nil
	}
	if detectDragonflyDoji(w) != nil || detectGravestoneDoji(w) != nil {
		return nil
	}
	return &Pattern{
		ID:              "doji",
		Name:            "Doji",
		Type:            Neutral,
		Reliability:     Medium,
		Signal:          NeutralSignal,
		Confidence:      60,
		CandlesRequired: 1,
	}
}

// detectPinBar matches one shadow covering at least 60% of the range with a
// body no larger than 30%. Direction follows the long shadow: a long lower
// shadow rejects lower prices (bullish), a long upper shadow rejects higher
// prices (bearish).
func detectPinBar(w []candle.Candle) *Pattern {
	c := w[0]
	if c.Range() <= 0 {
		return nil
	}
	if c.BodyPercent() > 0.30 {
		return nil
	}
	switch {
	case c.LowerShadowPercent() >= 0.60:
		return &Pattern{
			ID:              "bullish-pin-bar",
			Name:            "Bullish Pin Bar",
			Type:            Reversal,
			Reliability:     Medium,
			Signal:          Buy,
			Confidence:      65,
			CandlesRequired: 1,
		}
	case c.UpperShadowPercent() >= 0.60:
		return &Pattern{
			ID:              "bearish-pin-bar",
			Name:            "Bearish Pin Bar",
			Type:            Reversal,
			Reliability:     Medium,
			Signal:          Sell,
			Confidence:      65,
			CandlesRequired: 1,
		}
	}
	return nil
}
