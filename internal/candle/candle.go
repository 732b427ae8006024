package candle

import "errors"

// ErrNoCandles is returned when an analysis entry point receives an empty
// candle sequence. Everything else degrades gracefully; this cannot.
var ErrNoCandles = errors.New("candle: empty candle sequence")

// Candle represents a single OHLCV bar. Timestamp is the bar's open time in
// epoch milliseconds. Candles are owned by the caller and treated as
// read-only by every analysis package.
type Candle struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// Body returns the absolute distance between open and close.
func (c Candle) Body() float64 {
	if c.Close >= c.Open {
		return c.Close - c.Open
	}
	return c.Open - c.Close
}

// Range returns the full high-to-low extent of the bar.
func (c Candle) Range() float64 {
	return c.High - c.Low
}

// UpperShadow returns the wick above the body.
func (c Candle) UpperShadow() float64 {
	if c.Close >= c.Open {
		return c.High - c.Close
	}
	return c.High - c.Open
}

// LowerShadow returns the wick below the body.
func (c Candle) LowerShadow() float64 {
	if c.Close >= c.Open {
		return c.Open - c.Low
	}
	return c.Close - c.Low
}

// IsBullish reports whether the bar closed above its open.
func (c Candle) IsBullish() bool {
	return c.Close > c.Open
}

// IsBearish reports whether the bar closed below its open.
func (c Candle) IsBearish() bool {
	return c.Close < c.Open
}

// BodyPercent returns the body as a fraction of the bar's range, in [0, 1].
// A zero-range bar reports 0 so ratio-based rules never divide by zero.
func (c Candle) BodyPercent() float64 {
	r := c.Range()
	if r <= 0 {
		return 0
	}
	return c.Body() / r
}

// UpperShadowPercent returns the upper wick as a fraction of the range.
func (c Candle) UpperShadowPercent() float64 {
	r := c.Range()
	if r <= 0 {
		return 0
	}
	return c.UpperShadow() / r
}

// LowerShadowPercent returns the lower wick as a fraction of the range.
func (c Candle) LowerShadowPercent() float64 {
	r := c.Range()
	if r <= 0 {
		return 0
	}
	return c.LowerShadow() / r
}

// Validate checks the OHLC invariant: low <= min(open, close) and
// max(open, close) <= high, all prices positive.
func (c Candle) Validate() bool {
	if c.Open <= 0 || c.High <= 0 || c.Low <= 0 || c.Close <= 0 {
		return false
	}
	if c.Volume < 0 {
		return false
	}
	lo, hi := c.Open, c.Close
	if lo > hi {
		lo, hi = hi, lo
	}
	return c.Low <= lo && hi <= c.High
}
