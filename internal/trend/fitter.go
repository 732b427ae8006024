// Package trend fits a least-squares trend line over a candle window and
// derives direction, strength, and support/resistance levels from it.
package trend

import (
	"pattern-analyzer/internal/candle"
)

// Direction of the fitted trend.
type Direction string

const (
	Uptrend   Direction = "UPTREND"
	Downtrend Direction = "DOWNTREND"
	Sideways  Direction = "SIDEWAYS"
)

// Strength of the fitted trend.
type Strength string

const (
	Weak     Strength = "WEAK"
	Moderate Strength = "MODERATE"
	Strong   Strength = "STRONG"
)

// MinWindow is the minimum number of candles the fitter needs. Shorter
// inputs produce the neutral default rather than an error.
const MinWindow = 10

// levelWindow is the trailing sub-window over which support and resistance
// are taken from raw extrema, independent of the regression.
const levelWindow = 20

// Line holds the ordinary least-squares fit of close price against bar index.
type Line struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	R2        float64 `json:"r2"`
}

// Analysis is the fitted trend over one candle window.
type Analysis struct {
	Direction       Direction `json:"direction"`
	Strength        Strength  `json:"strength"`
	Duration        int       `json:"duration"`
	Confidence      int       `json:"confidence"`
	SupportLevel    float64   `json:"support_level"`
	ResistanceLevel float64   `json:"resistance_level"`
	Line            Line      `json:"trend_line"`
}

// neutralDefault is the defined result for windows too short to fit.
func neutralDefault() Analysis {
	return Analysis{
		Direction:  Sideways,
		Strength:   Weak,
		Confidence: 50,
	}
}

// Fit computes the trend over the full candle window. Direction requires a
// meaningful fit (R-squared above 0.5) on top of the slope sign; strength
// additionally gates on the slope magnitude as a percentage of the final
// close, so it is scale invariant.
func Fit(candles []candle.Candle) Analysis {
	if len(candles) < MinWindow {
		return neutralDefault()
	}

	line := fitLine(candles)

	direction := Sideways
	switch {
	case line.Slope > 0 && line.R2 > 0.5:
		direction = Uptrend
	case line.Slope < 0 && line.R2 > 0.5:
		direction = Downtrend
	}

	finalClose := candles[len(candles)-1].Close
	slopePct := 0.0
	if finalClose > 0 {
		slopePct = abs(line.Slope) / finalClose * 100
	}

	strength := Weak
	switch {
	case line.R2 > 0.8 && slopePct > 0.5:
		strength = Strong
	case line.R2 > 0.6 && slopePct > 0.2:
		strength = Moderate
	}

	confidence := int(line.R2 * 100)
	if confidence < 50 {
		confidence = 50
	}
	if confidence > 95 {
		confidence = 95
	}

	support, resistance := levels(candles)

	return Analysis{
		Direction:       direction,
		Strength:        strength,
		Duration:        duration(candles, direction),
		Confidence:      confidence,
		SupportLevel:    support,
		ResistanceLevel: resistance,
		Line:            line,
	}
}

// fitLine runs ordinary least squares of close price against bar index and
// computes the coefficient of determination against the mean close.
func fitLine(candles []candle.Candle) Line {
	n := float64(len(candles))
	var sumX, sumY, sumXY, sumXX float64
	for i, c := range candles {
		x := float64(i)
		sumX += x
		sumY += c.Close
		sumXY += x * c.Close
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return Line{}
	}
	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	mean := sumY / n
	var ssRes, ssTot float64
	for i, c := range candles {
		pred := slope*float64(i) + intercept
		ssRes += (c.Close - pred) * (c.Close - pred)
		ssTot += (c.Close - mean) * (c.Close - mean)
	}

	r2 := 0.0
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}
	if r2 < 0 {
		r2 = 0
	}
	if r2 > 1 {
		r2 = 1
	}

	return Line{Slope: slope, Intercept: intercept, R2: r2}
}

// levels takes support from the minimum low and resistance from the maximum
// high over the trailing sub-window.
func levels(candles []candle.Candle) (support, resistance float64) {
	start := len(candles) - levelWindow
	if start < 0 {
		start = 0
	}
	window := candles[start:]

	support = window[0].Low
	resistance = window[0].High
	for _, c := range window[1:] {
		if c.Low < support {
			support = c.Low
		}
		if c.High > resistance {
			resistance = c.High
		}
	}
	return support, resistance
}

// duration counts consecutive trailing bars whose bar-to-bar move agrees
// with the fitted direction, stopping at the first disagreement. A sideways
// fit accepts every move.
func duration(candles []candle.Candle, direction Direction) int {
	count := 0
	for i := len(candles) - 1; i > 0; i-- {
		move := candles[i].Close - candles[i-1].Close
		agrees := direction == Sideways ||
			(direction == Uptrend && move > 0) ||
			(direction == Downtrend && move < 0)
		if !agrees {
			break
		}
		count++
	}
	return count
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
