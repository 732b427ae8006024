package patterns

import (
	"testing"

	"pattern-analyzer/internal/candle"
)

func has(matches []Pattern, id string) bool {
	for _, m := range matches {
		if m.ID == id {
			return true
		}
	}
	return false
}

func ids(matches []Pattern) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.ID)
	}
	return out
}

func TestDetectEmptyInput(t *testing.T) {
	if got := Detect(nil); got != nil {
		t.Errorf("Detect(nil) = %v, want nil", got)
	}
	if got := Detect([]candle.Candle{}); got != nil {
		t.Errorf("Detect(empty) = %v, want nil", got)
	}
}

func TestDetectZeroRangeCandle(t *testing.T) {
	// high == low: the ratio guards must keep every rule silent
	flat := []candle.Candle{{Open: 100, High: 100, Low: 100, Close: 100}}
	if got := Detect(flat); len(got) != 0 {
		t.Errorf("zero-range candle matched %v, want none", ids(got))
	}
}

func TestHammer(t *testing.T) {
	c := []candle.Candle{{Timestamp: 5000, Open: 100, High: 100.3, Low: 99, Close: 100.2}}
	got := Detect(c)

	if !has(got, "hammer") {
		t.Fatalf("expected hammer in %v", ids(got))
	}
	if has(got, "shooting-star") {
		t.Errorf("hammer and shooting star must be mutually exclusive, got %v", ids(got))
	}
	for _, m := range got {
		if m.DetectedAt != 5000 {
			t.Errorf("DetectedAt = %d, want final candle timestamp 5000", m.DetectedAt)
		}
	}
}

func TestShootingStar(t *testing.T) {
	c := []candle.Candle{{Open: 100.2, High: 101.2, Low: 99.95, Close: 100}}
	got := Detect(c)

	if !has(got, "shooting-star") {
		t.Fatalf("expected shooting-star in %v", ids(got))
	}
	if has(got, "hammer") {
		t.Errorf("hammer and shooting star must be mutually exclusive, got %v", ids(got))
	}
}

func TestDojiVariantsAreDisjoint(t *testing.T) {
	cases := []struct {
		name    string
		c       candle.Candle
		want    string
		exclude []string
	}{
		{
			name:    "plain doji with balanced shadows",
			c:       candle.Candle{Open: 100, High: 100.5, Low: 99.5, Close: 100.05},
			want:    "doji",
			exclude: []string{"dragonfly-doji", "gravestone-doji", "hammer"},
		},
		{
			name:    "dragonfly doji",
			c:       candle.Candle{Open: 100, High: 100.07, Low: 99, Close: 100.05},
			want:    "dragonfly-doji",
			exclude: []string{"doji", "gravestone-doji"},
		},
		{
			name:    "gravestone doji",
			c:       candle.Candle{Open: 100.05, High: 101.05, Low: 99.98, Close: 100},
			want:    "gravestone-doji",
			exclude: []string{"doji", "dragonfly-doji"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Detect([]candle.Candle{tc.c})
			if !has(got, tc.want) {
				t.Fatalf("expected %s in %v", tc.want, ids(got))
			}
			for _, ex := range tc.exclude {
				if has(got, ex) {
					t.Errorf("%s must not co-fire with %s, got %v", ex, tc.want, ids(got))
				}
			}
		})
	}
}

func TestPinBarDirection(t *testing.T) {
	lower := candle.Candle{Open: 100, High: 100.3, Low: 99, Close: 100.2}
	got := Detect([]candle.Candle{lower})
	if !has(got, "bullish-pin-bar") {
		t.Errorf("long lower shadow should read bullish, got %v", ids(got))
	}

	upper := candle.Candle{Open: 100.2, High: 101.2, Low: 99.95, Close: 100}
	got = Detect([]candle.Candle{upper})
	if !has(got, "bearish-pin-bar") {
		t.Errorf("long upper shadow should read bearish, got %v", ids(got))
	}
}

func TestBullishEngulfing(t *testing.T) {
	c := []candle.Candle{
		{Open: 100, High: 100.5, Low: 98.9, Close: 99},
		{Open: 98.8, High: 101.6, Low: 98.7, Close: 101.5},
	}
	got := Detect(c)

	if !has(got, "bullish-engulfing") {
		t.Fatalf("expected bullish-engulfing in %v", ids(got))
	}
	// the second candle also ranges beyond both extremes
	if !has(got, "bullish-outside-bar") {
		t.Errorf("expected bullish-outside-bar alongside engulfing, got %v", ids(got))
	}
}

func TestBearishEngulfing(t *testing.T) {
	c := []candle.Candle{
		{Open: 99, High: 100.5, Low: 98.9, Close: 100},
		{Open: 100.2, High: 100.6, Low: 98.4, Close: 98.5},
	}
	got := Detect(c)
	if !has(got, "bearish-engulfing") {
		t.Fatalf("expected bearish-engulfing in %v", ids(got))
	}
}

func TestIdenticalCandlesNeverEngulf(t *testing.T) {
	d := candle.Candle{Open: 100, High: 100.5, Low: 99.5, Close: 100}
	got := Detect([]candle.Candle{d, d})

	if has(got, "bullish-engulfing") || has(got, "bearish-engulfing") {
		t.Errorf("two identical candles engulfed, got %v", ids(got))
	}
	if has(got, "inside-bar") || has(got, "bullish-outside-bar") || has(got, "bearish-outside-bar") {
		t.Errorf("equal ranges matched a strict containment rule, got %v", ids(got))
	}
}

func TestBullishHarami(t *testing.T) {
	c := []candle.Candle{
		{Open: 105, High: 105.5, Low: 99.5, Close: 100},
		{Open: 101, High: 103.6, Low: 100.8, Close: 103.5},
	}
	got := Detect(c)
	if !has(got, "bullish-harami") {
		t.Fatalf("expected bullish-harami in %v", ids(got))
	}
	if has(got, "bullish-engulfing") {
		t.Errorf("harami candle cannot also engulf, got %v", ids(got))
	}
}

func TestInsideBar(t *testing.T) {
	c := []candle.Candle{
		{Open: 100, High: 105, Low: 95, Close: 101},
		{Open: 100.5, High: 103, Low: 98, Close: 100.4},
	}
	got := Detect(c)
	if !has(got, "inside-bar") {
		t.Fatalf("expected inside-bar in %v", ids(got))
	}
}

func TestOutsideBar(t *testing.T) {
	c := []candle.Candle{
		{Open: 100, High: 101, Low: 99, Close: 100.5},
		{Open: 100.8, High: 102, Low: 98.5, Close: 98.8},
	}
	got := Detect(c)
	if !has(got, "bearish-outside-bar") {
		t.Fatalf("expected bearish-outside-bar in %v", ids(got))
	}
}

func TestMorningStar(t *testing.T) {
	c := []candle.Candle{
		{Open: 105, High: 105.2, Low: 99.8, Close: 100},
		{Open: 99.8, High: 100.2, Low: 99.4, Close: 99.6},
		{Open: 100, High: 105.4, Low: 99.9, Close: 105},
	}
	got := Detect(c)

	if !has(got, "morning-star") {
		t.Fatalf("expected morning-star in %v", ids(got))
	}
	for _, m := range got {
		if m.ID == "morning-star" && m.Signal != StrongBuy {
			t.Errorf("morning star signal = %s, want %s", m.Signal, StrongBuy)
		}
	}
}

func TestEveningStar(t *testing.T) {
	c := []candle.Candle{
		{Open: 100, High: 105.2, Low: 99.8, Close: 105},
		{Open: 105.2, High: 105.6, Low: 104.8, Close: 105},
		{Open: 105, High: 105.1, Low: 99.6, Close: 100},
	}
	got := Detect(c)
	if !has(got, "evening-star") {
		t.Fatalf("expected evening-star in %v", ids(got))
	}
}

func TestThreeWhiteSoldiers(t *testing.T) {
	var c []candle.Candle
	for i := 0; i < 3; i++ {
		f := float64(i)
		c = append(c, candle.Candle{Open: 100.2 + f, High: 101.1 + f, Low: 100.1 + f, Close: 101 + f})
	}
	got := Detect(c)

	if !has(got, "three-white-soldiers") {
		t.Fatalf("expected three-white-soldiers in %v", ids(got))
	}
	if has(got, "three-black-crows") {
		t.Errorf("soldiers and crows are mutually exclusive, got %v", ids(got))
	}
}

func TestThreeBlackCrows(t *testing.T) {
	var c []candle.Candle
	for i := 0; i < 3; i++ {
		f := float64(i)
		c = append(c, candle.Candle{Open: 100.8 - f, High: 100.9 - f, Low: 99.9 - f, Close: 100 - f})
	}
	got := Detect(c)
	if !has(got, "three-black-crows") {
		t.Fatalf("expected three-black-crows in %v", ids(got))
	}
}

func TestScaleInvariance(t *testing.T) {
	// same geometry at a 1000x price level must produce the same matches
	base := []candle.Candle{
		{Open: 105, High: 105.2, Low: 99.8, Close: 100},
		{Open: 99.8, High: 100.2, Low: 99.4, Close: 99.6},
		{Open: 100, High: 105.4, Low: 99.9, Close: 105},
	}
	scaled := make([]candle.Candle, len(base))
	for i, c := range base {
		scaled[i] = candle.Candle{
			Open:  c.Open * 1000,
			High:  c.High * 1000,
			Low:   c.Low * 1000,
			Close: c.Close * 1000,
		}
	}

	a, b := Detect(base), Detect(scaled)
	if len(a) != len(b) {
		t.Fatalf("match counts differ across scales: %v vs %v", ids(a), ids(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Errorf("match %d differs across scales: %s vs %s", i, a[i].ID, b[i].ID)
		}
	}
}

func TestShortHistorySkipsWiderRules(t *testing.T) {
	// one candle: two- and three-candle rules must be skipped, not errored
	c := []candle.Candle{{Open: 100, High: 100.3, Low: 99, Close: 100.2}}
	for _, m := range Detect(c) {
		if m.CandlesRequired > 1 {
			t.Errorf("rule %s needs %d candles but only 1 supplied", m.ID, m.CandlesRequired)
		}
	}
}

func TestReliabilityWeight(t *testing.T) {
	if High.Weight() != 3 || Medium.Weight() != 2 || Low.Weight() != 1 {
		t.Errorf("weights = %v/%v/%v, want 3/2/1", High.Weight(), Medium.Weight(), Low.Weight())
	}
}

func BenchmarkDetect(b *testing.B) {
	candles := make([]candle.Candle, 100)
	for i := range candles {
		f := float64(i)
		candles[i] = candle.Candle{
			Timestamp: int64(i) * 60000,
			Open:      100 + f*0.1,
			High:      101 + f*0.1,
			Low:       99.5 + f*0.1,
			Close:     100.6 + f*0.1,
			Volume:    1000,
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Detect(candles)
	}
}
