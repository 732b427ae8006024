package scanner

import (
	"time"

	"pattern-analyzer/internal/analysis"
)

// SymbolResult is one symbol's outcome within a scan cycle.
type SymbolResult struct {
	Symbol          string           `json:"symbol"`
	Timeframe       string           `json:"timeframe"`
	CurrentPrice    float64          `json:"current_price"`
	OverallSignal   string           `json:"overall_signal"`
	NetScore        float64          `json:"net_score"`
	TrendDirection  string           `json:"trend_direction"`
	PatternCount    int              `json:"pattern_count"`
	PrimaryStrategy string           `json:"primary_strategy"`
	Analysis        *analysis.Result `json:"analysis,omitempty"`
	Error           string           `json:"error,omitempty"`
}

// ScanResult aggregates one whole scan cycle, strongest signals first.
type ScanResult struct {
	ScanID         string         `json:"scan_id"`
	StartTime      time.Time      `json:"start_time"`
	EndTime        time.Time      `json:"end_time"`
	Duration       time.Duration  `json:"duration"`
	SymbolsScanned int            `json:"symbols_scanned"`
	Failures       int            `json:"failures"`
	Results        []SymbolResult `json:"results"`
}

// Config holds scanner settings.
type Config struct {
	Enabled      bool          `json:"enabled"`
	Symbols      []string      `json:"symbols"`
	Timeframe    string        `json:"timeframe"`
	CandleLimit  int           `json:"candle_limit"`
	ScanInterval time.Duration `json:"scan_interval"`
	WorkerCount  int           `json:"worker_count"`
}
