// Package scanner runs the analysis core over a configured symbol set on a
// fixed interval and fans the results out to the cache, the database, and
// the event bus.
package scanner

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pattern-analyzer/internal/analysis"
	"pattern-analyzer/internal/binance"
	"pattern-analyzer/internal/cache"
	"pattern-analyzer/internal/database"
	"pattern-analyzer/internal/events"
)

// Scanner drives periodic scans with a bounded worker pool.
type Scanner struct {
	source   binance.CandleSource
	cache    *cache.AnalysisCache
	repo     *database.Repository
	bus      *events.Bus
	config   Config
	logger   zerolog.Logger
	stopChan chan struct{}
	wg       sync.WaitGroup

	mu         sync.RWMutex
	lastResult *ScanResult
}

// New wires a scanner. The repository may be nil when persistence is
// disabled; the cache and bus are required.
func New(
	source binance.CandleSource,
	analysisCache *cache.AnalysisCache,
	repo *database.Repository,
	bus *events.Bus,
	config Config,
	logger zerolog.Logger,
) *Scanner {
	if config.WorkerCount <= 0 {
		config.WorkerCount = 4
	}
	if config.CandleLimit <= 0 {
		config.CandleLimit = 100
	}
	if config.Timeframe == "" {
		config.Timeframe = "1h"
	}
	if config.ScanInterval <= 0 {
		config.ScanInterval = 5 * time.Minute
	}

	return &Scanner{
		source:   source,
		cache:    analysisCache,
		repo:     repo,
		bus:      bus,
		config:   config,
		logger:   logger.With().Str("component", "scanner").Logger(),
		stopChan: make(chan struct{}),
	}
}

// Start launches the background scan loop.
func (sc *Scanner) Start() {
	if !sc.config.Enabled {
		sc.logger.Info().Msg("Scanner disabled")
		return
	}

	sc.wg.Add(1)
	go sc.runLoop()
	sc.logger.Info().
		Int("symbols", len(sc.config.Symbols)).
		Dur("interval", sc.config.ScanInterval).
		Msg("Scanner started")
}

// Stop halts the loop and waits for the in-flight scan to finish.
func (sc *Scanner) Stop() {
	close(sc.stopChan)
	sc.wg.Wait()
}

func (sc *Scanner) runLoop() {
	defer sc.wg.Done()

	ticker := time.NewTicker(sc.config.ScanInterval)
	defer ticker.Stop()

	sc.scan()

	for {
		select {
		case <-ticker.C:
			sc.scan()
		case <-sc.stopChan:
			sc.logger.Info().Msg("Scanner stopped")
			return
		}
	}
}

// Scan runs one cycle on demand and returns the result.
func (sc *Scanner) Scan() *ScanResult {
	return sc.scan()
}

// LastResult returns the most recent scan, or nil before the first cycle.
func (sc *Scanner) LastResult() *ScanResult {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.lastResult
}

func (sc *Scanner) scan() *ScanResult {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	start := time.Now()
	scanID := uuid.New().String()

	symbolChan := make(chan string, len(sc.config.Symbols))
	resultChan := make(chan SymbolResult, len(sc.config.Symbols))

	var wg sync.WaitGroup
	for i := 0; i < sc.config.WorkerCount; i++ {
		wg.Add(1)
		go sc.worker(ctx, scanID, symbolChan, resultChan, &wg)
	}

	for _, symbol := range sc.config.Symbols {
		symbolChan <- symbol
	}
	close(symbolChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	result := &ScanResult{
		ScanID:    scanID,
		StartTime: start,
	}
	for sr := range resultChan {
		if sr.Error != "" {
			result.Failures++
		}
		result.Results = append(result.Results, sr)
	}

	// strongest conviction first, failures last
	sort.Slice(result.Results, func(i, j int) bool {
		if (result.Results[i].Error == "") != (result.Results[j].Error == "") {
			return result.Results[i].Error == ""
		}
		return math.Abs(result.Results[i].NetScore) > math.Abs(result.Results[j].NetScore)
	})

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(start)
	result.SymbolsScanned = len(result.Results)

	sc.mu.Lock()
	sc.lastResult = result
	sc.mu.Unlock()

	sc.bus.PublishScanCompleted(scanID, result.SymbolsScanned, result.Failures, result.Duration)
	sc.logger.Info().
		Str("scan_id", scanID).
		Int("symbols", result.SymbolsScanned).
		Int("failures", result.Failures).
		Dur("elapsed", result.Duration).
		Msg("Scan complete")

	return result
}

func (sc *Scanner) worker(ctx context.Context, scanID string, symbols <-chan string, results chan<- SymbolResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for symbol := range symbols {
		select {
		case <-ctx.Done():
			results <- SymbolResult{Symbol: symbol, Timeframe: sc.config.Timeframe, Error: ctx.Err().Error()}
			continue
		default:
		}
		results <- sc.analyzeSymbol(ctx, scanID, symbol)
	}
}

func (sc *Scanner) analyzeSymbol(ctx context.Context, scanID, symbol string) SymbolResult {
	out := SymbolResult{Symbol: symbol, Timeframe: sc.config.Timeframe}

	candles, err := sc.source.Candles(ctx, symbol, sc.config.Timeframe, sc.config.CandleLimit)
	if err != nil {
		sc.logger.Error().Err(err).Str("symbol", symbol).Msg("Candle fetch failed")
		sc.bus.PublishError("scanner", "candle fetch failed for "+symbol, err)
		out.Error = err.Error()
		return out
	}

	res, err := analysis.Analyze(candles, analysis.Options{Timeframe: sc.config.Timeframe})
	if err != nil {
		sc.logger.Error().Err(err).Str("symbol", symbol).Msg("Analysis failed")
		sc.bus.PublishError("scanner", "analysis failed for "+symbol, err)
		out.Error = err.Error()
		return out
	}

	price := candles[len(candles)-1].Close

	out.CurrentPrice = price
	out.OverallSignal = string(res.OverallSignal)
	out.NetScore = res.NetScore
	out.TrendDirection = string(res.Trend.Direction)
	out.PatternCount = len(res.DetectedPatterns)
	out.PrimaryStrategy = res.OptionsSuggestion.PrimaryStrategy.ID
	out.Analysis = res

	sc.cache.Set(ctx, symbol, sc.config.Timeframe, res)

	if sc.repo != nil {
		rec := database.RecordFromResult(scanID, symbol, res, price)
		if err := sc.repo.CreateSignal(ctx, rec); err != nil {
			sc.logger.Error().Err(err).Str("symbol", symbol).Msg("Signal persist failed")
		}
	}

	sc.bus.PublishAnalysisCompleted(symbol, sc.config.Timeframe, out.OverallSignal, out.NetScore)

	return out
}
