package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"pattern-analyzer/internal/analysis"
	"pattern-analyzer/internal/cache"
	"pattern-analyzer/internal/candle"
	"pattern-analyzer/internal/options"
)

// analyzeRequest is the POST /api/analyze body: a caller-supplied candle
// window plus optional knobs.
type analyzeRequest struct {
	Candles           []candle.Candle `json:"candles" binding:"required"`
	Timeframe         string          `json:"timeframe"`
	CurrentPrice      float64         `json:"current_price"`
	ImpliedVolatility float64         `json:"implied_volatility"`
}

// handleAnalyze runs the core over candles supplied by the caller.
func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	for i, cd := range req.Candles {
		if !cd.Validate() {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "malformed candle at index " + strconv.Itoa(i),
			})
			return
		}
	}

	result, err := analysis.Analyze(req.Candles, analysis.Options{
		Timeframe:         req.Timeframe,
		CurrentPrice:      req.CurrentPrice,
		ImpliedVolatility: req.ImpliedVolatility,
	})
	if err != nil {
		if errors.Is(err, candle.ErrNoCandles) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// handleSymbolAnalysis serves a scanned symbol's analysis from the cache,
// falling back to a fresh fetch-and-analyze on a miss.
func (s *Server) handleSymbolAnalysis(c *gin.Context) {
	symbol := c.Param("symbol")
	timeframe := c.DefaultQuery("timeframe", "1h")

	ctx := c.Request.Context()

	cached, err := s.cache.Get(ctx, symbol, timeframe)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"cached": true, "analysis": cached})
		return
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Cache read failed")
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 1000 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 1000"})
			return
		}
		limit = parsed
	}

	candles, err := s.source.Candles(ctx, symbol, timeframe, limit)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "candle fetch failed: " + err.Error()})
		return
	}

	result, err := analysis.Analyze(candles, analysis.Options{Timeframe: timeframe})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.cache.Set(ctx, symbol, timeframe, result)
	c.JSON(http.StatusOK, gin.H{"cached": false, "analysis": result})
}

// handleScan returns the last scan summary, triggering a fresh scan when
// asked or when none has run yet.
func (s *Server) handleScan(c *gin.Context) {
	if s.scanner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scanner is not running"})
		return
	}

	result := s.scanner.LastResult()
	if result == nil || c.Query("refresh") == "true" {
		result = s.scanner.Scan()
	}

	c.JSON(http.StatusOK, result)
}

// handleSignalHistory returns persisted scan signals for one symbol.
func (s *Server) handleSignalHistory(c *gin.Context) {
	if s.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "signal persistence is disabled"})
		return
	}

	symbol := c.Param("symbol")
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	records, err := s.repo.GetSignalHistory(ctx, symbol, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"symbol":  symbol,
		"count":   len(records),
		"signals": records,
	})
}

// handleStrategies lists the full options-strategy catalog.
func (s *Server) handleStrategies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"strategies": options.Catalog()})
}
