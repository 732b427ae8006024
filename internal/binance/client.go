// Package binance feeds the analysis core with market candles. The scanner
// and API depend on the CandleSource interface, not on this client, so a
// different exchange adapter can be dropped in behind it.
package binance

import (
	"context"
	"fmt"
	"strconv"

	"github.com/adshao/go-binance/v2"
	"github.com/rs/zerolog"

	"pattern-analyzer/internal/candle"
)

// CandleSource supplies chronological candles and a spot price for a symbol.
type CandleSource interface {
	Candles(ctx context.Context, symbol, interval string, limit int) ([]candle.Candle, error)
	CurrentPrice(ctx context.Context, symbol string) (float64, error)
}

// Client wraps the Binance spot REST client. Public market data only; no
// keys are required for the endpoints this service uses.
type Client struct {
	api    *binance.Client
	logger zerolog.Logger
}

// NewClient builds a market-data client. Empty credentials are fine for
// public endpoints.
func NewClient(apiKey, secretKey string, logger zerolog.Logger) *Client {
	return &Client{
		api:    binance.NewClient(apiKey, secretKey),
		logger: logger.With().Str("component", "binance").Logger(),
	}
}

// Candles fetches the trailing kline window for one symbol, oldest first.
func (c *Client) Candles(ctx context.Context, symbol, interval string, limit int) ([]candle.Candle, error) {
	klines, err := c.api.NewKlinesService().
		Symbol(symbol).
		Interval(interval).
		Limit(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch klines for %s %s: %w", symbol, interval, err)
	}

	candles := make([]candle.Candle, 0, len(klines))
	for _, k := range klines {
		parsed, err := parseKline(k)
		if err != nil {
			return nil, fmt.Errorf("parse kline for %s at %d: %w", symbol, k.OpenTime, err)
		}
		candles = append(candles, parsed)
	}

	c.logger.Debug().
		Str("symbol", symbol).
		Str("interval", interval).
		Int("count", len(candles)).
		Msg("Fetched candles")

	return candles, nil
}

// CurrentPrice fetches the latest spot price for one symbol.
func (c *Client) CurrentPrice(ctx context.Context, symbol string) (float64, error) {
	prices, err := c.api.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch price for %s: %w", symbol, err)
	}
	if len(prices) == 0 {
		return 0, fmt.Errorf("no price returned for %s", symbol)
	}

	price, err := strconv.ParseFloat(prices[0].Price, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q for %s: %w", prices[0].Price, symbol, err)
	}
	return price, nil
}

func parseKline(k *binance.Kline) (candle.Candle, error) {
	var out candle.Candle
	var err error

	if out.Open, err = strconv.ParseFloat(k.Open, 64); err != nil {
		return out, err
	}
	if out.High, err = strconv.ParseFloat(k.High, 64); err != nil {
		return out, err
	}
	if out.Low, err = strconv.ParseFloat(k.Low, 64); err != nil {
		return out, err
	}
	if out.Close, err = strconv.ParseFloat(k.Close, 64); err != nil {
		return out, err
	}
	if out.Volume, err = strconv.ParseFloat(k.Volume, 64); err != nil {
		return out, err
	}
	out.Timestamp = k.OpenTime

	return out, nil
}
