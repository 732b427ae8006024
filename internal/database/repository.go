package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pattern-analyzer/internal/analysis"
)

// SignalRecord is one persisted scan result for one symbol.
type SignalRecord struct {
	ID              int64     `json:"id"`
	ScanID          string    `json:"scan_id"`
	Symbol          string    `json:"symbol"`
	Timeframe       string    `json:"timeframe"`
	OverallSignal   string    `json:"overall_signal"`
	NetScore        float64   `json:"net_score"`
	TrendDirection  string    `json:"trend_direction"`
	TrendStrength   string    `json:"trend_strength"`
	PatternCount    int       `json:"pattern_count"`
	PatternIDs      []string  `json:"pattern_ids"`
	PrimaryStrategy string    `json:"primary_strategy"`
	CurrentPrice    float64   `json:"current_price"`
	CreatedAt       time.Time `json:"created_at"`
}

// Repository provides access to persisted signals.
type Repository struct {
	db *DB
}

// NewRepository creates a repository over the given connection.
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// HealthCheck verifies database connectivity.
func (r *Repository) HealthCheck(ctx context.Context) error {
	return r.db.Pool.Ping(ctx)
}

// RecordFromResult flattens an analysis result into a persistable record.
func RecordFromResult(scanID, symbol string, res *analysis.Result, price float64) *SignalRecord {
	ids := make([]string, 0, len(res.DetectedPatterns))
	for _, p := range res.DetectedPatterns {
		ids = append(ids, p.ID)
	}
	return &SignalRecord{
		ScanID:          scanID,
		Symbol:          symbol,
		Timeframe:       res.Timeframe,
		OverallSignal:   string(res.OverallSignal),
		NetScore:        res.NetScore,
		TrendDirection:  string(res.Trend.Direction),
		TrendStrength:   string(res.Trend.Strength),
		PatternCount:    len(res.DetectedPatterns),
		PatternIDs:      ids,
		PrimaryStrategy: res.OptionsSuggestion.PrimaryStrategy.ID,
		CurrentPrice:    price,
	}
}

// CreateSignal inserts one record and fills in its ID and timestamp.
func (r *Repository) CreateSignal(ctx context.Context, rec *SignalRecord) error {
	query := `
		INSERT INTO signal_history (
			scan_id, symbol, timeframe, overall_signal, net_score,
			trend_direction, trend_strength, pattern_count, pattern_ids,
			primary_strategy, current_price
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`

	err := r.db.Pool.QueryRow(ctx, query,
		rec.ScanID, rec.Symbol, rec.Timeframe, rec.OverallSignal, rec.NetScore,
		rec.TrendDirection, rec.TrendStrength, rec.PatternCount,
		strings.Join(rec.PatternIDs, ","), rec.PrimaryStrategy, rec.CurrentPrice,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert signal for %s: %w", rec.Symbol, err)
	}
	return nil
}

// GetSignalHistory returns the most recent records for one symbol, newest
// first.
func (r *Repository) GetSignalHistory(ctx context.Context, symbol string, limit int) ([]*SignalRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	query := `
		SELECT id, scan_id, symbol, timeframe, overall_signal, net_score,
		       trend_direction, trend_strength, pattern_count, pattern_ids,
		       primary_strategy, current_price, created_at
		FROM signal_history
		WHERE symbol = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Pool.Query(ctx, query, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("query signal history for %s: %w", symbol, err)
	}
	defer rows.Close()

	var records []*SignalRecord
	for rows.Next() {
		var rec SignalRecord
		var joined string
		err := rows.Scan(
			&rec.ID, &rec.ScanID, &rec.Symbol, &rec.Timeframe, &rec.OverallSignal,
			&rec.NetScore, &rec.TrendDirection, &rec.TrendStrength, &rec.PatternCount,
			&joined, &rec.PrimaryStrategy, &rec.CurrentPrice, &rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan signal row: %w", err)
		}
		if joined != "" {
			rec.PatternIDs = strings.Split(joined, ",")
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate signal rows: %w", err)
	}

	return records, nil
}
