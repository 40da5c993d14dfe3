package recorder

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"TradeSentinel/internal/model"
)

// SQLiteRecorder persists evaluations and trades to a SQLite database.
// Full records are stored as JSON next to the columns used for querying.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL so dashboards can read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS evaluations (
			id          TEXT PRIMARY KEY,
			timestamp   INTEGER NOT NULL,
			currency    TEXT NOT NULL,
			price       TEXT,
			signal      TEXT,
			total_value TEXT,
			rsi14       REAL,
			macd        REAL,
			macd_signal REAL,
			trade_id    TEXT,
			error_count INTEGER,
			payload     TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_currency_ts ON evaluations(currency, timestamp)`,

		`CREATE TABLE IF NOT EXISTS trades (
			id          TEXT PRIMARY KEY,
			timestamp   INTEGER NOT NULL,
			currency    TEXT NOT NULL,
			side        TEXT,
			result      TEXT NOT NULL,
			order_count INTEGER,
			payload     TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_currency_result ON trades(currency, result)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordEvaluation(ctx context.Context, ev *model.Evaluation) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode evaluation: %w", err)
	}

	var rsi, macd, macdSignal sql.NullFloat64
	if ta := ev.TechnicalAnalysis; ta != nil {
		rsi = sql.NullFloat64{Float64: ta.RSI14, Valid: true}
		if ta.MACD != nil {
			macd = sql.NullFloat64{Float64: ta.MACD.MACD, Valid: true}
			macdSignal = sql.NullFloat64{Float64: ta.MACD.MACDSignal, Valid: true}
		}
	}
	var totalValue, tradeID sql.NullString
	if ev.PortfolioState != nil {
		totalValue = sql.NullString{String: ev.PortfolioState.TotalValue.String(), Valid: true}
	}
	if ev.Trade != nil {
		tradeID = sql.NullString{String: ev.Trade.ID, Valid: true}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, err = r.db.ExecContext(ctx, `INSERT OR REPLACE INTO evaluations
		(id, timestamp, currency, price, signal, total_value, rsi14, macd, macd_signal,
		 trade_id, error_count, payload)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		ev.ID, ev.Date.UnixMilli(), ev.Currency, ev.Price.String(), string(ev.Signal),
		totalValue, rsi, macd, macdSignal, tradeID, len(ev.Errors), string(payload),
	)
	return err
}

func (r *SQLiteRecorder) RecordTrade(ctx context.Context, trade *model.Trade) error {
	payload, err := json.Marshal(trade)
	if err != nil {
		return fmt.Errorf("encode trade: %w", err)
	}
	result := trade.Result
	if result == "" {
		result = model.TradeResultNone
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, err = r.db.ExecContext(ctx, `INSERT OR REPLACE INTO trades
		(id, timestamp, currency, side, result, order_count, payload)
		VALUES (?,?,?,?,?,?,?)`,
		trade.ID, nowMillis(), trade.ProductID, string(trade.Side), string(result),
		len(trade.OrderParams), string(payload),
	)
	return err
}

func (r *SQLiteRecorder) UpdateTradeResult(ctx context.Context, tradeID string, result model.TradeResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.ExecContext(ctx, `UPDATE trades SET result = ? WHERE id = ?`, string(result), tradeID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("update %s: %w", tradeID, ErrTradeNotFound)
	}
	return nil
}

func (r *SQLiteRecorder) LastEvaluation(ctx context.Context, currency string) (*model.Evaluation, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM evaluations
		WHERE currency = ? ORDER BY timestamp DESC, rowid DESC LIMIT 1`, currency).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query last evaluation: %w", err)
	}
	var ev model.Evaluation
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return nil, fmt.Errorf("decode evaluation: %w", err)
	}
	return &ev, nil
}

func (r *SQLiteRecorder) OpenTrades(ctx context.Context, currency string) ([]*model.Trade, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT payload, result FROM trades
		WHERE currency = ? AND result = ? ORDER BY timestamp, rowid`, currency, string(model.TradeResultNone))
	if err != nil {
		return nil, fmt.Errorf("query open trades: %w", err)
	}
	defer rows.Close()

	var trades []*model.Trade
	for rows.Next() {
		var payload, result string
		if err := rows.Scan(&payload, &result); err != nil {
			return nil, err
		}
		var t model.Trade
		if err := json.Unmarshal([]byte(payload), &t); err != nil {
			return nil, fmt.Errorf("decode trade: %w", err)
		}
		t.Result = model.TradeResult(result)
		trades = append(trades, &t)
	}
	return trades, rows.Err()
}

func nowMillis() int64 { return time.Now().UnixMilli() }

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
