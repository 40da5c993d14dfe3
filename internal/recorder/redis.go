package recorder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"TradeSentinel/internal/model"
)

const (
	redisPrefix     = "sentinel:"
	historyLength   = 500
	redisDialWindow = 5 * time.Second
)

// RedisConfig holds connection parameters for the Redis recorder.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisRecorder keeps the latest evaluation per currency, a bounded history
// list, every trade in a hash and the open trade ids in a set per currency.
type RedisRecorder struct {
	rdb *redis.Client
}

// NewRedisRecorder connects and pings the server.
func NewRedisRecorder(ctx context.Context, cfg RedisConfig) (*RedisRecorder, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisDialWindow)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}

	log.Printf("[INFO] redis recorder connected: %s", cfg.Addr)
	return &RedisRecorder{rdb: rdb}, nil
}

func lastKey(currency string) string    { return redisPrefix + "eval:last:" + currency }
func historyKey(currency string) string { return redisPrefix + "eval:history:" + currency }
func openKey(currency string) string    { return redisPrefix + "trades:open:" + currency }

const tradesKey = redisPrefix + "trades"

func (r *RedisRecorder) RecordEvaluation(ctx context.Context, ev *model.Evaluation) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode evaluation: %w", err)
	}
	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, lastKey(ev.Currency), payload, 0)
	pipe.LPush(ctx, historyKey(ev.Currency), payload)
	pipe.LTrim(ctx, historyKey(ev.Currency), 0, historyLength-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis: record evaluation: %w", err)
	}
	return nil
}

func (r *RedisRecorder) RecordTrade(ctx context.Context, trade *model.Trade) error {
	if trade.Result == "" {
		trade.Result = model.TradeResultNone
	}
	payload, err := json.Marshal(trade)
	if err != nil {
		return fmt.Errorf("encode trade: %w", err)
	}
	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, tradesKey, trade.ID, payload)
	if trade.Result == model.TradeResultNone {
		pipe.SAdd(ctx, openKey(trade.ProductID), trade.ID)
	} else {
		pipe.SRem(ctx, openKey(trade.ProductID), trade.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis: record trade: %w", err)
	}
	return nil
}

func (r *RedisRecorder) UpdateTradeResult(ctx context.Context, tradeID string, result model.TradeResult) error {
	raw, err := r.rdb.HGet(ctx, tradesKey, tradeID).Bytes()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("update %s: %w", tradeID, ErrTradeNotFound)
	}
	if err != nil {
		return fmt.Errorf("redis: load trade: %w", err)
	}
	var t model.Trade
	if err := json.Unmarshal(raw, &t); err != nil {
		return fmt.Errorf("decode trade: %w", err)
	}
	t.Result = result
	return r.RecordTrade(ctx, &t)
}

func (r *RedisRecorder) LastEvaluation(ctx context.Context, currency string) (*model.Evaluation, error) {
	raw, err := r.rdb.Get(ctx, lastKey(currency)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis: last evaluation: %w", err)
	}
	var ev model.Evaluation
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, fmt.Errorf("decode evaluation: %w", err)
	}
	return &ev, nil
}

func (r *RedisRecorder) OpenTrades(ctx context.Context, currency string) ([]*model.Trade, error) {
	ids, err := r.rdb.SMembers(ctx, openKey(currency)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: open trades: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	values, err := r.rdb.HMGet(ctx, tradesKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: load trades: %w", err)
	}
	trades := make([]*model.Trade, 0, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			log.Printf("[WARN] open trade %s missing from %s", ids[i], tradesKey)
			continue
		}
		var t model.Trade
		if err := json.Unmarshal([]byte(s), &t); err != nil {
			return nil, fmt.Errorf("decode trade %s: %w", ids[i], err)
		}
		trades = append(trades, &t)
	}
	return trades, nil
}

// Ping checks the Redis connection.
func (r *RedisRecorder) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *RedisRecorder) Close() error {
	log.Println("[INFO] closing redis recorder")
	return r.rdb.Close()
}
